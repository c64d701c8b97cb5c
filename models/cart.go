package models

import "time"

// Delivery options accepted on cart items and payment-link claims.
const (
	DeliveryPickup   = "pickup"
	DeliveryBuyer    = "buyer_delivery"
	DeliverySeller   = "seller_delivery"
	DeliveryPlatform = "platform_delivery"
)

// ValidDeliveryOption reports whether option is one of the accepted values.
func ValidDeliveryOption(option string) bool {
	switch option {
	case DeliveryPickup, DeliveryBuyer, DeliverySeller, DeliveryPlatform:
		return true
	}
	return false
}

// CartItem is scoped by user, business, or anonymous session; at least one of
// the three keys is set. Totals are never persisted, the cart is priced at
// read time from negotiated_price falling back to the product's base price.
type CartItem struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id,string"`
	UserID          *uint64   `gorm:"index:idx_cart_scope" json:"user_id,string,omitempty"`
	BusinessID      *uint64   `gorm:"index:idx_cart_scope" json:"business_id,string,omitempty"`
	SessionID       *string   `gorm:"index:idx_cart_scope" json:"session_id,omitempty"`
	ProductID       uint64    `gorm:"not null;index" json:"product_id,string"`
	Product         *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	NegotiatedPrice *float64  `gorm:"type:decimal(12,2)" json:"negotiated_price,omitempty"`
	DeliveryOption  string    `gorm:"default:platform_delivery" json:"delivery_option"`
	DeliveryNotes   string    `json:"delivery_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
