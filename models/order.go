package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusConfirmed   OrderStatus = "confirmed"
	OrderStatusReadyToShip OrderStatus = "ready_to_ship"
	OrderStatusShipped     OrderStatus = "shipped"
	OrderStatusDelivered   OrderStatus = "delivered"
	OrderStatusReturned    OrderStatus = "returned"
	OrderStatusCancelled   OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID               uint64        `gorm:"primaryKey;autoIncrement" json:"id,string"`
	OrderNumber      string        `gorm:"uniqueIndex;not null" json:"order_number"`
	BuyerBusinessID  uint64        `gorm:"not null;index" json:"buyer_business_id,string"`
	SellerBusinessID uint64        `gorm:"not null;index" json:"seller_business_id,string"`
	BuyerBusiness    *Business     `gorm:"foreignKey:BuyerBusinessID" json:"buyer_business,omitempty"`
	SellerBusiness   *Business     `gorm:"foreignKey:SellerBusinessID" json:"seller_business,omitempty"`
	CurrencyID       *uint64       `json:"currency_id,string,omitempty"`
	Status           OrderStatus   `gorm:"type:varchar(20);default:pending" json:"status"`
	PaymentStatus    PaymentStatus `gorm:"type:varchar(20);default:pending" json:"payment_status"`
	Subtotal         float64       `gorm:"type:decimal(12,2)" json:"subtotal"`
	TaxAmount        float64       `gorm:"type:decimal(12,2)" json:"tax_amount"`
	DiscountAmount   float64       `gorm:"type:decimal(12,2)" json:"discount_amount"`
	ShippingAmount   float64       `gorm:"type:decimal(12,2)" json:"shipping_amount"`
	FinalAmount      float64       `gorm:"type:decimal(12,2)" json:"final_amount"`
	DeliveryAddress  string        `json:"delivery_address,omitempty"`
	DeliveryCity     string        `json:"delivery_city,omitempty"`
	DeliveryState    string        `json:"delivery_state,omitempty"`
	DeliveryPincode  string        `json:"delivery_pincode,omitempty"`
	DeliveryCountry  string        `gorm:"default:India" json:"delivery_country,omitempty"`
	BuyerNotes       string        `json:"buyer_notes,omitempty"`
	Items            []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// OrderItem snapshots product name and price at order time so the order stays
// stable when the catalog changes later.
type OrderItem struct {
	ID           uint64  `gorm:"primaryKey;autoIncrement" json:"id,string"`
	OrderID      uint64  `gorm:"not null;index" json:"order_id,string"`
	ProductID    uint64  `gorm:"not null" json:"product_id,string"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	UnitPrice    float64 `gorm:"type:decimal(12,2)" json:"unit_price"`
	TotalPrice   float64 `gorm:"type:decimal(12,2)" json:"total_price"`
	DiscountRate float64 `json:"discount_rate"`
	TaxRate      float64 `json:"tax_rate"`
	HSCode       string  `json:"hs_code,omitempty"`
}
