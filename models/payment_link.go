package models

import "time"

// Payment link statuses. Expiry is judged against expires_at at read time;
// rows are not reaped.
const (
	PaymentLinkStatusActive    = "active"
	PaymentLinkStatusUsed      = "used"
	PaymentLinkStatusExpired   = "expired"
	PaymentLinkStatusCancelled = "cancelled"
)

// PaymentLink is a seller-issued, code-addressed claimable cart with fixed
// (possibly negotiated) pricing.
type PaymentLink struct {
	ID               uint64            `gorm:"primaryKey;autoIncrement" json:"id,string"`
	SellerBusinessID uint64            `gorm:"not null;index" json:"seller_business_id,string"`
	BuyerBusinessID  *uint64           `json:"buyer_business_id,string,omitempty"`
	ConversationID   *uint64           `json:"conversation_id,string,omitempty"`
	SellerBusiness   *Business         `gorm:"foreignKey:SellerBusinessID" json:"seller_business,omitempty"`
	BuyerBusiness    *Business         `gorm:"foreignKey:BuyerBusinessID" json:"buyer_business,omitempty"`
	LinkCode         string            `gorm:"uniqueIndex;not null" json:"link_code"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	CurrencyID       *uint64           `json:"currency_id,string,omitempty"`
	TotalAmount      float64           `gorm:"type:decimal(12,2)" json:"total_amount"`
	TaxAmount        float64           `gorm:"type:decimal(12,2)" json:"tax_amount"`
	DiscountAmount   float64           `gorm:"type:decimal(12,2)" json:"discount_amount"`
	FinalAmount      float64           `gorm:"type:decimal(12,2)" json:"final_amount"`
	Status           string            `gorm:"default:active" json:"status"`
	IsNegotiated     bool              `json:"is_negotiated"`
	ExpiresAt        *time.Time        `json:"expires_at,omitempty"`
	UsedAt           *time.Time        `json:"used_at,omitempty"`
	Items            []PaymentLinkItem `gorm:"foreignKey:PaymentLinkID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type PaymentLinkItem struct {
	ID              uint64   `gorm:"primaryKey;autoIncrement" json:"id,string"`
	PaymentLinkID   uint64   `gorm:"not null;index" json:"payment_link_id,string"`
	ProductID       uint64   `gorm:"not null" json:"product_id,string"`
	Product         *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName     string   `json:"product_name"`
	Quantity        int      `gorm:"not null" json:"quantity"`
	NegotiatedPrice *float64 `gorm:"type:decimal(12,2)" json:"negotiated_price,omitempty"`
	BasePrice       float64  `gorm:"type:decimal(12,2)" json:"base_price"`
	UnitPrice       float64  `gorm:"type:decimal(12,2)" json:"unit_price"`
	TotalPrice      float64  `gorm:"type:decimal(12,2)" json:"total_price"`
	Notes           string   `json:"notes,omitempty"`
}
