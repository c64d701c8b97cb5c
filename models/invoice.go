package models

import "time"

// Invoice statuses; paid stamps paid_at.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice sources its line items from exactly one of an order or a payment
// link; the items are snapshots, not live product references.
type Invoice struct {
	ID               uint64        `gorm:"primaryKey;autoIncrement" json:"id,string"`
	InvoiceNumber    string        `gorm:"uniqueIndex;not null" json:"invoice_number"`
	OrderID          *uint64       `json:"order_id,string,omitempty"`
	PaymentLinkID    *uint64       `json:"payment_link_id,string,omitempty"`
	SellerBusinessID uint64        `gorm:"not null;index" json:"seller_business_id,string"`
	BuyerBusinessID  uint64        `gorm:"not null;index" json:"buyer_business_id,string"`
	SellerBusiness   *Business     `gorm:"foreignKey:SellerBusinessID" json:"seller_business,omitempty"`
	BuyerBusiness    *Business     `gorm:"foreignKey:BuyerBusinessID" json:"buyer_business,omitempty"`
	CurrencyID       *uint64       `json:"currency_id,string,omitempty"`
	Subtotal         float64       `gorm:"type:decimal(12,2)" json:"subtotal"`
	TaxAmount        float64       `gorm:"type:decimal(12,2)" json:"tax_amount"`
	DiscountAmount   float64       `gorm:"type:decimal(12,2)" json:"discount_amount"`
	ShippingAmount   float64       `gorm:"type:decimal(12,2)" json:"shipping_amount"`
	TotalAmount      float64       `gorm:"type:decimal(12,2)" json:"total_amount"`
	Status           string        `gorm:"default:draft" json:"status"`
	DueDate          *time.Time    `json:"due_date,omitempty"`
	PaidAt           *time.Time    `json:"paid_at,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	PDFURL           string        `json:"pdf_url,omitempty"`
	Items            []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type InvoiceItem struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement" json:"id,string"`
	InvoiceID   uint64  `gorm:"not null;index" json:"invoice_id,string"`
	ProductID   uint64  `gorm:"not null" json:"product_id,string"`
	ProductName string  `json:"product_name"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(12,2)" json:"unit_price"`
	TotalPrice  float64 `gorm:"type:decimal(12,2)" json:"total_price"`
	Description string  `json:"description,omitempty"`
}
