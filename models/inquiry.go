package models

import "time"

// Inquiry statuses; quoting an inquiry flips it to quoted.
const (
	InquiryStatusOpen   = "open"
	InquiryStatusQuoted = "quoted"
	InquiryStatusClosed = "closed"
)

type Inquiry struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id,string"`
	BuyerBusinessID uint64    `gorm:"not null;index" json:"buyer_business_id,string"`
	ProductID       *uint64   `json:"product_id,string,omitempty"`
	Quantity        int       `json:"quantity"`
	Details         string    `json:"details,omitempty"`
	Status          string    `gorm:"default:open" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Quotation struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id,string"`
	InquiryID        uint64    `gorm:"not null;index" json:"inquiry_id,string"`
	SellerBusinessID uint64    `gorm:"not null;index" json:"seller_business_id,string"`
	Inquiry          *Inquiry  `gorm:"foreignKey:InquiryID" json:"inquiry,omitempty"`
	Price            float64   `gorm:"type:decimal(12,2)" json:"price"`
	Quantity         int       `json:"quantity"`
	ValidityDays     int       `gorm:"default:30" json:"validity_days"`
	DeliveryTimeDays *int      `json:"delivery_time_days,omitempty"`
	PaymentTerms     string    `json:"payment_terms,omitempty"`
	OtherTerms       string    `json:"other_terms,omitempty"`
	Status           string    `gorm:"default:sent" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
