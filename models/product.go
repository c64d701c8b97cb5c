package models

import "time"

// Product statuses.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

type Product struct {
	ID                uint64         `gorm:"primaryKey;autoIncrement" json:"id,string"`
	BusinessID        uint64         `gorm:"not null;index" json:"business_id,string"`
	Business          *Business      `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	CategoryID        *uint64        `json:"category_id,string,omitempty"`
	Category          *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CurrencyID        *uint64        `json:"currency_id,string,omitempty"`
	PriceUnitID       *uint64        `json:"price_unit_id,string,omitempty"`
	ProductName       string         `gorm:"not null" json:"product_name"`
	Description       string         `json:"description,omitempty"`
	BasePrice         float64        `gorm:"type:decimal(12,2);not null" json:"base_price"`
	AvailableQuantity *int           `json:"available_quantity,omitempty"`
	MinOrderQuantity  int            `gorm:"default:1" json:"min_order_quantity"`
	HSCode            string         `json:"hs_code,omitempty"`
	Status            string         `gorm:"default:active" json:"status"`
	Images            []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type ProductImage struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id,string"`
	ProductID uint64 `gorm:"not null;index" json:"product_id,string"`
	URL       string `gorm:"not null" json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

type Category struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description,omitempty"`
}

type Currency struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Code   string `gorm:"uniqueIndex;not null" json:"code"`
	Symbol string `json:"symbol"`
}

type PriceUnit struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
