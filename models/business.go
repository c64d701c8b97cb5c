package models

import "time"

type Business struct {
	ID                  uint64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	UserID              uint64     `gorm:"not null;index" json:"user_id,string"`
	BusinessName        string     `gorm:"not null" json:"business_name"`
	DisplayName         string     `json:"display_name"`
	CanBuy              bool       `gorm:"default:true" json:"can_buy"`
	CanSell             bool       `gorm:"default:false" json:"can_sell"`
	GSTNumber           string     `json:"gst_number,omitempty"`
	PANNumber           string     `json:"pan_number,omitempty"`
	MSMENumber          string     `json:"msme_number,omitempty"`
	Description         string     `json:"description,omitempty"`
	WebsiteURL          string     `json:"website_url,omitempty"`
	IsVerified          bool       `json:"is_verified"`
	VerificationLevel   string     `json:"verification_level,omitempty"`
	VerifiedAt          *time.Time `json:"verified_at,omitempty"`
	VerifiedBy          *uint64    `json:"verified_by,string,omitempty"`
	AddressLine1        string     `json:"address_line1,omitempty"`
	AddressLine2        string     `json:"address_line2,omitempty"`
	City                string     `json:"city,omitempty"`
	State               string     `json:"state,omitempty"`
	Country             string     `gorm:"default:India" json:"country,omitempty"`
	Pincode             string     `json:"pincode,omitempty"`
	PrimaryContactPhone string     `json:"primary_contact_phone,omitempty"`
	PrimaryContactEmail string     `json:"primary_contact_email,omitempty"`
	Products            []Product  `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
