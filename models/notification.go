package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types created as side effects of chat and commerce events.
const (
	NotificationTypeMessage   = "message"
	NotificationTypeOrder     = "order"
	NotificationTypeQuotation = "quotation"
)

type Notification struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement" json:"id,string"`
	UserID     uint64         `gorm:"not null;index" json:"user_id,string"`
	BusinessID *uint64        `json:"business_id,string,omitempty"`
	Business   *Business      `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Link       string         `json:"link,omitempty"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
	IsRead     bool           `json:"is_read"`
	ReadAt     *time.Time     `json:"read_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
