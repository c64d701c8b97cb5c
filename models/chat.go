package models

import (
	"time"

	"gorm.io/datatypes"
)

// Conversation links exactly two businesses, optionally anchored to a
// product, inquiry, or order. The (buyer, seller, product, is_active) tuple
// is its natural identity key; the unique index lets creation run as
// insert-on-conflict instead of read-then-write.
type Conversation struct {
	ID               uint64        `gorm:"primaryKey;autoIncrement" json:"id,string"`
	BuyerBusinessID  uint64        `gorm:"not null;uniqueIndex:idx_conversation_key" json:"buyer_business_id,string"`
	SellerBusinessID uint64        `gorm:"not null;uniqueIndex:idx_conversation_key" json:"seller_business_id,string"`
	ProductID        *uint64       `gorm:"uniqueIndex:idx_conversation_key" json:"product_id,string,omitempty"`
	InquiryID        *uint64       `json:"inquiry_id,string,omitempty"`
	OrderID          *uint64       `json:"order_id,string,omitempty"`
	BuyerBusiness    *Business     `gorm:"foreignKey:BuyerBusinessID" json:"buyer_business,omitempty"`
	SellerBusiness   *Business     `gorm:"foreignKey:SellerBusinessID" json:"seller_business,omitempty"`
	Product          *Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	IsActive         bool          `gorm:"default:true;uniqueIndex:idx_conversation_key" json:"is_active"`
	LastMessageAt    *time.Time    `json:"last_message_at,omitempty"`
	Messages         []ChatMessage `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Message types; anything else is stored as-is, text is the default.
const MessageTypeText = "text"

type ChatMessage struct {
	ID               uint64         `gorm:"primaryKey;autoIncrement" json:"id,string"`
	ConversationID   uint64         `gorm:"not null;index" json:"conversation_id,string"`
	SenderBusinessID uint64         `gorm:"not null" json:"sender_business_id,string"`
	SenderBusiness   *Business      `gorm:"foreignKey:SenderBusinessID" json:"sender_business,omitempty"`
	MessageType      string         `gorm:"default:text" json:"message_type"`
	Content          string         `json:"content"`
	Metadata         datatypes.JSON `json:"metadata,omitempty"`
	IsRead           bool           `json:"is_read"`
	ReadAt           *time.Time     `json:"read_at,omitempty"`
	IsDeleted        bool           `json:"is_deleted"`
	CreatedAt        time.Time      `json:"created_at"`
}
