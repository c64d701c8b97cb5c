package models

import "time"

// User roles understood by the auth middleware.
const (
	RoleBusinessOwner = "business_owner"
	RoleAdmin         = "admin"
)

type User struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	FullName      string     `gorm:"not null" json:"full_name"`
	Phone         string     `json:"phone"`
	Role          string     `gorm:"default:business_owner" json:"role"`
	IsVerified    bool       `json:"is_verified"`
	EmailVerified bool       `json:"email_verified"`
	Status        string     `gorm:"default:active" json:"status"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	Businesses    []Business `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"businesses,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// GuestSession backs anonymous carts; the session id is handed to the client
// and used as the cart scope key until it expires.
type GuestSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
