package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /auth/guest-session
// Issues an anonymous session id that can scope a cart before registration.
func CreateGuestSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := models.GuestSession{
			ID:        "guest_" + generateRandomString(16),
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}

		if err := db.Create(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest session"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_id": session.ID,
			"expires_at": session.ExpiresAt,
		})
	}
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}
