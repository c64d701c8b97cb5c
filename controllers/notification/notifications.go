package notificationControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /notifications
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 20
		}

		query := db.Where("user_id = ?", userID)
		if isRead := c.Query("is_read"); isRead != "" {
			query = query.Where("is_read = ?", isRead == "true")
		}

		var notifications []models.Notification
		err := query.Order("created_at desc").
			Offset((page - 1) * limit).Limit(limit).
			Find(&notifications).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"notifications": notifications,
			"page":          page,
			"limit":         limit,
		})
	}
}

// GET /notifications/unread-count
func GetUnreadCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var count int64
		err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Count(&count).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"unread": count})
	}
}

// PATCH /notifications/:id/read
func MarkRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
			return
		}

		var notification models.Notification
		if err := db.First(&notification, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		if notification.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "This notification belongs to another user"})
			return
		}

		now := time.Now()
		err = db.Model(&notification).Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
			return
		}

		c.JSON(http.StatusOK, notification)
	}
}

// PATCH /notifications/read-all
func MarkAllRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		now := time.Now()
		err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Updates(map[string]any{"is_read": true, "read_at": now}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
	}
}

// DELETE /notifications/:id
func DeleteNotification(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
			return
		}

		var notification models.Notification
		if err := db.First(&notification, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		if notification.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "This notification belongs to another user"})
			return
		}

		if err := db.Delete(&notification).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
	}
}
