package routes

import (
	notificationControllers "github.com/btwitsvirendra/Airavat--Back-end/controllers/notification"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupNotificationRoutes registers the per-user notification inbox.
func SetupNotificationRoutes(r *gin.Engine, db *gorm.DB) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.ValidateToken)
	{
		notifications.GET("", notificationControllers.GetNotifications(db))
		notifications.GET("/unread-count", notificationControllers.GetUnreadCount(db))
		notifications.PATCH("/read-all", notificationControllers.MarkAllRead(db))
		notifications.PATCH("/:id/read", notificationControllers.MarkRead(db))
		notifications.DELETE("/:id", notificationControllers.DeleteNotification(db))
	}
}
