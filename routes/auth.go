package routes

import (
	"github.com/btwitsvirendra/Airavat--Back-end/auth"
	userControllers "github.com/btwitsvirendra/Airavat--Back-end/controllers/user"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers registration, login, guest sessions, and the
// authenticated profile endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/users/register", userControllers.Register(db))
	r.POST("/users/login", userControllers.Login(db))
	r.POST("/auth/guest-session", auth.CreateGuestSession(db))

	userGroup := r.Group("/users")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/me", userControllers.GetMe(db))
		userGroup.PUT("/me", userControllers.UpdateMe(db))
	}
}
