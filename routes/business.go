package routes

import (
	businessControllers "github.com/btwitsvirendra/Airavat--Back-end/controllers/business"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupBusinessRoutes registers the public directory and the owner-scoped
// business management endpoints.
func SetupBusinessRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/businesses/sellers", businessControllers.GetSellerBusinesses(db))
	r.GET("/businesses/:id", businessControllers.GetBusinessByID(db))
	r.GET("/users/:id/businesses", businessControllers.GetBusinessesForUser(db))

	owned := r.Group("/businesses")
	owned.Use(middleware.ValidateToken)
	{
		owned.GET("", businessControllers.GetBusinessesByUser(db))
		owned.POST("", businessControllers.CreateBusiness(db))
		owned.PUT("/:id/roles", businessControllers.UpdateBusinessRole(db))
	}

	admin := r.Group("/admin/businesses")
	admin.Use(middleware.ValidateToken, middleware.RequireRole("admin"))
	{
		admin.PUT("/:id/verify", businessControllers.VerifyBusiness(db))
	}
}
