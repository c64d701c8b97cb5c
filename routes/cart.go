package routes

import (
	cartControllers "github.com/btwitsvirendra/Airavat--Back-end/controllers/cart"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCartRoutes registers the scoped cart. OptionalToken lets guest
// sessions through; the scope resolution happens in the controllers.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart")
	cart.Use(middleware.OptionalToken)
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/items", cartControllers.AddToCart(db))
		cart.PUT("/items/:id", cartControllers.UpdateCartItem(db))
		cart.PUT("/items/:id/delivery", cartControllers.UpdateDeliveryOption(db))
		cart.DELETE("/items/:id", cartControllers.RemoveFromCart(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}
}
