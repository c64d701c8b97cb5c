package routes

import (
	paymentLinkControllers "github.com/btwitsvirendra/Airavat--Back-end/controllers/paymentlink"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupPaymentLinkRoutes registers payment links. Fetching by code is public
// so an emailed link works without a login; claiming requires one.
func SetupPaymentLinkRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/payment-links/code/:code", paymentLinkControllers.GetByCode(db))

	links := r.Group("/payment-links")
	links.Use(middleware.ValidateToken)
	{
		links.POST("", paymentLinkControllers.CreatePaymentLink(db))
		links.POST("/from-chat", paymentLinkControllers.CreateFromChat(db))
		links.GET("/business/:id", paymentLinkControllers.GetSellerPaymentLinks(db))
		links.PUT("/:code/status", paymentLinkControllers.UpdateStatus(db))
		links.POST("/:code/add-to-cart", paymentLinkControllers.AddToCart(db))
	}
}
