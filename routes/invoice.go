package routes

import (
	invoiceControllers "github.com/btwitsvirendra/Airavat--Back-end/controllers/invoice"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupInvoiceRoutes registers invoicing; everything requires a login.
func SetupInvoiceRoutes(r *gin.Engine, db *gorm.DB) {
	invoices := r.Group("/invoices")
	invoices.Use(middleware.ValidateToken)
	{
		invoices.POST("", invoiceControllers.CreateInvoice(db))
		invoices.GET("/:id", invoiceControllers.GetInvoiceByID(db))
		invoices.GET("/business/:id", invoiceControllers.GetBusinessInvoices(db))
		invoices.PUT("/:id/status", invoiceControllers.UpdateInvoiceStatus(db))
	}
}
