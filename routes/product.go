package routes

import (
	productControllers "github.com/btwitsvirendra/Airavat--Back-end/controllers/product"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the public catalog and the seller-scoped
// product management endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.GetAllProducts(db))
	r.GET("/products/search", productControllers.SearchProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))

	r.GET("/categories", productControllers.GetAllCategories(db))
	r.GET("/currencies", productControllers.GetAllCurrencies(db))
	r.GET("/price-units", productControllers.GetAllPriceUnits(db))

	seller := r.Group("/products")
	seller.Use(middleware.ValidateToken)
	{
		seller.GET("/export", productControllers.ExportProductsToExcel(db))
		seller.POST("", productControllers.CreateProduct(db))
		seller.PUT("/:id", productControllers.UpdateProduct(db))
		seller.DELETE("/:id", productControllers.DeleteProduct(db))
	}
}
