package productControllers

import (
	"net/http"

	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /currencies
func GetAllCurrencies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var currencies []models.Currency
		if err := db.Order("code").Find(&currencies).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch currencies"})
			return
		}
		c.JSON(http.StatusOK, currencies)
	}
}

// GET /price-units
func GetAllPriceUnits(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var units []models.PriceUnit
		if err := db.Order("name").Find(&units).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch price units"})
			return
		}
		c.JSON(http.StatusOK, units)
	}
}
