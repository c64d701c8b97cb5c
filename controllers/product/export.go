package productControllers

import (
	"net/http"
	"strconv"

	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /products/export
// Streams a seller's catalog as an xlsx download.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, err := strconv.ParseUint(c.Query("business_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "business_id is required"})
			return
		}
		if _, ok := ownedSellerBusiness(db, c, businessID); !ok {
			return
		}

		var products []models.Product
		if err := db.Preload("Category").Preload("Business").
			Where("business_id = ?", businessID).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Business", "Name", "Description", "Category",
			"BasePrice", "AvailableQuantity", "MinOrderQuantity",
			"HSCode", "Status", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(strconv.FormatUint(p.ID, 10))
			if p.Business != nil {
				row.AddCell().SetValue(p.Business.BusinessName)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.ProductName)
			row.AddCell().SetValue(p.Description)
			if p.Category != nil {
				row.AddCell().SetValue(p.Category.Name)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.BasePrice)
			if p.AvailableQuantity != nil {
				row.AddCell().SetValue(*p.AvailableQuantity)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.MinOrderQuantity)
			row.AddCell().SetValue(p.HSCode)
			row.AddCell().SetValue(p.Status)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
