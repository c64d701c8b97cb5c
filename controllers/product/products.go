package productControllers

import (
	"net/http"
	"strconv"

	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductInput struct {
	BusinessID        string   `json:"business_id"`
	CategoryID        *string  `json:"category_id"`
	CurrencyID        *string  `json:"currency_id"`
	PriceUnitID       *string  `json:"price_unit_id"`
	ProductName       string   `json:"product_name"`
	Description       string   `json:"description"`
	BasePrice         float64  `json:"base_price"`
	AvailableQuantity *int     `json:"available_quantity"`
	MinOrderQuantity  int      `json:"min_order_quantity"`
	HSCode            string   `json:"hs_code"`
	ImageURLs         []string `json:"image_urls"`
}

type UpdateProductInput struct {
	ProductName       *string  `json:"product_name"`
	Description       *string  `json:"description"`
	BasePrice         *float64 `json:"base_price"`
	AvailableQuantity *int     `json:"available_quantity"`
	MinOrderQuantity  *int     `json:"min_order_quantity"`
	HSCode            *string  `json:"hs_code"`
	Status            *string  `json:"status"`
}

func parseOptionalID(raw *string) *uint64 {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(*raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// ownedSellerBusiness loads the business and confirms the caller owns it and
// it can sell. Admins bypass the ownership check.
func ownedSellerBusiness(db *gorm.DB, c *gin.Context, businessID uint64) (*models.Business, bool) {
	var business models.Business
	if err := db.First(&business, "id = ?", businessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return nil, false
	}

	userID, _ := middleware.UserID(c)
	if business.UserID != userID && c.GetString(middleware.CtxRole) != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this business"})
		return nil, false
	}
	if !business.CanSell {
		c.JSON(http.StatusForbidden, gin.H{"error": "This business is not a seller"})
		return nil, false
	}
	return &business, true
}

// POST /products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if input.ProductName == "" || input.BasePrice <= 0 || input.BusinessID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "business_id, product_name, and a positive base_price are required"})
			return
		}

		businessID, err := strconv.ParseUint(input.BusinessID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business_id"})
			return
		}
		if _, ok := ownedSellerBusiness(db, c, businessID); !ok {
			return
		}

		minOrder := input.MinOrderQuantity
		if minOrder <= 0 {
			minOrder = 1
		}

		product := models.Product{
			BusinessID:        businessID,
			CategoryID:        parseOptionalID(input.CategoryID),
			CurrencyID:        parseOptionalID(input.CurrencyID),
			PriceUnitID:       parseOptionalID(input.PriceUnitID),
			ProductName:       input.ProductName,
			Description:       input.Description,
			BasePrice:         input.BasePrice,
			AvailableQuantity: input.AvailableQuantity,
			MinOrderQuantity:  minOrder,
			HSCode:            input.HSCode,
			Status:            models.ProductStatusActive,
		}
		for i, url := range input.ImageURLs {
			product.Images = append(product.Images, models.ProductImage{
				URL:       url,
				IsPrimary: i == 0,
			})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// GET /products
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Images").Preload("Category").
			Where("status = ?", models.ProductStatusActive)

		if businessID := c.Query("business_id"); businessID != "" {
			query = query.Where("business_id = ?", businessID)
		}

		var products []models.Product
		if err := query.Order("created_at desc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// GET /products/search
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Images").Preload("Category").
			Where("status = ?", models.ProductStatusActive)

		if q := c.Query("q"); q != "" {
			query = query.Where("LOWER(product_name) LIKE LOWER(?)", "%"+q+"%")
		}
		if categoryID := c.Query("category_id"); categoryID != "" {
			query = query.Where("category_id = ?", categoryID)
		}
		if minPrice := c.Query("min_price"); minPrice != "" {
			if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
				query = query.Where("base_price >= ?", v)
			}
		}
		if maxPrice := c.Query("max_price"); maxPrice != "" {
			if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
				query = query.Where("base_price <= ?", v)
			}
		}

		var products []models.Product
		if err := query.Order("created_at desc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var product models.Product
		err = db.Preload("Images").Preload("Category").Preload("Business").
			First(&product, "id = ?", id).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// PUT /products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if _, ok := ownedSellerBusiness(db, c, product.BusinessID); !ok {
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		updates := map[string]any{}
		if input.ProductName != nil {
			updates["product_name"] = *input.ProductName
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.BasePrice != nil {
			if *input.BasePrice <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "base_price must be positive"})
				return
			}
			updates["base_price"] = *input.BasePrice
		}
		if input.AvailableQuantity != nil {
			updates["available_quantity"] = *input.AvailableQuantity
		}
		if input.MinOrderQuantity != nil {
			updates["min_order_quantity"] = *input.MinOrderQuantity
		}
		if input.HSCode != nil {
			updates["hs_code"] = *input.HSCode
		}
		if input.Status != nil {
			if *input.Status != models.ProductStatusActive && *input.Status != models.ProductStatusInactive {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
				return
			}
			updates["status"] = *input.Status
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, product)
	}
}

// DELETE /products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if _, ok := ownedSellerBusiness(db, c, product.BusinessID); !ok {
			return
		}

		if err := db.Select("Images").Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
