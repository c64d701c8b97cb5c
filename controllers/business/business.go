package businessControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateBusinessInput struct {
	BusinessName string `json:"business_name"`
	DisplayName  string `json:"display_name"`
	CanBuy       *bool  `json:"can_buy"`
	CanSell      bool   `json:"can_sell"`
	GSTNumber    string `json:"gst_number"`
	PANNumber    string `json:"pan_number"`
	Description  string `json:"description"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

type UpdateRolesInput struct {
	CanBuy  *bool `json:"can_buy"`
	CanSell *bool `json:"can_sell"`
}

type VerifyBusinessInput struct {
	VerificationLevel string `json:"verification_level"`
}

// POST /businesses
// Adds another business under the authenticated user.
func CreateBusiness(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var input CreateBusinessInput
		if err := c.ShouldBindJSON(&input); err != nil || input.BusinessName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "business_name is required"})
			return
		}

		canBuy := true
		if input.CanBuy != nil {
			canBuy = *input.CanBuy
		}
		if !canBuy && !input.CanSell {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A business must be able to buy, sell, or both"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		business := models.Business{
			UserID:       userID,
			BusinessName: input.BusinessName,
			DisplayName:  input.DisplayName,
			CanBuy:       canBuy,
			CanSell:      input.CanSell,
			GSTNumber:    input.GSTNumber,
			PANNumber:    input.PANNumber,
			Description:  input.Description,
			City:         input.City,
			State:        input.State,
			Country:      input.Country,
		}
		if business.DisplayName == "" {
			business.DisplayName = input.BusinessName
		}

		if err := db.Create(&business).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business"})
			return
		}

		c.JSON(http.StatusCreated, business)
	}
}

// GET /businesses/sellers
// Public seller directory, each with a preview of active products.
func GetSellerBusinesses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sellers []models.Business
		err := db.
			Where("can_sell = ?", true).
			Preload("Products", func(tx *gorm.DB) *gorm.DB {
				return tx.Where("status = ?", models.ProductStatusActive).Limit(5)
			}).
			Order("created_at desc").
			Find(&sellers).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sellers"})
			return
		}

		c.JSON(http.StatusOK, sellers)
	}
}

// GET /businesses/:id
func GetBusinessByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business id"})
			return
		}

		var business models.Business
		if err := db.First(&business, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}

		c.JSON(http.StatusOK, business)
	}
}

// GET /businesses
// Lists the authenticated user's businesses.
func GetBusinessesByUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var businesses []models.Business
		if err := db.Where("user_id = ?", userID).Order("created_at").Find(&businesses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch businesses"})
			return
		}

		c.JSON(http.StatusOK, businesses)
	}
}

// GET /users/:id/businesses
// Public listing of a user's businesses.
func GetBusinessesForUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}

		var businesses []models.Business
		if err := db.Where("user_id = ?", userID).Order("created_at").Find(&businesses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch businesses"})
			return
		}

		c.JSON(http.StatusOK, businesses)
	}
}

// PUT /businesses/:id/roles
func UpdateBusinessRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business id"})
			return
		}

		var business models.Business
		if err := db.First(&business, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		if business.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this business"})
			return
		}

		var input UpdateRolesInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		canBuy := business.CanBuy
		canSell := business.CanSell
		if input.CanBuy != nil {
			canBuy = *input.CanBuy
		}
		if input.CanSell != nil {
			canSell = *input.CanSell
		}
		if !canBuy && !canSell {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A business must be able to buy, sell, or both"})
			return
		}

		if err := db.Model(&business).Updates(map[string]any{
			"can_buy":  canBuy,
			"can_sell": canSell,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update roles"})
			return
		}

		c.JSON(http.StatusOK, business)
	}
}

// PUT /admin/businesses/:id/verify
func VerifyBusiness(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business id"})
			return
		}

		var business models.Business
		if err := db.First(&business, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}

		var input VerifyBusinessInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		level := input.VerificationLevel
		if level == "" {
			level = "basic"
		}

		now := time.Now()
		if err := db.Model(&business).Updates(map[string]any{
			"is_verified":        true,
			"verification_level": level,
			"verified_at":        now,
			"verified_by":        adminID,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify business"})
			return
		}

		c.JSON(http.StatusOK, business)
	}
}
