package paymentLinkControllers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentLinkItemInput struct {
	ProductID       string   `json:"product_id"`
	Quantity        int      `json:"quantity"`
	NegotiatedPrice *float64 `json:"negotiated_price"`
	Notes           string   `json:"notes"`
}

type CreatePaymentLinkInput struct {
	SellerBusinessID string                 `json:"seller_business_id"`
	BuyerBusinessID  string                 `json:"buyer_business_id"`
	ConversationID   string                 `json:"conversation_id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	CurrencyID       string                 `json:"currency_id"`
	TaxAmount        float64                `json:"tax_amount"`
	DiscountAmount   float64                `json:"discount_amount"`
	ExpiresInDays    int                    `json:"expires_in_days"`
	Items            []PaymentLinkItemInput `json:"items"`
}

type UpdateLinkStatusInput struct {
	Status string `json:"status"`
}

type ClaimInput struct {
	BuyerBusinessID string `json:"buyer_business_id"`
	DeliveryOption  string `json:"delivery_option"`
}

// generateLinkCode builds a public, unguessable code. Timestamp for seller
// legibility, random suffix for entropy.
func generateLinkCode() string {
	buf := make([]byte, 4)
	rand.Read(buf)
	return fmt.Sprintf("PL-%s-%s",
		time.Now().Format("20060102150405"),
		strings.ToUpper(hex.EncodeToString(buf)))
}

func paymentURL(code string) string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return base + "/payment/" + code
}

func optionalID(raw string) *uint64 {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// ownedSeller confirms the seller business belongs to the caller and can sell.
func ownedSeller(db *gorm.DB, c *gin.Context, sellerBusinessID uint64) (*models.Business, bool) {
	var business models.Business
	if err := db.First(&business, "id = ?", sellerBusinessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return nil, false
	}
	userID, _ := middleware.UserID(c)
	if business.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this business"})
		return nil, false
	}
	if !business.CanSell {
		c.JSON(http.StatusForbidden, gin.H{"error": "This business is not a seller"})
		return nil, false
	}
	return &business, true
}

func buildLink(db *gorm.DB, c *gin.Context, input CreatePaymentLinkInput) {
	sellerID, err := strconv.ParseUint(input.SellerBusinessID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seller_business_id is required"})
		return
	}
	if _, ok := ownedSeller(db, c, sellerID); !ok {
		return
	}
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one item is required"})
		return
	}

	var (
		items        []models.PaymentLinkItem
		totalAmount  float64
		isNegotiated bool
	)
	for _, in := range input.Items {
		productID, err := strconv.ParseUint(in.ProductID, 10, 64)
		if err != nil || in.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Each item needs a product_id and positive quantity"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if product.BusinessID != sellerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Product does not belong to the seller"})
			return
		}

		unit := product.BasePrice
		if in.NegotiatedPrice != nil {
			unit = *in.NegotiatedPrice
			isNegotiated = true
		}
		lineTotal := unit * float64(in.Quantity)
		totalAmount += lineTotal

		items = append(items, models.PaymentLinkItem{
			ProductID:       productID,
			ProductName:     product.ProductName,
			Quantity:        in.Quantity,
			NegotiatedPrice: in.NegotiatedPrice,
			BasePrice:       product.BasePrice,
			UnitPrice:       unit,
			TotalPrice:      lineTotal,
			Notes:           in.Notes,
		})
	}

	expiresIn := input.ExpiresInDays
	if expiresIn <= 0 {
		expiresIn = 30
	}
	expiresAt := time.Now().AddDate(0, 0, expiresIn)

	link := models.PaymentLink{
		SellerBusinessID: sellerID,
		BuyerBusinessID:  optionalID(input.BuyerBusinessID),
		ConversationID:   optionalID(input.ConversationID),
		LinkCode:         generateLinkCode(),
		Title:            input.Title,
		Description:      input.Description,
		CurrencyID:       optionalID(input.CurrencyID),
		TotalAmount:      totalAmount,
		TaxAmount:        input.TaxAmount,
		DiscountAmount:   input.DiscountAmount,
		FinalAmount:      totalAmount + input.TaxAmount - input.DiscountAmount,
		Status:           models.PaymentLinkStatusActive,
		IsNegotiated:     isNegotiated,
		ExpiresAt:        &expiresAt,
		Items:            items,
	}

	if err := db.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment link"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment_link": link,
		"paymentUrl":   paymentURL(link.LinkCode),
	})
}

// POST /payment-links
func CreatePaymentLink(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePaymentLinkInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		buildLink(db, c, input)
	}
}

// POST /payment-links/from-chat
// Same as CreatePaymentLink but anchored to a conversation; the caller must
// be the conversation's seller and the buyer side is prefilled.
func CreateFromChat(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePaymentLinkInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		conversationID, err := strconv.ParseUint(input.ConversationID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversation_id is required"})
			return
		}

		var conversation models.Conversation
		if err := db.First(&conversation, "id = ?", conversationID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}

		sellerID, err := strconv.ParseUint(input.SellerBusinessID, 10, 64)
		if err != nil || sellerID != conversation.SellerBusinessID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the conversation's seller can issue a payment link"})
			return
		}

		input.BuyerBusinessID = strconv.FormatUint(conversation.BuyerBusinessID, 10)
		buildLink(db, c, input)
	}
}

// GET /payment-links/code/:code
// Public lookup by code. Expired or consumed links answer 410.
func GetByCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var link models.PaymentLink
		err := db.Preload("Items").Preload("Items.Product").Preload("SellerBusiness").
			Where("link_code = ?", c.Param("code")).
			First(&link).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment link not found"})
			return
		}

		if link.Status == models.PaymentLinkStatusUsed {
			c.JSON(http.StatusGone, gin.H{"error": "This payment link has already been used"})
			return
		}
		if link.Status == models.PaymentLinkStatusCancelled {
			c.JSON(http.StatusGone, gin.H{"error": "This payment link was cancelled"})
			return
		}
		if link.Status == models.PaymentLinkStatusExpired ||
			(link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now())) {
			c.JSON(http.StatusGone, gin.H{"error": "This payment link has expired"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payment_link": link,
			"paymentUrl":   paymentURL(link.LinkCode),
		})
	}
}

// GET /payment-links/business/:id
func GetSellerPaymentLinks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business id"})
			return
		}
		if _, ok := ownedSeller(db, c, sellerID); !ok {
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 20
		}

		query := db.Preload("Items").Where("seller_business_id = ?", sellerID)
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var links []models.PaymentLink
		err = query.Order("created_at desc").
			Offset((page - 1) * limit).Limit(limit).
			Find(&links).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment links"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payment_links": links,
			"page":          page,
			"limit":         limit,
		})
	}
}

// PUT /payment-links/:code/status
func UpdateStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateLinkStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		switch input.Status {
		case models.PaymentLinkStatusActive, models.PaymentLinkStatusUsed,
			models.PaymentLinkStatusExpired, models.PaymentLinkStatusCancelled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		var link models.PaymentLink
		err := db.Preload("SellerBusiness").Where("link_code = ?", c.Param("code")).First(&link).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment link not found"})
			return
		}

		userID, _ := middleware.UserID(c)
		if link.SellerBusiness == nil || link.SellerBusiness.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the issuing seller can update this link"})
			return
		}

		updates := map[string]any{"status": input.Status}
		if input.Status == models.PaymentLinkStatusUsed {
			updates["used_at"] = time.Now()
		}
		if err := db.Model(&link).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment link"})
			return
		}

		c.JSON(http.StatusOK, link)
	}
}

// POST /payment-links/:code/add-to-cart
// Claims every link line into the buyer's business-scoped cart at the link's
// price. The link stays claimable until payment actually completes.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var link models.PaymentLink
		err := db.Preload("Items").Where("link_code = ?", c.Param("code")).First(&link).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment link not found"})
			return
		}

		if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now()) {
			c.JSON(http.StatusGone, gin.H{"error": "This payment link has expired"})
			return
		}
		if link.Status != models.PaymentLinkStatusActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This payment link is no longer active"})
			return
		}

		var input ClaimInput
		// Body is optional; the buyer business can be inferred.
		_ = c.ShouldBindJSON(&input)

		buyerID, ok := resolveBuyerBusiness(db, c, input.BuyerBusinessID)
		if !ok {
			return
		}

		deliveryOption := input.DeliveryOption
		if deliveryOption == "" {
			deliveryOption = models.DeliveryPlatform
		}
		if !models.ValidDeliveryOption(deliveryOption) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery_option"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			for _, line := range link.Items {
				negotiated := line.UnitPrice
				if line.NegotiatedPrice != nil {
					negotiated = *line.NegotiatedPrice
				}

				var existing models.CartItem
				findErr := tx.
					Where("business_id = ? AND user_id IS NULL AND product_id = ? AND delivery_option = ?",
						buyerID, line.ProductID, deliveryOption).
					First(&existing).Error
				if findErr == nil {
					if err := tx.Model(&existing).Updates(map[string]any{
						"quantity":         line.Quantity,
						"negotiated_price": negotiated,
					}).Error; err != nil {
						return err
					}
					continue
				}

				item := models.CartItem{
					BusinessID:      &buyerID,
					ProductID:       line.ProductID,
					Quantity:        line.Quantity,
					NegotiatedPrice: &negotiated,
					DeliveryOption:  deliveryOption,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add payment link to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":           "Payment link items added to cart",
			"buyer_business_id": strconv.FormatUint(buyerID, 10),
			"itemCount":         len(link.Items),
		})
	}
}

// resolveBuyerBusiness picks the claiming business: the one named in the
// body, else the caller's first business that can buy.
func resolveBuyerBusiness(db *gorm.DB, c *gin.Context, raw string) (uint64, bool) {
	userID, authed := middleware.UserID(c)
	if !authed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return 0, false
	}

	if raw != "" {
		buyerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid buyer_business_id"})
			return 0, false
		}
		var business models.Business
		if err := db.First(&business, "id = ?", buyerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return 0, false
		}
		if business.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this business"})
			return 0, false
		}
		if !business.CanBuy {
			c.JSON(http.StatusForbidden, gin.H{"error": "This business cannot buy"})
			return 0, false
		}
		return buyerID, true
	}

	var business models.Business
	err := db.Where("user_id = ? AND can_buy = ?", userID, true).
		Order("created_at").First(&business).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No buying business found for this account"})
		return 0, false
	}
	return business.ID, true
}
