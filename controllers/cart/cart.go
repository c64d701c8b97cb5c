package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// cartScope identifies whose cart a request acts on. Exactly one of the three
// keys is set. Asserting a business id selects the business cart (the one
// payment-link claims write into); otherwise an authenticated caller gets
// their personal cart and anonymous callers fall back to the guest session.
type cartScope struct {
	UserID     *uint64
	BusinessID *uint64
	SessionID  *string
}

func resolveScope(db *gorm.DB, c *gin.Context) (cartScope, bool, error) {
	userID, authed := middleware.UserID(c)

	if businessID, ok := middleware.BusinessID(c); ok {
		if !authed {
			return cartScope{}, false, errScopeUnauthorized
		}
		var business models.Business
		if err := db.Select("id", "user_id").First(&business, "id = ?", businessID).Error; err != nil {
			return cartScope{}, false, errScopeUnauthorized
		}
		if business.UserID != userID {
			return cartScope{}, false, errScopeUnauthorized
		}
		return cartScope{BusinessID: &businessID}, true, nil
	}
	if authed {
		return cartScope{UserID: &userID}, true, nil
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = c.GetHeader("X-Session-ID")
	}
	if sessionID != "" {
		return cartScope{SessionID: &sessionID}, true, nil
	}
	return cartScope{}, false, nil
}

func scoped(db *gorm.DB, scope cartScope) *gorm.DB {
	switch {
	case scope.UserID != nil:
		return db.Where("user_id = ?", *scope.UserID)
	case scope.BusinessID != nil:
		return db.Where("business_id = ? AND user_id IS NULL", *scope.BusinessID)
	default:
		return db.Where("session_id = ?", *scope.SessionID)
	}
}

func requireScope(db *gorm.DB, c *gin.Context) (cartScope, bool) {
	scope, ok, err := resolveScope(db, c)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this business"})
		return cartScope{}, false
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id, business_id, or session_id is required"})
	}
	return scope, ok
}

// unitPrice is the negotiated price when present, otherwise the product's
// base price.
func unitPrice(item *models.CartItem) float64 {
	if item.NegotiatedPrice != nil {
		return *item.NegotiatedPrice
	}
	if item.Product != nil {
		return item.Product.BasePrice
	}
	return 0
}

type AddToCartInput struct {
	ProductID       string   `json:"product_id"`
	Quantity        int      `json:"quantity"`
	NegotiatedPrice *float64 `json:"negotiated_price"`
	DeliveryOption  string   `json:"delivery_option"`
	DeliveryNotes   string   `json:"delivery_notes"`
}

type UpdateCartItemInput struct {
	Quantity        *int     `json:"quantity"`
	NegotiatedPrice *float64 `json:"negotiated_price"`
	DeliveryNotes   *string  `json:"delivery_notes"`
}

type UpdateDeliveryInput struct {
	DeliveryOption string `json:"delivery_option"`
}

// GET /cart
// Returns items with per-item calculated prices and a summary, priced at
// read time.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := requireScope(db, c)
		if !ok {
			return
		}

		var items []models.CartItem
		err := scoped(db, scope).
			Preload("Product").Preload("Product.Images").
			Order("created_at").
			Find(&items).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var subtotal float64
		totalQuantity := 0
		out := make([]gin.H, 0, len(items))
		for i := range items {
			price := unitPrice(&items[i])
			lineTotal := price * float64(items[i].Quantity)
			subtotal += lineTotal
			totalQuantity += items[i].Quantity
			out = append(out, gin.H{
				"item":            items[i],
				"unit_price":      price,
				"calculatedPrice": lineTotal,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"items": out,
			"summary": gin.H{
				"subtotal":      subtotal,
				"itemCount":     len(items),
				"totalQuantity": totalQuantity,
			},
		})
	}
}

// POST /cart/items
// Merges into an existing line when the same product and delivery option is
// already in the cart; quantities add, a supplied negotiated price overwrites.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := requireScope(db, c)
		if !ok {
			return
		}

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		productID, err := strconv.ParseUint(input.ProductID, 10, 64)
		if err != nil || input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id and a positive quantity are required"})
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

		var result models.CartItem
		err = db.Transaction(func(tx *gorm.DB) error {
			var product models.Product
			if err := tx.First(&product, "id = ?", productID).Error; err != nil {
				return errProductNotFound
			}

			var item models.CartItem
			findErr := scoped(tx, scope).
				Where("product_id = ? AND delivery_option = ?", productID, deliveryOption).
				First(&item).Error

			total := input.Quantity
			if findErr == nil {
				total += item.Quantity
			}
			if product.AvailableQuantity != nil && total > *product.AvailableQuantity {
				result = models.CartItem{}
				return &stockError{Available: *product.AvailableQuantity}
			}

			if findErr == nil {
				updates := map[string]any{"quantity": total}
				if input.NegotiatedPrice != nil {
					updates["negotiated_price"] = *input.NegotiatedPrice
				}
				if input.DeliveryNotes != "" {
					updates["delivery_notes"] = input.DeliveryNotes
				}
				if err := tx.Model(&item).Updates(updates).Error; err != nil {
					return err
				}
				result = item
				return nil
			}

			item = models.CartItem{
				UserID:          scope.UserID,
				BusinessID:      scope.BusinessID,
				SessionID:       scope.SessionID,
				ProductID:       productID,
				Quantity:        input.Quantity,
				NegotiatedPrice: input.NegotiatedPrice,
				DeliveryOption:  deliveryOption,
				DeliveryNotes:   input.DeliveryNotes,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			result = item
			return nil
		})

		if err != nil {
			if err == errProductNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			if se, ok := err.(*stockError); ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":             "Requested quantity exceeds available stock",
					"availableQuantity": se.Available,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
			return
		}

		db.Preload("Product").First(&result, "id = ?", result.ID)
		c.JSON(http.StatusCreated, result)
	}
}

// PUT /cart/items/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := requireScope(db, c)
		if !ok {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
			return
		}

		item, ok := loadOwnedItem(db, c, scope, id)
		if !ok {
			return
		}

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		updates := map[string]any{}
		if input.Quantity != nil {
			if *input.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
				return
			}
			if *input.Quantity > item.Quantity {
				var product models.Product
				if err := db.First(&product, "id = ?", item.ProductID).Error; err == nil &&
					product.AvailableQuantity != nil && *input.Quantity > *product.AvailableQuantity {
					c.JSON(http.StatusBadRequest, gin.H{
						"error":             "Requested quantity exceeds available stock",
						"availableQuantity": *product.AvailableQuantity,
					})
					return
				}
			}
			updates["quantity"] = *input.Quantity
		}
		if input.NegotiatedPrice != nil {
			updates["negotiated_price"] = *input.NegotiatedPrice
		}
		if input.DeliveryNotes != nil {
			updates["delivery_notes"] = *input.DeliveryNotes
		}

		if len(updates) > 0 {
			if err := db.Model(item).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		}

		c.JSON(http.StatusOK, item)
	}
}

// PUT /cart/items/:id/delivery
func UpdateDeliveryOption(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := requireScope(db, c)
		if !ok {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
			return
		}

		var input UpdateDeliveryInput
		if err := c.ShouldBindJSON(&input); err != nil || !models.ValidDeliveryOption(input.DeliveryOption) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery_option"})
			return
		}

		item, ok := loadOwnedItem(db, c, scope, id)
		if !ok {
			return
		}

		if err := db.Model(item).Update("delivery_option", input.DeliveryOption).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery option"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/items/:id
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := requireScope(db, c)
		if !ok {
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
			return
		}

		item, ok := loadOwnedItem(db, c, scope, id)
		if !ok {
			return
		}

		if err := db.Delete(item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := requireScope(db, c)
		if !ok {
			return
		}

		if err := scoped(db, scope).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// loadOwnedItem fetches the item and enforces scope ownership. An item bound
// to a different user is a 403, anything else unmatched is a 404.
func loadOwnedItem(db *gorm.DB, c *gin.Context, scope cartScope, id uint64) (*models.CartItem, bool) {
	var item models.CartItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return nil, false
	}

	owned := false
	switch {
	case scope.UserID != nil:
		owned = item.UserID != nil && *item.UserID == *scope.UserID
		if item.UserID != nil && !owned {
			c.JSON(http.StatusForbidden, gin.H{"error": "This cart item belongs to another user"})
			return nil, false
		}
	case scope.BusinessID != nil:
		owned = item.BusinessID != nil && item.UserID == nil && *item.BusinessID == *scope.BusinessID
	default:
		owned = item.SessionID != nil && *item.SessionID == *scope.SessionID
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return nil, false
	}
	return &item, true
}
