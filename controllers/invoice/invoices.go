package invoiceControllers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateInvoiceInput struct {
	OrderID          string   `json:"order_id"`
	PaymentLinkID    string   `json:"payment_link_id"`
	SellerBusinessID string   `json:"seller_business_id"`
	Subtotal         *float64 `json:"subtotal"`
	TaxAmount        *float64 `json:"tax_amount"`
	DiscountAmount   *float64 `json:"discount_amount"`
	ShippingAmount   *float64 `json:"shipping_amount"`
	DueDateDays      int      `json:"due_date_days"`
	Notes            string   `json:"notes"`
}

type UpdateInvoiceStatusInput struct {
	Status string `json:"status"`
}

func generateInvoiceNumber() string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return fmt.Sprintf("INV-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(hex.EncodeToString(buf)))
}

// POST /invoices
// Builds an invoice from exactly one source, an order or a payment link, and
// snapshots its line items.
func CreateInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateInvoiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if (input.OrderID == "") == (input.PaymentLinkID == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of order_id or payment_link_id is required"})
			return
		}

		sellerID, err := strconv.ParseUint(input.SellerBusinessID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seller_business_id is required"})
			return
		}

		var seller models.Business
		if err := db.First(&seller, "id = ?", sellerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		userID, _ := middleware.UserID(c)
		if seller.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this business"})
			return
		}
		if !seller.CanSell {
			c.JSON(http.StatusForbidden, gin.H{"error": "This business is not a seller"})
			return
		}

		invoice := models.Invoice{
			InvoiceNumber:    generateInvoiceNumber(),
			SellerBusinessID: sellerID,
			Status:           models.InvoiceStatusDraft,
			Notes:            input.Notes,
		}

		if input.OrderID != "" {
			orderID, err := strconv.ParseUint(input.OrderID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order_id"})
				return
			}
			var order models.Order
			if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			if order.SellerBusinessID != sellerID {
				c.JSON(http.StatusForbidden, gin.H{"error": "Order does not belong to this seller"})
				return
			}

			invoice.OrderID = &orderID
			invoice.BuyerBusinessID = order.BuyerBusinessID
			invoice.CurrencyID = order.CurrencyID
			invoice.Subtotal = order.Subtotal
			invoice.TaxAmount = order.TaxAmount
			invoice.DiscountAmount = order.DiscountAmount
			invoice.ShippingAmount = order.ShippingAmount
			for _, line := range order.Items {
				invoice.Items = append(invoice.Items, models.InvoiceItem{
					ProductID:   line.ProductID,
					ProductName: line.ProductName,
					Quantity:    line.Quantity,
					UnitPrice:   line.UnitPrice,
					TotalPrice:  line.TotalPrice,
				})
			}
		} else {
			linkID, err := strconv.ParseUint(input.PaymentLinkID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment_link_id"})
				return
			}
			var link models.PaymentLink
			if err := db.Preload("Items").First(&link, "id = ?", linkID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Payment link not found"})
				return
			}
			if link.SellerBusinessID != sellerID {
				c.JSON(http.StatusForbidden, gin.H{"error": "Payment link does not belong to this seller"})
				return
			}
			if link.BuyerBusinessID == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Payment link has no buyer to invoice"})
				return
			}

			invoice.PaymentLinkID = &linkID
			invoice.BuyerBusinessID = *link.BuyerBusinessID
			invoice.CurrencyID = link.CurrencyID
			invoice.Subtotal = link.TotalAmount
			invoice.TaxAmount = link.TaxAmount
			invoice.DiscountAmount = link.DiscountAmount
			for _, line := range link.Items {
				invoice.Items = append(invoice.Items, models.InvoiceItem{
					ProductID:   line.ProductID,
					ProductName: line.ProductName,
					Quantity:    line.Quantity,
					UnitPrice:   line.UnitPrice,
					TotalPrice:  line.TotalPrice,
					Description: line.Notes,
				})
			}
		}

		// Explicit amounts on the request override the source's.
		if input.Subtotal != nil {
			invoice.Subtotal = *input.Subtotal
		}
		if input.TaxAmount != nil {
			invoice.TaxAmount = *input.TaxAmount
		}
		if input.DiscountAmount != nil {
			invoice.DiscountAmount = *input.DiscountAmount
		}
		if input.ShippingAmount != nil {
			invoice.ShippingAmount = *input.ShippingAmount
		}
		invoice.TotalAmount = invoice.Subtotal + invoice.TaxAmount - invoice.DiscountAmount + invoice.ShippingAmount

		dueDays := input.DueDateDays
		if dueDays <= 0 {
			dueDays = 30
		}
		dueDate := time.Now().AddDate(0, 0, dueDays)
		invoice.DueDate = &dueDate

		if err := db.Create(&invoice).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
			return
		}

		c.JSON(http.StatusCreated, invoice)
	}
}

// GET /invoices/:id
// Visible to the owner of either party's business.
func GetInvoiceByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
			return
		}

		var invoice models.Invoice
		err = db.Preload("Items").Preload("SellerBusiness").Preload("BuyerBusiness").
			First(&invoice, "id = ?", id).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}

		userID, _ := middleware.UserID(c)
		sellerOwner := invoice.SellerBusiness != nil && invoice.SellerBusiness.UserID == userID
		buyerOwner := invoice.BuyerBusiness != nil && invoice.BuyerBusiness.UserID == userID
		if !sellerOwner && !buyerOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not a party to this invoice"})
			return
		}

		c.JSON(http.StatusOK, invoice)
	}
}

// GET /invoices/business/:id
// role=seller (default) lists issued invoices, role=buyer lists received.
func GetBusinessInvoices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business id"})
			return
		}

		var business models.Business
		if err := db.First(&business, "id = ?", businessID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		userID, _ := middleware.UserID(c)
		if business.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this business"})
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

		query := db.Preload("Items")
		if c.DefaultQuery("role", "seller") == "buyer" {
			query = query.Where("buyer_business_id = ?", businessID)
		} else {
			query = query.Where("seller_business_id = ?", businessID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var invoices []models.Invoice
		err = query.Order("created_at desc").
			Offset((page - 1) * limit).Limit(limit).
			Find(&invoices).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"invoices": invoices,
			"page":     page,
			"limit":    limit,
		})
	}
}

// PUT /invoices/:id/status
func UpdateInvoiceStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
			return
		}

		var input UpdateInvoiceStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		switch input.Status {
		case models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusPaid,
			models.InvoiceStatusOverdue, models.InvoiceStatusCancelled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		var invoice models.Invoice
		if err := db.Preload("SellerBusiness").First(&invoice, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}

		userID, _ := middleware.UserID(c)
		if invoice.SellerBusiness == nil || invoice.SellerBusiness.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the issuing seller can update this invoice"})
			return
		}

		updates := map[string]any{"status": input.Status}
		if input.Status == models.InvoiceStatusPaid {
			updates["paid_at"] = time.Now()
		}
		if err := db.Model(&invoice).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
			return
		}

		c.JSON(http.StatusOK, invoice)
	}
}
