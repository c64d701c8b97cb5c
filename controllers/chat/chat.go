package chatControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/btwitsvirendra/Airavat--Back-end/chatcore"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP statuses so every chat endpoint
// reports access failures the same way.
func statusFor(err error) int {
	switch {
	case errors.Is(err, chatcore.ErrConversationNotFound),
		errors.Is(err, chatcore.ErrMessageNotFound),
		errors.Is(err, chatcore.ErrProductNotFound),
		errors.Is(err, chatcore.ErrInquiryNotFound):
		return http.StatusNotFound
	case errors.Is(err, chatcore.ErrNotParticipant),
		errors.Is(err, chatcore.ErrNotBuyer),
		errors.Is(err, chatcore.ErrNotSeller),
		errors.Is(err, chatcore.ErrNotAuthor),
		errors.Is(err, chatcore.ErrProductNotSellers):
		return http.StatusForbidden
	case errors.Is(err, chatcore.ErrSelfConversation),
		errors.Is(err, chatcore.ErrMissingFields):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abortWith(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Something went wrong"
	}
	c.JSON(status, gin.H{"error": msg})
}

// callerBusiness resolves the asserted business id and confirms the caller
// owns it. Admins bypass the ownership check.
func callerBusiness(svc *chatcore.Service, c *gin.Context) (uint64, bool) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "business_id is required"})
		return 0, false
	}

	var business models.Business
	if err := svc.DB.First(&business, "id = ?", businessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return 0, false
	}
	userID, _ := middleware.UserID(c)
	if business.UserID != userID && c.GetString(middleware.CtxRole) != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this business"})
		return 0, false
	}
	return businessID, true
}

func parseID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
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

type ConversationInput struct {
	BuyerBusinessID  string `json:"buyer_business_id"`
	SellerBusinessID string `json:"seller_business_id"`
	ProductID        string `json:"product_id"`
	InquiryID        string `json:"inquiry_id"`
}

type SendMessageInput struct {
	ConversationID string          `json:"conversation_id"`
	MessageType    string          `json:"message_type"`
	Content        string          `json:"content"`
	Metadata       json.RawMessage `json:"metadata"`
}

type OrderFromChatInput struct {
	ConversationID  string  `json:"conversation_id"`
	ProductID       string  `json:"product_id"`
	Quantity        int     `json:"quantity"`
	AgreedPrice     float64 `json:"agreed_price"`
	CurrencyID      string  `json:"currency_id"`
	TaxAmount       float64 `json:"tax_amount"`
	DiscountAmount  float64 `json:"discount_amount"`
	ShippingAmount  float64 `json:"shipping_amount"`
	DeliveryAddress string  `json:"delivery_address"`
	DeliveryCity    string  `json:"delivery_city"`
	DeliveryState   string  `json:"delivery_state"`
	DeliveryPincode string  `json:"delivery_pincode"`
	DeliveryCountry string  `json:"delivery_country"`
	BuyerNotes      string  `json:"buyer_notes"`
}

type QuoteFromChatInput struct {
	ConversationID   string  `json:"conversation_id"`
	InquiryID        string  `json:"inquiry_id"`
	Price            float64 `json:"price"`
	Quantity         int     `json:"quantity"`
	ValidityDays     int     `json:"validity_days"`
	DeliveryTimeDays *int    `json:"delivery_time_days"`
	PaymentTerms     string  `json:"payment_terms"`
	OtherTerms       string  `json:"other_terms"`
}

// POST /chat/conversations
func GetOrCreateConversation(svc *chatcore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, ok := callerBusiness(svc, c)
		if !ok {
			return
		}

		var input ConversationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		buyerID, err1 := parseID(input.BuyerBusinessID)
		sellerID, err2 := parseID(input.SellerBusinessID)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "buyer_business_id and seller_business_id are required"})
			return
		}

		conversation, err := svc.GetOrCreateConversation(chatcore.ConversationCmd{
			CallerBusinessID: businessID,
			BuyerBusinessID:  buyerID,
			SellerBusinessID: sellerID,
			ProductID:        optionalID(input.ProductID),
			InquiryID:        optionalID(input.InquiryID),
		})
		if err != nil {
			abortWith(c, err)
			return
		}

		c.JSON(http.StatusOK, conversation)
	}
}

// GET /chat/conversations
func GetConversations(svc *chatcore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, ok := callerBusiness(svc, c)
		if !ok {
			return
		}

		conversations, err := svc.Conversations(businessID)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.JSON(http.StatusOK, conversations)
	}
}

// GET /chat/conversations/:id/messages
func GetMessages(svc *chatcore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, ok := callerBusiness(svc, c)
		if !ok {
			return
		}

		conversationID, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation id"})
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		messages, err := svc.Messages(conversationID, businessID, page, limit)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"messages": messages,
			"page":     page,
			"limit":    limit,
		})
	}
}

// POST /chat/messages
func SendMessage(svc *chatcore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, ok := callerBusiness(svc, c)
		if !ok {
			return
		}

		var input SendMessageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		conversationID, err := parseID(input.ConversationID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversation_id is required"})
			return
		}

		message, err := svc.SendMessage(chatcore.SendMessageCmd{
			ConversationID:   conversationID,
			SenderBusinessID: businessID,
			MessageType:      input.MessageType,
			Content:          input.Content,
			Metadata:         input.Metadata,
		})
		if err != nil {
			abortWith(c, err)
			return
		}

		c.JSON(http.StatusCreated, message)
	}
}

// PUT /chat/conversations/:id/read
func MarkConversationRead(svc *chatcore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, ok := callerBusiness(svc, c)
		if !ok {
			return
		}

		conversationID, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation id"})
			return
		}

		if err := svc.MarkRead(conversationID, businessID); err != nil {
			abortWith(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Messages marked as read"})
	}
}

// DELETE /chat/messages/:id
func DeleteMessage(svc *chatcore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, ok := callerBusiness(svc, c)
		if !ok {
			return
		}

		messageID, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
			return
		}

		if err := svc.DeleteMessage(messageID, businessID); err != nil {
			abortWith(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
	}
}

// POST /chat/orders/create
func CreateOrderFromChat(svc *chatcore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, ok := callerBusiness(svc, c)
		if !ok {
			return
		}

		var input OrderFromChatInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		conversationID, err1 := parseID(input.ConversationID)
		productID, err2 := parseID(input.ProductID)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversation_id and product_id are required"})
			return
		}

		order, err := svc.CreateOrderFromChat(chatcore.OrderFromChatCmd{
			ConversationID:   conversationID,
			CallerBusinessID: businessID,
			ProductID:        productID,
			Quantity:         input.Quantity,
			AgreedPrice:      input.AgreedPrice,
			CurrencyID:       optionalID(input.CurrencyID),
			TaxAmount:        input.TaxAmount,
			DiscountAmount:   input.DiscountAmount,
			ShippingAmount:   input.ShippingAmount,
			DeliveryAddress:  input.DeliveryAddress,
			DeliveryCity:     input.DeliveryCity,
			DeliveryState:    input.DeliveryState,
			DeliveryPincode:  input.DeliveryPincode,
			DeliveryCountry:  input.DeliveryCountry,
			BuyerNotes:       input.BuyerNotes,
		})
		if err != nil {
			abortWith(c, err)
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

// POST /chat/quotations/create
func CreateQuoteFromChat(svc *chatcore.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, ok := callerBusiness(svc, c)
		if !ok {
			return
		}

		var input QuoteFromChatInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		conversationID, err1 := parseID(input.ConversationID)
		inquiryID, err2 := parseID(input.InquiryID)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversation_id and inquiry_id are required"})
			return
		}

		quotation, err := svc.CreateQuoteFromChat(chatcore.QuoteFromChatCmd{
			ConversationID:   conversationID,
			CallerBusinessID: businessID,
			InquiryID:        inquiryID,
			Price:            input.Price,
			Quantity:         input.Quantity,
			ValidityDays:     input.ValidityDays,
			DeliveryTimeDays: input.DeliveryTimeDays,
			PaymentTerms:     input.PaymentTerms,
			OtherTerms:       input.OtherTerms,
		})
		if err != nil {
			abortWith(c, err)
			return
		}

		c.JSON(http.StatusCreated, quotation)
	}
}
