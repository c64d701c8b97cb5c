package chatcore

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderFromChatCmd struct {
	ConversationID   uint64
	CallerBusinessID uint64
	ProductID        uint64
	Quantity         int
	AgreedPrice      float64
	CurrencyID       *uint64
	TaxAmount        float64
	DiscountAmount   float64
	ShippingAmount   float64
	DeliveryAddress  string
	DeliveryCity     string
	DeliveryState    string
	DeliveryPincode  string
	DeliveryCountry  string
	BuyerNotes       string
}

// CreateOrderFromChat converts a negotiated agreement into an order. Only the
// conversation's buyer may commit, and the product must belong to the seller.
// The order item snapshots name and price; tax/discount rates are derived
// from the absolute amounts against the subtotal.
func (s *Service) CreateOrderFromChat(cmd OrderFromChatCmd) (*models.Order, error) {
	if cmd.ConversationID == 0 || cmd.ProductID == 0 || cmd.Quantity <= 0 || cmd.AgreedPrice <= 0 {
		return nil, ErrMissingFields
	}

	var conversation models.Conversation
	err := s.DB.First(&conversation, "id = ?", cmd.ConversationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	if cmd.CallerBusinessID != conversation.BuyerBusinessID {
		return nil, ErrNotBuyer
	}

	var product models.Product
	err = s.DB.First(&product, "id = ?", cmd.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if product.BusinessID != conversation.SellerBusinessID {
		return nil, ErrProductNotSellers
	}

	subtotal := cmd.AgreedPrice * float64(cmd.Quantity)
	finalAmount := subtotal + cmd.TaxAmount + cmd.ShippingAmount - cmd.DiscountAmount

	country := cmd.DeliveryCountry
	if country == "" {
		country = "India"
	}
	notes := cmd.BuyerNotes
	if notes == "" {
		notes = "Order created from chat conversation " + strconv.FormatUint(cmd.ConversationID, 10)
	}

	order := models.Order{
		OrderNumber:      generateOrderNumber(),
		BuyerBusinessID:  conversation.BuyerBusinessID,
		SellerBusinessID: conversation.SellerBusinessID,
		CurrencyID:       cmd.CurrencyID,
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		Subtotal:         subtotal,
		TaxAmount:        cmd.TaxAmount,
		DiscountAmount:   cmd.DiscountAmount,
		ShippingAmount:   cmd.ShippingAmount,
		FinalAmount:      finalAmount,
		DeliveryAddress:  cmd.DeliveryAddress,
		DeliveryCity:     cmd.DeliveryCity,
		DeliveryState:    cmd.DeliveryState,
		DeliveryPincode:  cmd.DeliveryPincode,
		DeliveryCountry:  country,
		BuyerNotes:       notes,
	}

	item := models.OrderItem{
		ProductID:    product.ID,
		ProductName:  product.ProductName,
		Quantity:     cmd.Quantity,
		UnitPrice:    cmd.AgreedPrice,
		TotalPrice:   subtotal,
		DiscountRate: rateOf(cmd.DiscountAmount, subtotal),
		TaxRate:      rateOf(cmd.TaxAmount, subtotal),
		HSCode:       product.HSCode,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		item.OrderID = order.ID
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Model(&conversation).Update("order_id", order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	order.Items = []models.OrderItem{item}

	orderIDStr := strconv.FormatUint(order.ID, 10)
	meta := map[string]string{
		"order_id":     orderIDStr,
		"order_number": order.OrderNumber,
	}
	if _, err := s.notify(conversation.SellerBusinessID, models.NotificationTypeOrder,
		"New Order Received", "You received a new order: "+order.OrderNumber,
		"/orders/"+orderIDStr, meta); err != nil {
		return nil, err
	}
	if _, err := s.notify(conversation.BuyerBusinessID, models.NotificationTypeOrder,
		"Order Created", "Your order "+order.OrderNumber+" has been created successfully",
		"/orders/"+orderIDStr, meta); err != nil {
		return nil, err
	}

	s.emit(ConversationRoom(cmd.ConversationID), "order_created", order)
	s.emit(BusinessRoom(conversation.SellerBusinessID), "new_order", order)
	return &order, nil
}

type QuoteFromChatCmd struct {
	ConversationID   uint64
	CallerBusinessID uint64
	InquiryID        uint64
	Price            float64
	Quantity         int
	ValidityDays     int
	DeliveryTimeDays *int
	PaymentTerms     string
	OtherTerms       string
}

// CreateQuoteFromChat records a seller's quotation against the inquiry the
// conversation is anchored to and flips the inquiry to quoted.
func (s *Service) CreateQuoteFromChat(cmd QuoteFromChatCmd) (*models.Quotation, error) {
	if cmd.ConversationID == 0 || cmd.InquiryID == 0 || cmd.Price <= 0 || cmd.Quantity <= 0 {
		return nil, ErrMissingFields
	}

	var conversation models.Conversation
	err := s.DB.First(&conversation, "id = ?", cmd.ConversationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	if cmd.CallerBusinessID != conversation.SellerBusinessID {
		return nil, ErrNotSeller
	}

	var inquiry models.Inquiry
	err = s.DB.First(&inquiry, "id = ?", cmd.InquiryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInquiryNotFound
	}
	if err != nil {
		return nil, err
	}

	if cmd.ValidityDays <= 0 {
		cmd.ValidityDays = 30
	}
	quotation := models.Quotation{
		InquiryID:        cmd.InquiryID,
		SellerBusinessID: conversation.SellerBusinessID,
		Price:            cmd.Price,
		Quantity:         cmd.Quantity,
		ValidityDays:     cmd.ValidityDays,
		DeliveryTimeDays: cmd.DeliveryTimeDays,
		PaymentTerms:     cmd.PaymentTerms,
		OtherTerms:       cmd.OtherTerms,
		Status:           "sent",
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quotation).Error; err != nil {
			return err
		}
		return tx.Model(&inquiry).Update("status", models.InquiryStatusQuoted).Error
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.notify(inquiry.BuyerBusinessID, models.NotificationTypeQuotation,
		"New Quotation Received", "You received a new quotation for your inquiry",
		"/quotations/"+strconv.FormatUint(quotation.ID, 10),
		map[string]string{
			"quotation_id": strconv.FormatUint(quotation.ID, 10),
			"inquiry_id":   strconv.FormatUint(cmd.InquiryID, 10),
		}); err != nil {
		return nil, err
	}

	s.emit(ConversationRoom(cmd.ConversationID), "quotation_created", quotation)
	return &quotation, nil
}

func rateOf(amount, subtotal float64) float64 {
	if amount <= 0 || subtotal <= 0 {
		return 0
	}
	return amount / subtotal
}

func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.Split(uuid.NewString(), "-")[0])
	return "ORD-" + time.Now().Format("20060102150405") + "-" + suffix
}
