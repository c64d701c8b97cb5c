package chatcore

import (
	"testing"

	"github.com/btwitsvirendra/Airavat--Back-end/models"
)

func TestCreateOrderFromChatAmounts(t *testing.T) {
	svc, sink := testService(t)
	buyer, seller, product := seedParties(t, svc)

	conversation, err := svc.GetOrCreateConversation(ConversationCmd{
		CallerBusinessID: buyer.ID,
		BuyerBusinessID:  buyer.ID,
		SellerBusinessID: seller.ID,
		ProductID:        &product.ID,
	})
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}

	order, err := svc.CreateOrderFromChat(OrderFromChatCmd{
		ConversationID:   conversation.ID,
		CallerBusinessID: buyer.ID,
		ProductID:        product.ID,
		Quantity:         10,
		AgreedPrice:      900,
		TaxAmount:        450,
		ShippingAmount:   200,
		DiscountAmount:   100,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.Subtotal != 9000 {
		t.Fatalf("subtotal = %v, want 9000", order.Subtotal)
	}
	if order.FinalAmount != 9550 {
		t.Fatalf("final = %v, want 9550", order.FinalAmount)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductName != product.ProductName || item.UnitPrice != 900 || item.TotalPrice != 9000 {
		t.Fatalf("item snapshot wrong: %+v", item)
	}
	if item.TaxRate != 0.05 {
		t.Fatalf("tax rate = %v, want 0.05", item.TaxRate)
	}

	var reloaded models.Conversation
	svc.DB.First(&reloaded, conversation.ID)
	if reloaded.OrderID == nil || *reloaded.OrderID != order.ID {
		t.Fatalf("conversation not linked to order")
	}

	var notifications int64
	svc.DB.Model(&models.Notification{}).Where("type = ?", models.NotificationTypeOrder).Count(&notifications)
	if notifications != 2 {
		t.Fatalf("order notifications = %d, want 2 (both parties)", notifications)
	}

	if !sink.has(ConversationRoom(conversation.ID), "order_created") {
		t.Fatalf("order_created not emitted")
	}
	if !sink.has(BusinessRoom(seller.ID), "new_order") {
		t.Fatalf("new_order not emitted to the seller room")
	}
}

func TestCreateOrderFromChatSellerForbidden(t *testing.T) {
	svc, _ := testService(t)
	buyer, seller, product := seedParties(t, svc)

	conversation, _ := svc.GetOrCreateConversation(ConversationCmd{
		CallerBusinessID: buyer.ID,
		BuyerBusinessID:  buyer.ID,
		SellerBusinessID: seller.ID,
		ProductID:        &product.ID,
	})

	_, err := svc.CreateOrderFromChat(OrderFromChatCmd{
		ConversationID:   conversation.ID,
		CallerBusinessID: seller.ID,
		ProductID:        product.ID,
		Quantity:         1,
		AgreedPrice:      500,
	})
	if err != ErrNotBuyer {
		t.Fatalf("err = %v, want ErrNotBuyer", err)
	}

	var count int64
	svc.DB.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("order rows = %d, want 0", count)
	}
}

func TestCreateOrderFromChatForeignProduct(t *testing.T) {
	svc, _ := testService(t)
	buyer, seller, _ := seedParties(t, svc)

	foreign := models.Product{BusinessID: buyer.ID, ProductName: "Not Sellers", BasePrice: 50, Status: models.ProductStatusActive}
	if err := svc.DB.Create(&foreign).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	conversation, _ := svc.GetOrCreateConversation(ConversationCmd{
		CallerBusinessID: buyer.ID,
		BuyerBusinessID:  buyer.ID,
		SellerBusinessID: seller.ID,
	})

	_, err := svc.CreateOrderFromChat(OrderFromChatCmd{
		ConversationID:   conversation.ID,
		CallerBusinessID: buyer.ID,
		ProductID:        foreign.ID,
		Quantity:         1,
		AgreedPrice:      50,
	})
	if err != ErrProductNotSellers {
		t.Fatalf("err = %v, want ErrProductNotSellers", err)
	}
}

func TestCreateQuoteFromChat(t *testing.T) {
	svc, sink := testService(t)
	buyer, seller, product := seedParties(t, svc)

	inquiry := models.Inquiry{BuyerBusinessID: buyer.ID, ProductID: &product.ID, Quantity: 100, Status: models.InquiryStatusOpen}
	if err := svc.DB.Create(&inquiry).Error; err != nil {
		t.Fatalf("create inquiry: %v", err)
	}

	conversation, _ := svc.GetOrCreateConversation(ConversationCmd{
		CallerBusinessID: buyer.ID,
		BuyerBusinessID:  buyer.ID,
		SellerBusinessID: seller.ID,
		ProductID:        &product.ID,
		InquiryID:        &inquiry.ID,
	})

	if _, err := svc.CreateQuoteFromChat(QuoteFromChatCmd{
		ConversationID:   conversation.ID,
		CallerBusinessID: buyer.ID,
		InquiryID:        inquiry.ID,
		Price:            950,
		Quantity:         100,
	}); err != ErrNotSeller {
		t.Fatalf("buyer quoting: err = %v, want ErrNotSeller", err)
	}

	quotation, err := svc.CreateQuoteFromChat(QuoteFromChatCmd{
		ConversationID:   conversation.ID,
		CallerBusinessID: seller.ID,
		InquiryID:        inquiry.ID,
		Price:            950,
		Quantity:         100,
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quotation.ValidityDays != 30 {
		t.Fatalf("validity = %d, want default 30", quotation.ValidityDays)
	}

	var reloaded models.Inquiry
	svc.DB.First(&reloaded, inquiry.ID)
	if reloaded.Status != models.InquiryStatusQuoted {
		t.Fatalf("inquiry status = %q, want quoted", reloaded.Status)
	}

	if !sink.has(ConversationRoom(conversation.ID), "quotation_created") {
		t.Fatalf("quotation_created not emitted")
	}
}
