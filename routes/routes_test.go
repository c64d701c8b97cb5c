package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/btwitsvirendra/Airavat--Back-end/ws"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.GuestSession{}, &models.Business{},
		&models.Category{}, &models.Currency{}, &models.PriceUnit{},
		&models.Product{}, &models.ProductImage{}, &models.CartItem{},
		&models.Inquiry{}, &models.Quotation{},
		&models.Conversation{}, &models.ChatMessage{},
		&models.Order{}, &models.OrderItem{},
		&models.PaymentLink{}, &models.PaymentLinkItem{},
		&models.Invoice{}, &models.InvoiceItem{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	r := gin.New()
	SetupRoutes(r, db, hub)
	return r, db
}

type actor struct {
	Token    string
	User     models.User
	Business models.Business
}

func registerActor(t *testing.T, r *gin.Engine, email, businessName string, canSell bool) actor {
	t.Helper()
	w := do(t, r, http.MethodPost, "/users/register", "", "", gin.H{
		"email":         email,
		"password":      "pass-123456",
		"full_name":     "Owner of " + businessName,
		"phone":         "+911111111111",
		"business_name": businessName,
		"can_sell":      canSell,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d: %s", email, w.Code, w.Body)
	}
	var a actor
	if err := json.Unmarshal(w.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode actor: %v", err)
	}
	return a
}

func do(t *testing.T, r *gin.Engine, method, path, token, businessID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if businessID != "" {
		req.Header.Set("X-Business-ID", businessID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestNegotiationToInvoiceFlow walks the whole happy path: two businesses
// meet over a product, negotiate in chat, the seller issues a payment link at
// the agreed price, the buyer claims it into the cart, and the seller
// invoices the link.
func TestNegotiationToInvoiceFlow(t *testing.T) {
	r, _ := testApp(t)

	seller := registerActor(t, r, "seller@example.com", "Seller Mills", true)
	buyer := registerActor(t, r, "buyer@example.com", "Buyer Traders", false)

	sellerBID := fmt.Sprint(seller.Business.ID)
	buyerBID := fmt.Sprint(buyer.Business.ID)

	// Seller lists a product at 1000.
	w := do(t, r, http.MethodPost, "/products", seller.Token, "", gin.H{
		"business_id":  sellerBID,
		"product_name": "Cotton Bales",
		"base_price":   1000.0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: status = %d: %s", w.Code, w.Body)
	}
	var product models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	productID := fmt.Sprint(product.ID)

	// Buyer opens a conversation about it.
	w = do(t, r, http.MethodPost, "/chat/conversations", buyer.Token, buyerBID, gin.H{
		"buyer_business_id":  buyerBID,
		"seller_business_id": sellerBID,
		"product_id":         productID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("conversation: status = %d: %s", w.Code, w.Body)
	}
	var conversation models.Conversation
	if err := json.Unmarshal(w.Body.Bytes(), &conversation); err != nil {
		t.Fatalf("decode conversation: %v", err)
	}

	// Buyer negotiates.
	w = do(t, r, http.MethodPost, "/chat/messages", buyer.Token, buyerBID, gin.H{
		"conversation_id": fmt.Sprint(conversation.ID),
		"content":         "Can you do 900 for 10 bales?",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("message: status = %d: %s", w.Code, w.Body)
	}

	// Seller issues a payment link at the agreed 900 x 10.
	w = do(t, r, http.MethodPost, "/payment-links", seller.Token, "", gin.H{
		"seller_business_id": sellerBID,
		"buyer_business_id":  buyerBID,
		"conversation_id":    fmt.Sprint(conversation.ID),
		"title":              "Cotton at agreed price",
		"items": []gin.H{{
			"product_id":       productID,
			"quantity":         10,
			"negotiated_price": 900.0,
		}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("payment link: status = %d: %s", w.Code, w.Body)
	}
	var linkResp struct {
		PaymentLink models.PaymentLink `json:"payment_link"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &linkResp); err != nil {
		t.Fatalf("decode link: %v", err)
	}
	link := linkResp.PaymentLink
	if link.FinalAmount != 9000 {
		t.Fatalf("link final = %v, want 9000", link.FinalAmount)
	}

	// Anyone with the code can see it.
	w = do(t, r, http.MethodGet, "/payment-links/code/"+link.LinkCode, "", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("public fetch: status = %d", w.Code)
	}

	// Buyer claims it into the cart.
	w = do(t, r, http.MethodPost, "/payment-links/"+link.LinkCode+"/add-to-cart", buyer.Token, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("claim: status = %d: %s", w.Code, w.Body)
	}

	// The claimed items land in the buyer's business cart at the link price.
	w = do(t, r, http.MethodGet, "/cart", buyer.Token, buyerBID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("business cart: status = %d: %s", w.Code, w.Body)
	}
	var cart struct {
		Summary struct {
			Subtotal float64 `json:"subtotal"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if cart.Summary.Subtotal != 9000 {
		t.Fatalf("claimed subtotal = %v, want 9000", cart.Summary.Subtotal)
	}

	// Seller invoices the link; the agreed total carries through.
	w = do(t, r, http.MethodPost, "/invoices", seller.Token, "", gin.H{
		"payment_link_id":    fmt.Sprint(link.ID),
		"seller_business_id": sellerBID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("invoice: status = %d: %s", w.Code, w.Body)
	}
	var invoice models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &invoice); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if invoice.TotalAmount != 9000 {
		t.Fatalf("invoice total = %v, want 9000", invoice.TotalAmount)
	}
	if invoice.BuyerBusinessID != buyer.Business.ID {
		t.Fatalf("invoice buyer = %d, want %d", invoice.BuyerBusinessID, buyer.Business.ID)
	}

	// The seller has a message notification from the negotiation.
	w = do(t, r, http.MethodGet, "/notifications/unread-count", seller.Token, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unread count: status = %d", w.Code)
	}
	var unread struct {
		Unread int64 `json:"unread"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &unread); err != nil {
		t.Fatalf("decode unread: %v", err)
	}
	if unread.Unread == 0 {
		t.Fatalf("seller should have an unread notification")
	}
}

func TestGuestSessionCart(t *testing.T) {
	r, _ := testApp(t)

	seller := registerActor(t, r, "seller2@example.com", "Second Mills", true)
	w := do(t, r, http.MethodPost, "/products", seller.Token, "", gin.H{
		"business_id":  fmt.Sprint(seller.Business.ID),
		"product_name": "Jute Rolls",
		"base_price":   250.0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: %d: %s", w.Code, w.Body)
	}
	var product models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
		t.Fatalf("decode product: %v", err)
	}

	// Anonymous visitor gets a session and fills a cart with it.
	w = do(t, r, http.MethodPost, "/auth/guest-session", "", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("guest session: status = %d: %s", w.Code, w.Body)
	}
	var session struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.SessionID == "" {
		t.Fatalf("empty session id")
	}

	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(
		fmt.Sprintf(`{"product_id":"%d","quantity":4}`, product.ID)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", session.SessionID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("guest add: status = %d: %s", rec.Code, rec.Body)
	}

	w = do(t, r, http.MethodGet, "/cart?session_id="+session.SessionID, "", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("guest cart: status = %d", w.Code)
	}
	var resp struct {
		Summary struct {
			Subtotal float64 `json:"subtotal"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Summary.Subtotal != 1000 {
		t.Fatalf("subtotal = %v, want 1000", resp.Summary.Subtotal)
	}
}
