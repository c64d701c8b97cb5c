package invoiceControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btwitsvirendra/Airavat--Back-end/auth"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	router      *gin.Engine
	db          *gorm.DB
	seller      models.Business
	buyer       models.Business
	sellerToken string
	buyerToken  string
	order       models.Order
	link        models.PaymentLink
}

func setup(t *testing.T) *fixture {
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
		&models.User{}, &models.Business{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
		&models.PaymentLink{}, &models.PaymentLinkItem{},
		&models.Invoice{}, &models.InvoiceItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sellerOwner := models.User{Email: "seller@example.com", PasswordHash: "x", FullName: "Seller", Phone: "1"}
	buyerOwner := models.User{Email: "buyer@example.com", PasswordHash: "x", FullName: "Buyer", Phone: "2"}
	for _, u := range []*models.User{&sellerOwner, &buyerOwner} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	seller := models.Business{UserID: sellerOwner.ID, BusinessName: "Seller Mills", CanSell: true}
	buyer := models.Business{UserID: buyerOwner.ID, BusinessName: "Buyer Traders", CanBuy: true}
	for _, b := range []*models.Business{&seller, &buyer} {
		if err := db.Create(b).Error; err != nil {
			t.Fatalf("create business: %v", err)
		}
	}

	product := models.Product{BusinessID: seller.ID, ProductName: "Cotton Bales", BasePrice: 1000, Status: models.ProductStatusActive}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	order := models.Order{
		OrderNumber:      "ORD-TEST-1",
		BuyerBusinessID:  buyer.ID,
		SellerBusinessID: seller.ID,
		Subtotal:         9000,
		TaxAmount:        450,
		ShippingAmount:   200,
		FinalAmount:      9650,
		Items: []models.OrderItem{{
			ProductID:   product.ID,
			ProductName: product.ProductName,
			Quantity:    10,
			UnitPrice:   900,
			TotalPrice:  9000,
		}},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}

	link := models.PaymentLink{
		SellerBusinessID: seller.ID,
		BuyerBusinessID:  &buyer.ID,
		LinkCode:         "PL-TEST-1",
		TotalAmount:      9000,
		FinalAmount:      9000,
		Status:           models.PaymentLinkStatusActive,
		Items: []models.PaymentLinkItem{{
			ProductID:   product.ID,
			ProductName: product.ProductName,
			Quantity:    10,
			BasePrice:   1000,
			UnitPrice:   900,
			TotalPrice:  9000,
		}},
	}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("create link: %v", err)
	}

	sellerToken, err := auth.IssueToken(&sellerOwner)
	if err != nil {
		t.Fatalf("seller token: %v", err)
	}
	buyerToken, err := auth.IssueToken(&buyerOwner)
	if err != nil {
		t.Fatalf("buyer token: %v", err)
	}

	r := gin.New()
	invoices := r.Group("/invoices")
	invoices.Use(middleware.ValidateToken)
	{
		invoices.POST("", CreateInvoice(db))
		invoices.GET("/:id", GetInvoiceByID(db))
		invoices.GET("/business/:id", GetBusinessInvoices(db))
		invoices.PUT("/:id/status", UpdateInvoiceStatus(db))
	}

	return &fixture{
		router:      r,
		db:          db,
		seller:      seller,
		buyer:       buyer,
		sellerToken: sellerToken,
		buyerToken:  buyerToken,
		order:       order,
		link:        link,
	}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCreateInvoiceFromOrder(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/invoices", f.sellerToken, gin.H{
		"order_id":           fmt.Sprint(f.order.ID),
		"seller_business_id": fmt.Sprint(f.seller.ID),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var invoice models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &invoice); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if invoice.TotalAmount != 9650 {
		t.Fatalf("total = %v, want 9650", invoice.TotalAmount)
	}
	if invoice.BuyerBusinessID != f.buyer.ID {
		t.Fatalf("buyer not inferred from order")
	}
	if invoice.Status != models.InvoiceStatusDraft {
		t.Fatalf("status = %q, want draft", invoice.Status)
	}
	if invoice.DueDate == nil {
		t.Fatalf("default due date missing")
	}
	if len(invoice.Items) != 1 || invoice.Items[0].TotalPrice != 9000 {
		t.Fatalf("items = %+v", invoice.Items)
	}
}

func TestCreateInvoiceFromPaymentLink(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/invoices", f.sellerToken, gin.H{
		"payment_link_id":    fmt.Sprint(f.link.ID),
		"seller_business_id": fmt.Sprint(f.seller.ID),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var invoice models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &invoice); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if invoice.TotalAmount != 9000 {
		t.Fatalf("total = %v, want 9000", invoice.TotalAmount)
	}
}

func TestCreateInvoiceRequiresExactlyOneSource(t *testing.T) {
	f := setup(t)

	for _, body := range []gin.H{
		{"seller_business_id": fmt.Sprint(f.seller.ID)},
		{
			"seller_business_id": fmt.Sprint(f.seller.ID),
			"order_id":           fmt.Sprint(f.order.ID),
			"payment_link_id":    fmt.Sprint(f.link.ID),
		},
	} {
		w := f.do(t, http.MethodPost, "/invoices", f.sellerToken, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400 for body %v", w.Code, body)
		}
	}
}

func TestCreateInvoiceForeignSellerForbidden(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/invoices", f.buyerToken, gin.H{
		"order_id":           fmt.Sprint(f.order.ID),
		"seller_business_id": fmt.Sprint(f.seller.ID),
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	var count int64
	f.db.Model(&models.Invoice{}).Count(&count)
	if count != 0 {
		t.Fatalf("invoice rows = %d, want 0", count)
	}
}

func TestGetInvoiceVisibleToBothParties(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/invoices", f.sellerToken, gin.H{
		"order_id":           fmt.Sprint(f.order.ID),
		"seller_business_id": fmt.Sprint(f.seller.ID),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var invoice models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &invoice); err != nil {
		t.Fatalf("decode: %v", err)
	}
	path := fmt.Sprintf("/invoices/%d", invoice.ID)

	if w := f.do(t, http.MethodGet, path, f.sellerToken, nil); w.Code != http.StatusOK {
		t.Fatalf("seller view: %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, path, f.buyerToken, nil); w.Code != http.StatusOK {
		t.Fatalf("buyer view: %d", w.Code)
	}
}

func TestUpdateInvoiceStatusPaidStampsPaidAt(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/invoices", f.sellerToken, gin.H{
		"order_id":           fmt.Sprint(f.order.ID),
		"seller_business_id": fmt.Sprint(f.seller.ID),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var invoice models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &invoice); err != nil {
		t.Fatalf("decode: %v", err)
	}
	path := fmt.Sprintf("/invoices/%d/status", invoice.ID)

	if w := f.do(t, http.MethodPut, path, f.buyerToken, gin.H{"status": models.InvoiceStatusPaid}); w.Code != http.StatusForbidden {
		t.Fatalf("buyer update: status = %d, want 403", w.Code)
	}

	if w := f.do(t, http.MethodPut, path, f.sellerToken, gin.H{"status": models.InvoiceStatusPaid}); w.Code != http.StatusOK {
		t.Fatalf("seller update: status = %d", w.Code)
	}

	var reloaded models.Invoice
	f.db.First(&reloaded, invoice.ID)
	if reloaded.Status != models.InvoiceStatusPaid || reloaded.PaidAt == nil {
		t.Fatalf("status = %q paid_at = %v", reloaded.Status, reloaded.PaidAt)
	}
}
