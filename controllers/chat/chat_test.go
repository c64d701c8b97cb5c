package chatControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btwitsvirendra/Airavat--Back-end/auth"
	"github.com/btwitsvirendra/Airavat--Back-end/chatcore"
	"github.com/btwitsvirendra/Airavat--Back-end/middleware"
	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type noopSink struct{}

func (noopSink) Emit(room, event string, data any) {}

func testRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Business{}, &models.Product{},
		&models.Conversation{}, &models.ChatMessage{}, &models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := chatcore.NewService(db, noopSink{})
	r := gin.New()
	chat := r.Group("/chat")
	chat.Use(middleware.ValidateToken)
	{
		chat.POST("/conversations", GetOrCreateConversation(svc))
		chat.GET("/conversations", GetConversations(svc))
		chat.GET("/conversations/:id/messages", GetMessages(svc))
		chat.POST("/messages", SendMessage(svc))
	}
	return r, db
}

type party struct {
	user     models.User
	business models.Business
	token    string
}

func seedParty(t *testing.T, db *gorm.DB, email, name string) party {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", FullName: name, Phone: "1"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	business := models.Business{UserID: user.ID, BusinessName: name, CanBuy: true, CanSell: true}
	if err := db.Create(&business).Error; err != nil {
		t.Fatalf("create business: %v", err)
	}
	token, err := auth.IssueToken(&user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return party{user: user, business: business, token: token}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, businessID uint64, body any) *httptest.ResponseRecorder {
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
	if businessID != 0 {
		req.Header.Set("X-Business-ID", fmt.Sprint(businessID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendMessageRejectsForeignBusinessAssertion(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, db := testRouter(t)

	buyer := seedParty(t, db, "buyer@example.com", "Buyer Traders")
	seller := seedParty(t, db, "seller@example.com", "Seller Mills")
	outsider := seedParty(t, db, "outsider@example.com", "Outsider Co")

	conversation := models.Conversation{
		BuyerBusinessID:  buyer.business.ID,
		SellerBusinessID: seller.business.ID,
		IsActive:         true,
	}
	if err := db.Create(&conversation).Error; err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	// An authenticated user asserting a business they do not own is rejected
	// before any chat logic runs.
	w := doJSON(t, r, http.MethodPost, "/chat/messages", outsider.token, buyer.business.ID, gin.H{
		"conversation_id": fmt.Sprint(conversation.ID),
		"content":         "I will take the lot",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign assertion: status = %d, want 403: %s", w.Code, w.Body)
	}
	var count int64
	db.Model(&models.ChatMessage{}).Count(&count)
	if count != 0 {
		t.Fatalf("messages = %d, want 0", count)
	}

	// The real owner of the asserted business still goes through.
	w = doJSON(t, r, http.MethodPost, "/chat/messages", buyer.token, buyer.business.ID, gin.H{
		"conversation_id": fmt.Sprint(conversation.ID),
		"content":         "I will take the lot",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("owner send: status = %d: %s", w.Code, w.Body)
	}
	var message models.ChatMessage
	if err := db.First(&message).Error; err != nil {
		t.Fatalf("load message: %v", err)
	}
	if message.SenderBusinessID != buyer.business.ID {
		t.Fatalf("sender = %d, want %d", message.SenderBusinessID, buyer.business.ID)
	}
}

func TestReadEndpointsRejectForeignBusinessAssertion(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, db := testRouter(t)

	buyer := seedParty(t, db, "buyer2@example.com", "Buyer Traders")
	seller := seedParty(t, db, "seller2@example.com", "Seller Mills")
	outsider := seedParty(t, db, "outsider2@example.com", "Outsider Co")

	conversation := models.Conversation{
		BuyerBusinessID:  buyer.business.ID,
		SellerBusinessID: seller.business.ID,
		IsActive:         true,
	}
	if err := db.Create(&conversation).Error; err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/chat/conversations", outsider.token, buyer.business.ID, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("list conversations: status = %d, want 403", w.Code)
	}

	path := fmt.Sprintf("/chat/conversations/%d/messages", conversation.ID)
	w = doJSON(t, r, http.MethodGet, path, outsider.token, seller.business.ID, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("list messages: status = %d, want 403", w.Code)
	}

	// An asserted id that matches no business is a 404, not a silent pass.
	w = doJSON(t, r, http.MethodGet, "/chat/conversations", outsider.token, 9999, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown business: status = %d, want 404", w.Code)
	}
}
