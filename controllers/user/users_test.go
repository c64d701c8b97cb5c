package userControllers

import (
	"bytes"
	"encoding/json"
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

func testRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Business{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	r.POST("/users/register", Register(db))
	r.POST("/users/login", Login(db))
	me := r.Group("/users")
	me.Use(middleware.ValidateToken)
	{
		me.GET("/me", GetMe(db))
		me.PUT("/me", UpdateMe(db))
	}
	return r, db
}

func post(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validRegistration() gin.H {
	return gin.H{
		"email":         "owner@example.com",
		"password":      "s3cret-pass",
		"full_name":     "A Owner",
		"phone":         "+911234567890",
		"business_name": "Owner Mills",
		"can_sell":      true,
	}
}

func TestRegisterCreatesUserAndBusiness(t *testing.T) {
	r, db := testRouter(t)

	w := post(t, r, "/users/register", validRegistration())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body)
	}

	var resp struct {
		Token    string          `json:"token"`
		User     models.User     `json:"user"`
		Business models.Business `json:"business"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("no token returned")
	}
	if resp.Business.BusinessName != "Owner Mills" || !resp.Business.CanSell {
		t.Fatalf("business = %+v", resp.Business)
	}
	// can_buy defaults on when omitted.
	if !resp.Business.CanBuy {
		t.Fatalf("can_buy should default to true")
	}

	var stored models.User
	if err := db.First(&stored, "email = ?", "owner@example.com").Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestRegisterMissingFieldPersistsNothing(t *testing.T) {
	r, db := testRouter(t)

	body := validRegistration()
	delete(body, "business_name")
	w := post(t, r, "/users/register", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var users, businesses int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Business{}).Count(&businesses)
	if users != 0 || businesses != 0 {
		t.Fatalf("persisted users=%d businesses=%d, want 0/0", users, businesses)
	}
}

func TestRegisterRejectsNoCapability(t *testing.T) {
	r, _ := testRouter(t)

	body := validRegistration()
	body["can_buy"] = false
	body["can_sell"] = false
	w := post(t, r, "/users/register", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, db := testRouter(t)

	if w := post(t, r, "/users/register", validRegistration()); w.Code != http.StatusCreated {
		t.Fatalf("first register: %d", w.Code)
	}
	if w := post(t, r, "/users/register", validRegistration()); w.Code != http.StatusConflict {
		t.Fatalf("second register: status = %d, want 409", w.Code)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("user rows = %d, want 1", count)
	}
}

func TestLoginAndGetMe(t *testing.T) {
	r, _ := testRouter(t)

	if w := post(t, r, "/users/register", validRegistration()); w.Code != http.StatusCreated {
		t.Fatalf("register: %d", w.Code)
	}

	w := post(t, r, "/users/login", gin.H{"email": "owner@example.com", "password": "s3cret-pass"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d: %s", w.Code, w.Body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status = %d: %s", rec.Code, rec.Body)
	}

	var me models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Email != "owner@example.com" || len(me.Businesses) != 1 {
		t.Fatalf("me = %+v", me)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := testRouter(t)

	if w := post(t, r, "/users/register", validRegistration()); w.Code != http.StatusCreated {
		t.Fatalf("register: %d", w.Code)
	}

	w := post(t, r, "/users/login", gin.H{"email": "owner@example.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("round-trip")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !auth.CheckPassword(hash, "round-trip") {
		t.Fatalf("correct password rejected")
	}
	if auth.CheckPassword(hash, "other") {
		t.Fatalf("wrong password accepted")
	}
}
