package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"bookstore-backend/models"
	"bookstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
	os.Exit(m.Run())
}

// setupRouter wires the full route table against a fresh in-memory database.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	ddl := []string{
		`CREATE TABLE "users" (
			"id" TEXT PRIMARY KEY,
			"email" TEXT NOT NULL UNIQUE,
			"password" TEXT NOT NULL,
			"name" TEXT,
			"role" TEXT DEFAULT 'customer',
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE TABLE "books" (
			"id" TEXT PRIMARY KEY,
			"title" TEXT NOT NULL,
			"author_id" TEXT NOT NULL,
			"number_of_pages" INTEGER,
			"price" NUMERIC NOT NULL,
			"weight" NUMERIC NOT NULL,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE TABLE "music_albums" (
			"id" TEXT PRIMARY KEY,
			"artist_id" TEXT NOT NULL,
			"number_of_tracks" INTEGER,
			"price" NUMERIC NOT NULL,
			"weight" NUMERIC NOT NULL,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE TABLE "software_licenses" (
			"id" TEXT PRIMARY KEY,
			"price" NUMERIC NOT NULL,
			"weight" NUMERIC NOT NULL,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE TABLE "carts" (
			"id" TEXT PRIMARY KEY,
			"user_id" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME
		)`,
		`CREATE TABLE "cart_items" (
			"id" TEXT PRIMARY KEY,
			"cart_id" TEXT NOT NULL,
			"product_kind" TEXT NOT NULL,
			"product_id" TEXT NOT NULL,
			"quantity" INTEGER NOT NULL DEFAULT 1,
			"cached_price" NUMERIC NOT NULL,
			"cached_weight" NUMERIC NOT NULL,
			"created_at" DATETIME,
			"updated_at" DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_cart_kind_product ON "cart_items"("cart_id","product_kind","product_id")`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	r := gin.New()
	SetupRoutes(r, db)
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) (models.User, string) {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	token, _ := utils.GenerateToken(user.ID, user.Email, user.Role)
	return user, token
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/api/books", "/api/albums", "/api/licenses"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestCartRoutesRequireAuth(t *testing.T) {
	router, _ := setupRouter(t)

	cases := []struct{ method, path string }{
		{"GET", "/api/cart"},
		{"POST", "/api/cart/add"},
		{"POST", "/api/cart/remove"},
		{"GET", "/api/cart/totals"},
		{"DELETE", "/api/cart"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestAdminRoutesBlockCustomers(t *testing.T) {
	router, db := setupRouter(t)
	_, token := seedUser(t, db, "customer@test.com", "customer")

	req := httptest.NewRequest("POST", "/api/admin/books", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// End-to-end through the real route table: add to cart, read totals.
func TestCartFlowThroughRoutes(t *testing.T) {
	router, db := setupRouter(t)
	author, _ := seedUser(t, db, "author@test.com", "customer")
	_, token := seedUser(t, db, "shopper@test.com", "customer")

	book := models.Book{
		ID:       uuid.New(),
		Title:    "Routed Book",
		AuthorID: author.ID,
		Price:    decimal.RequireFromString("10.00"),
		Weight:   decimal.RequireFromString("1.50"),
	}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"product_kind": "book",
		"product_id":   book.ID,
		"quantity":     2,
	})
	req := httptest.NewRequest("POST", "/api/cart/add", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("add failed: %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/cart/totals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("totals failed: %d", w.Code)
	}

	var totals map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &totals)
	if totals["item_count"].(float64) != 1 {
		t.Errorf("expected 1 line, got %v", totals["item_count"])
	}
}
