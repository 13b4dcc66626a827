package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"fullcolombiano/internal/handlers"
	"fullcolombiano/internal/middleware"
	"fullcolombiano/internal/models"
	"fullcolombiano/internal/repositories"
	"fullcolombiano/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

// setupApp sets up a Fiber app for testing with in-memory SQLite and all
// handlers/services wired the same way main does.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()

	// A unique database per setup keeps tests independent
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Vendor{}, &models.Product{}); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	vendorRepo := repositories.NewGORMVendorRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	authService := services.NewAuthService(userRepo, vendorRepo, nil, viper.GetString("JWT_SECRET"))
	vendorService := services.NewVendorService(vendorRepo, productRepo, nil)
	productService := services.NewProductService(productRepo, vendorRepo, nil)

	app := fiber.New()
	authRequired := middleware.AuthRequired(authService)
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1, authRequired)
	handlers.NewVendorHandler(vendorService).RegisterRoutes(apiV1, authRequired)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1, authRequired)

	return app
}

// doRequest performs a JSON request against the test app and decodes the
// response body when there is one.
func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// registerAndLogin creates an account and returns a bearer token for it.
func registerAndLogin(t *testing.T, app *fiber.App, email, username string) string {
	t.Helper()

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":            email,
		"username":         username,
		"password":         "Colombia2024!",
		"password_confirm": "Colombia2024!",
		"first_name":       "Test",
		"last_name":        "User",
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "Colombia2024!",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// createVendor creates a vendor profile for the token's user and returns
// its ID.
func createVendor(t *testing.T, app *fiber.App, token, businessName string) string {
	t.Helper()

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/vendors", map[string]string{
		"business_name": businessName,
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	token := registerAndLogin(t, app, "maria@example.com", "maria")

	// Duplicate email is rejected with field detail
	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":            "maria@example.com",
		"username":         "maria2",
		"password":         "Colombia2024!",
		"password_confirm": "Colombia2024!",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["message"])

	// Password mismatch is a validation failure
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":            "otro@example.com",
		"username":         "otro",
		"password":         "Colombia2024!",
		"password_confirm": "Different2024!",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Bad credentials
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "maria@example.com",
		"password": "wrongpassword",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Profile requires a token and reports vendor status
	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/auth/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/auth/profile", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "maria@example.com", body["email"])
	assert.Equal(t, false, body["is_vendor"])

	// Partial profile update
	resp, body = doRequest(t, app, http.MethodPatch, "/api/v1/auth/profile", map[string]string{
		"phone": "+57 300 123 4567",
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "+57 300 123 4567", body["phone"])
	assert.Equal(t, "maria", body["username"])
}

func TestVendorLifecycle(t *testing.T) {
	app := setupApp(t)

	mariaToken := registerAndLogin(t, app, "maria@example.com", "maria")
	carlosToken := registerAndLogin(t, app, "carlos@example.com", "carlos")

	vendorID := createVendor(t, app, mariaToken, "Café del Eje")

	// Creating a second profile for the same user fails
	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/vendors", map[string]string{
		"business_name": "Otro Negocio",
	}, mariaToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "vendor already exists")

	// Profile now reports the vendor linkage
	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/auth/profile", nil, mariaToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_vendor"])
	assert.Equal(t, vendorID, body["vendor_id"])

	// Public read endpoints
	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/vendors", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/vendors/"+vendorID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Café del Eje", body["business_name"])
	assert.EqualValues(t, 0, body["products_count"])

	// /me needs a vendor profile
	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/vendors/me", nil, carlosToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/vendors/me", nil, mariaToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Writes are owner-gated: anonymous 401, other user 403
	resp, _ = doRequest(t, app, http.MethodPatch, "/api/v1/vendors/"+vendorID, map[string]string{"city": "Bogotá"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodPatch, "/api/v1/vendors/"+vendorID, map[string]string{"city": "Bogotá"}, carlosToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, body = doRequest(t, app, http.MethodPatch, "/api/v1/vendors/"+vendorID, map[string]string{"city": "Armenia"}, mariaToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Armenia", body["city"])

	// Soft delete hides the vendor from public queries
	resp, _ = doRequest(t, app, http.MethodDelete, "/api/v1/vendors/"+vendorID, nil, carlosToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodDelete, "/api/v1/vendors/"+vendorID, nil, mariaToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/vendors/"+vendorID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner still sees their deactivated profile
	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/vendors/me", nil, mariaToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_active"])
}

func TestProductLifecycle(t *testing.T) {
	app := setupApp(t)

	mariaToken := registerAndLogin(t, app, "maria@example.com", "maria")
	carlosToken := registerAndLogin(t, app, "carlos@example.com", "carlos")

	// Without a vendor profile product creation is forbidden
	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Café 500g", "description": "Café de origen", "price": 45000,
	}, mariaToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	vendorID := createVendor(t, app, mariaToken, "Café del Eje")
	createVendor(t, app, carlosToken, "Artesanías Wayuu")

	// Anonymous writes are rejected at the middleware
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Café 500g", "description": "Café de origen", "price": 45000,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The owning vendor comes from the actor, ignoring any client value
	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Café Especial Colombia 500g", "description": "Notas de chocolate",
		"price": 45000, "stock": 50, "category": "Alimentos", "vendor_id": "spoofed",
	}, mariaToken)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, vendorID, body["vendor_id"])
	productID := body["id"].(string)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Mochila Wayuu", "description": "Tejida a mano",
		"price": 180000, "stock": 15, "category": "Artesanías",
	}, carlosToken)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Negative price is rejected
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Gratis", "description": "precio inválido", "price": -10,
	}, mariaToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Public listing with filters and ordering
	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["count"])

	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/products?category=Alimentos&ordering=-price", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
	results := body["results"].([]interface{})
	first := results[0].(map[string]interface{})
	assert.Equal(t, "Café Especial Colombia 500g", first["name"])

	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/products?search=wayuu", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	// Update is owner-gated across vendors
	resp, _ = doRequest(t, app, http.MethodPatch, "/api/v1/products/"+productID, map[string]interface{}{"price": 1}, carlosToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, body = doRequest(t, app, http.MethodPatch, "/api/v1/products/"+productID, map[string]interface{}{"price": 48000}, mariaToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 48000, body["price"])

	// /my lists only the actor's products
	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/products/my", nil, mariaToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// by-vendor endpoint
	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/products/by-vendor/"+vendorID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/products/by-vendor/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Soft delete: gone from listings, still resolvable by ID
	resp, _ = doRequest(t, app, http.MethodDelete, "/api/v1/products/"+productID, nil, carlosToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodDelete, "/api/v1/products/"+productID, nil, mariaToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/products/"+productID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_active"])
	assert.EqualValues(t, 50, body["stock"])
}
