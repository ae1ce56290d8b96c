package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"studio-akira-api/config"
	"studio-akira-api/middleware"
	"studio-akira-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest wires a fresh in-memory database into the package globals and
// returns a router with the full route table.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.Cfg = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			AdminEmail:    "admin@gmail.com",
			TokenTTLHours: 1,
		},
	}
	config.JWTSecret = []byte(config.Cfg.Auth.JWTSecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ApprovalRequest{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.ContentDocument{},
		&models.CartSlot{},
	))
	config.DB = db

	r := gin.New()

	r.POST("/api/auth/register", Register)
	r.POST("/api/auth/login", Login)
	r.GET("/api/pages/:pageId", GetPage)

	auth := r.Group("/api", middleware.AuthRequired())
	auth.GET("/profile", GetProfile)
	auth.GET("/auth/session", CheckSession)

	customer := r.Group("/api/customer", middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	customer.GET("/cart", GetCart)
	customer.GET("/cart/count", CartCount)
	customer.POST("/cart", AddToCart)
	customer.PUT("/cart/:productId", UpdateCartItem)
	customer.DELETE("/cart/:productId", RemoveCartItem)
	customer.DELETE("/cart", ClearCart)
	customer.POST("/orders", PlaceOrder)
	customer.GET("/orders", GetMyOrders)
	customer.PUT("/orders/:id/cancel", CancelOrder)

	manufacturer := r.Group("/api/manufacturer",
		middleware.AuthRequired(), middleware.RoleRequired(models.RoleManufacturer), middleware.ActiveRequired())
	manufacturer.GET("/orders", GetProductionOrders)
	manufacturer.PUT("/orders/:id/status", UpdateProductionStatus)

	delivery := r.Group("/api/delivery",
		middleware.AuthRequired(), middleware.RoleRequired(models.RoleDelivery), middleware.ActiveRequired())
	delivery.GET("/orders/available", GetAvailableShipments)
	delivery.GET("/orders/my-shipments", GetMyShipments)
	delivery.PUT("/orders/:id/ship", ShipOrder)
	delivery.PUT("/orders/:id/deliver", DeliverOrder)

	admin := r.Group("/api/admin", middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	admin.GET("/approvals", ListApprovalRequests)
	admin.PUT("/approvals/:id/approve", ApproveRequest)

	return r
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUser creates an account through the handler and returns the
// response body. Active roles include a token.
func registerUser(t *testing.T, r *gin.Engine, name, email, phone string, role models.UserRole) map[string]interface{} {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"phone":    phone,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)
}

func loginAs(t *testing.T, r *gin.Engine, email string, role models.UserRole) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
