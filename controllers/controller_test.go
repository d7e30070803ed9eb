package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tastybites/tastybites-api/config"
	"github.com/tastybites/tastybites-api/initializers"
	"github.com/tastybites/tastybites-api/middlewares"
	"github.com/tastybites/tastybites-api/models"
	"github.com/tastybites/tastybites-api/utils"
)

var testJWT = config.JWTConfig{Secret: "test-secret", TTL: time.Hour}

var testOrderCfg = config.OrderConfig{
	NumberPrefix: "TB",
	DeliveryFee:  4.99,
	TaxRate:      0.08,
}

// setupTestEnv builds an in-memory database and a router wired the same way
// the server wires itself, minus the external clients.
func setupTestEnv(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every connection to an in-memory sqlite database is its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, initializers.SyncDatabase(db))

	server := gin.New()
	am := middlewares.NewAuthMiddleware(db, testJWT)

	// Route registration mirrors routes/*.go; the routes package itself
	// imports this one, so the wiring is repeated here instead of imported.
	auth := NewAuthController(db, testJWT)
	authGroup := server.Group("/api/auth")
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)

	users := NewUserController(db)
	userGroup := server.Group("/api/users", am.RequireAuth())
	userGroup.GET("/me", users.GetProfile)
	userGroup.PUT("/me", users.UpdateProfile)
	userGroup.PUT("/me/password", users.ChangePassword)

	foods := NewFoodController(db)
	foodGroup := server.Group("/api/foods")
	foodGroup.GET("", foods.GetFoods)
	foodGroup.GET("/categories", foods.GetCategories)
	foodGroup.GET("/:id", foods.GetFood)

	orders := NewOrderController(db, testOrderCfg, nil, nil)
	orderGroup := server.Group("/api/orders", am.RequireAuth())
	orderGroup.POST("", orders.CreateOrder)
	orderGroup.GET("", orders.GetMyOrders)
	orderGroup.GET("/:id", orders.GetOrder)
	orderGroup.POST("/:id/cancel", orders.CancelOrder)

	admin := NewAdminController(db, nil)
	adminGroup := server.Group("/api/admin", am.RequireAuth(), am.RequireAdmin())
	adminGroup.GET("/dashboard", admin.GetDashboard)
	adminGroup.GET("/users", admin.GetUsers)
	adminGroup.PUT("/users/:id/toggle-active", admin.ToggleUserActive)
	adminGroup.POST("/users/:id/make-admin", admin.MakeUserAdmin)
	adminGroup.POST("/categories", admin.CreateCategory)
	adminGroup.DELETE("/categories/:id", admin.DeleteCategory)
	adminGroup.GET("/foods", admin.GetFoods)
	adminGroup.POST("/foods", admin.CreateFood)
	adminGroup.PUT("/foods/:id", admin.UpdateFood)
	adminGroup.DELETE("/foods/:id", admin.DeleteFood)
	adminGroup.POST("/foods/:id/image", admin.UploadFoodImage)
	adminGroup.GET("/orders", admin.GetOrders)
	adminGroup.PUT("/orders/:id/status", admin.UpdateOrderStatus)

	server.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return db, server
}

func createTestUser(t *testing.T, db *gorm.DB, email string, roles ...models.UserRole) models.User {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Email:     email,
		Password:  hashed,
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)

	if len(roles) == 0 {
		roles = []models.UserRole{models.RoleUser}
	}
	for _, role := range roles {
		require.NoError(t, db.Create(&models.Role{UserID: user.ID, Role: role}).Error)
	}
	return user
}

func tokenFor(t *testing.T, user models.User, roles ...string) string {
	t.Helper()
	token, err := utils.GenerateToken(testJWT, user, roles)
	require.NoError(t, err)
	return token
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createTestFood(t *testing.T, db *gorm.DB, categoryID uint, name string, price float64, available bool) models.Food {
	t.Helper()
	food := models.Food{
		Name:        name,
		Price:       price,
		CategoryID:  categoryID,
		IsAvailable: available,
	}
	require.NoError(t, db.Create(&food).Error)
	return food
}

// performRequest runs one request through the router. A non-empty token is
// sent as a bearer token; a non-nil body is JSON-encoded.
func performRequest(t *testing.T, server *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}
