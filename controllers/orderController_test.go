package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tastybites/tastybites-api/models"
)

func orderPayload(items ...gin.H) gin.H {
	return gin.H{
		"deliveryAddress": "1 Main St",
		"deliveryCity":    "Springfield",
		"deliveryZip":     "12345",
		"deliveryPhone":   "555-0100",
		"items":           items,
	}
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	db, server := setupTestEnv(t)
	user := createTestUser(t, db, "alice@example.com")
	token := tokenFor(t, user, "user")

	category := createTestCategory(t, db, "Pizza")
	food := createTestFood(t, db, category.ID, "Margherita", 13.99, true)

	recorder := performRequest(t, server, http.MethodPost, "/api/orders", token,
		orderPayload(gin.H{"foodId": food.ID, "quantity": 2}))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var order models.Order
	require.NoError(t, db.Preload("OrderItems").Where("user_id = ?", user.ID).First(&order).Error)

	assert.Equal(t, 27.98, order.Subtotal)
	assert.Equal(t, 4.99, order.DeliveryFee)
	assert.Equal(t, 2.24, order.Tax)
	assert.Equal(t, 35.21, order.Total)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentCOD, order.PaymentMethod)
	assert.Regexp(t, `^TB-\d{12}-[A-Z0-9]{4}$`, order.OrderNumber)

	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, "Margherita", order.OrderItems[0].FoodName)
	assert.Equal(t, 13.99, order.OrderItems[0].Price)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
}

func TestCreateOrderIgnoresClientPrice(t *testing.T) {
	db, server := setupTestEnv(t)
	user := createTestUser(t, db, "alice@example.com")
	token := tokenFor(t, user, "user")

	category := createTestCategory(t, db, "Pizza")
	food := createTestFood(t, db, category.ID, "Margherita", 13.99, true)

	recorder := performRequest(t, server, http.MethodPost, "/api/orders", token,
		orderPayload(gin.H{"foodId": food.ID, "quantity": 1, "price": 0.01}))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var order models.Order
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&order).Error)
	assert.Equal(t, 13.99, order.Subtotal)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	db, server := setupTestEnv(t)
	user := createTestUser(t, db, "alice@example.com")
	token := tokenFor(t, user, "user")

	recorder := performRequest(t, server, http.MethodPost, "/api/orders", token, orderPayload())
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Order must have at least one item", decodeBody(t, recorder)["message"])

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderRejectsUnknownFood(t *testing.T) {
	db, server := setupTestEnv(t)
	user := createTestUser(t, db, "alice@example.com")
	token := tokenFor(t, user, "user")

	recorder := performRequest(t, server, http.MethodPost, "/api/orders", token,
		orderPayload(gin.H{"foodId": 999, "quantity": 1}))
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Food with ID 999 not found", decodeBody(t, recorder)["message"])

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderRejectsUnavailableFood(t *testing.T) {
	db, server := setupTestEnv(t)
	user := createTestUser(t, db, "alice@example.com")
	token := tokenFor(t, user, "user")

	category := createTestCategory(t, db, "Pizza")
	good := createTestFood(t, db, category.ID, "Margherita", 13.99, true)
	soldOut := createTestFood(t, db, category.ID, "Calzone", 11.50, false)

	recorder := performRequest(t, server, http.MethodPost, "/api/orders", token,
		orderPayload(
			gin.H{"foodId": good.ID, "quantity": 1},
			gin.H{"foodId": soldOut.ID, "quantity": 1},
		))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Calzone is currently unavailable", decodeBody(t, recorder)["message"])

	// Fail-fast: nothing was written, not even for the valid line.
	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrderRejectsUnknownPaymentMethod(t *testing.T) {
	db, server := setupTestEnv(t)
	user := createTestUser(t, db, "alice@example.com")
	token := tokenFor(t, user, "user")

	category := createTestCategory(t, db, "Pizza")
	food := createTestFood(t, db, category.ID, "Margherita", 13.99, true)

	payload := orderPayload(gin.H{"foodId": food.ID, "quantity": 1})
	payload["paymentMethod"] = "bitcoin"

	recorder := performRequest(t, server, http.MethodPost, "/api/orders", token, payload)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Unknown payment method", decodeBody(t, recorder)["message"])
}

func TestGetMyOrdersScopedToOwner(t *testing.T) {
	db, server := setupTestEnv(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	seedOrder(t, db, alice.ID, models.OrderPending, 20)
	seedOrder(t, db, bob.ID, models.OrderPending, 30)

	recorder := performRequest(t, server, http.MethodGet, "/api/orders", tokenFor(t, alice, "user"), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	orders := body["orders"].([]interface{})
	require.Len(t, orders, 1)
}

func TestGetOrderHidesOtherUsersOrders(t *testing.T) {
	db, server := setupTestEnv(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	order := seedOrder(t, db, bob.ID, models.OrderPending, 30)

	recorder := performRequest(t, server, http.MethodGet,
		fmt.Sprintf("/api/orders/%d", order.ID), tokenFor(t, alice, "user"), nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, msgOrderNotFound, decodeBody(t, recorder)["message"])
}

func TestCancelOrderOnlyWhilePending(t *testing.T) {
	db, server := setupTestEnv(t)
	user := createTestUser(t, db, "alice@example.com")
	token := tokenFor(t, user, "user")

	order := seedOrder(t, db, user.ID, models.OrderPending, 20)
	path := fmt.Sprintf("/api/orders/%d/cancel", order.ID)

	recorder := performRequest(t, server, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.OrderCancelled, order.Status)

	// A second cancel fails instead of silently succeeding.
	recorder = performRequest(t, server, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Only pending orders can be cancelled", decodeBody(t, recorder)["message"])
}

func TestCancelOrderRejectsConfirmedOrder(t *testing.T) {
	db, server := setupTestEnv(t)
	user := createTestUser(t, db, "alice@example.com")

	order := seedOrder(t, db, user.ID, models.OrderConfirmed, 20)

	recorder := performRequest(t, server, http.MethodPost,
		fmt.Sprintf("/api/orders/%d/cancel", order.ID), tokenFor(t, user, "user"), nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestOrdersRequireAuth(t *testing.T) {
	_, server := setupTestEnv(t)

	recorder := performRequest(t, server, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

var seededOrders int

func seedOrder(t *testing.T, db *gorm.DB, userID uint, status models.OrderStatus, total float64) models.Order {
	t.Helper()
	seededOrders++
	order := models.Order{
		OrderNumber:     fmt.Sprintf("TB-000000000000-%04d", seededOrders),
		UserID:          userID,
		DeliveryAddress: "1 Main St",
		DeliveryCity:    "Springfield",
		DeliveryZip:     "12345",
		DeliveryPhone:   "555-0100",
		Subtotal:        total,
		DeliveryFee:     4.99,
		Tax:             0,
		Total:           total,
		PaymentMethod:   models.PaymentCOD,
		Status:          status,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}
