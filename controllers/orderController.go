package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tastybites/tastybites-api/config"
	"github.com/tastybites/tastybites-api/middlewares"
	"github.com/tastybites/tastybites-api/models"
	"github.com/tastybites/tastybites-api/payments"
	"github.com/tastybites/tastybites-api/statemachine"
	"github.com/tastybites/tastybites-api/utils"
)

// orderNumberAttempts bounds the retry loop on the order-number unique
// index; the 4-character suffix can collide within the same minute.
const orderNumberAttempts = 3

type OrderController struct {
	DB       *gorm.DB
	Cfg      config.OrderConfig
	Mailer   *utils.Mailer
	Payments *payments.Client
}

func NewOrderController(db *gorm.DB, cfg config.OrderConfig, mailer *utils.Mailer, paymentsClient *payments.Client) *OrderController {
	return &OrderController{DB: db, Cfg: cfg, Mailer: mailer, Payments: paymentsClient}
}

type OrderItemInput struct {
	FoodID   uint `json:"foodId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	DeliveryAddress string               `json:"deliveryAddress" binding:"required"`
	DeliveryCity    string               `json:"deliveryCity" binding:"required"`
	DeliveryZip     string               `json:"deliveryZip" binding:"required"`
	DeliveryPhone   string               `json:"deliveryPhone" binding:"required"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod"`
	Notes           string               `json:"notes"`
	Items           []OrderItemInput     `json:"items"`
}

// CreateOrder validates the item list against the catalog, prices every line
// from the catalog's current price and persists order plus items in one
// transaction. Validation is fail-fast: no row is written until every item
// has passed.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var input CreateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if len(input.Items) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order must have at least one item")
		return
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCOD
	}
	if !paymentMethod.Valid() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown payment method")
		return
	}

	user, exists := middlewares.CurrentUser(ctx)
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	tx := oc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Prices are read inside the same transaction that writes the order,
	// so the catalog is authoritative and client-supplied prices are
	// ignored.
	subtotal := 0.0
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		var food models.Food
		if err := tx.First(&food, item.FoodID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, fmt.Sprintf("Food with ID %d not found", item.FoodID))
				return
			}
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate order items", err)
			return
		}
		if !food.IsAvailable {
			tx.Rollback()
			sendErrorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("%s is currently unavailable", food.Name))
			return
		}

		subtotal += food.Price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			FoodID:   food.ID,
			FoodName: food.Name,
			Quantity: item.Quantity,
			Price:    food.Price,
		})
	}

	totals := utils.CalculateOrderTotals(subtotal, oc.Cfg.DeliveryFee, oc.Cfg.TaxRate)

	order := models.Order{
		UserID:          user.ID,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryCity:    input.DeliveryCity,
		DeliveryZip:     input.DeliveryZip,
		DeliveryPhone:   input.DeliveryPhone,
		Subtotal:        totals.Subtotal,
		DeliveryFee:     totals.DeliveryFee,
		Tax:             totals.Tax,
		Total:           totals.Total,
		PaymentMethod:   paymentMethod,
		Status:          models.OrderPending,
		Notes:           input.Notes,
	}

	var createErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber, createErr = utils.GenerateOrderNumber(oc.Cfg.NumberPrefix)
		if createErr != nil {
			break
		}
		if createErr = tx.Create(&order).Error; createErr == nil {
			break
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			break
		}
		log.Warnf("order number collision on %s, retrying", order.OrderNumber)
	}
	if createErr != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create order", createErr)
		return
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create order items", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save order", err)
		return
	}
	order.OrderItems = items

	response := gin.H{"order": order}

	if oc.Payments.Enabled() && order.PaymentMethod != models.PaymentCOD {
		redirectURL, trackingID, err := oc.Payments.CreateCheckout(payments.CheckoutRequest{
			OrderNumber: order.OrderNumber,
			Amount:      order.Total,
			Email:       user.Email,
			Phone:       order.DeliveryPhone,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			City:        order.DeliveryCity,
			Address:     order.DeliveryAddress,
		})
		if err != nil {
			log.WithError(err).Error("failed to initiate payment")
		} else {
			response["redirectUrl"] = redirectURL
			response["orderTrackingId"] = trackingID
		}
	}

	if oc.Mailer.Enabled() {
		if err := oc.Mailer.SendOrderConfirmation(user.Email, user.FirstName, order); err != nil {
			log.WithError(err).Error("failed to send order confirmation email")
		}
	}

	sendJSONResponse(ctx, http.StatusCreated, response)
}

// GetMyOrders lists the caller's orders, newest first.
func (oc *OrderController) GetMyOrders(ctx *gin.Context) {
	user, exists := middlewares.CurrentUser(ctx)
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	query := oc.DB.Preload("OrderItems").Where("user_id = ?", user.ID)

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	offset, limit := parsePagination(ctx, 20, 100)

	var orders []models.Order
	if result := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns one of the caller's orders. Other users' orders are a
// plain 404, not a 403.
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	user, exists := middlewares.CurrentUser(ctx)
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch order", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// CancelOrder moves one of the caller's pending orders to cancelled. A
// second cancel attempt fails; it never silently succeeds.
func (oc *OrderController) CancelOrder(ctx *gin.Context) {
	user, exists := middlewares.CurrentUser(ctx)
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var order models.Order
	if err := oc.DB.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch order", err)
		return
	}

	if order.Status != models.OrderPending {
		sendErrorResponse(ctx, http.StatusBadRequest, "Only pending orders can be cancelled")
		return
	}

	if err := statemachine.CanTransition(order.Status, models.OrderCancelled); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	order.Status = models.OrderCancelled
	if err := oc.DB.Save(&order).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to cancel order", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order cancelled successfully"})
}
