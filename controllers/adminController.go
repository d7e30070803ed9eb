package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tastybites/tastybites-api/models"
	"github.com/tastybites/tastybites-api/statemachine"
	"github.com/tastybites/tastybites-api/storage"
	"github.com/tastybites/tastybites-api/utils"
)

type AdminController struct {
	DB       *gorm.DB
	Uploader *storage.S3Uploader
}

func NewAdminController(db *gorm.DB, uploader *storage.S3Uploader) *AdminController {
	return &AdminController{DB: db, Uploader: uploader}
}

// GetDashboard aggregates cross-entity statistics. Revenue excludes
// cancelled orders.
func (ac *AdminController) GetDashboard(ctx *gin.Context) {
	var totalUsers, totalOrders int64
	if err := ac.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to compute dashboard stats", err)
		return
	}
	if err := ac.DB.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to compute dashboard stats", err)
		return
	}

	var totalRevenue float64
	err := ac.DB.Model(&models.Order{}).
		Where("status <> ?", models.OrderCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to compute dashboard stats", err)
		return
	}

	var statusCounts []struct {
		Status string
		Count  int64
	}
	err = ac.DB.Model(&models.Order{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Scan(&statusCounts).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to compute dashboard stats", err)
		return
	}
	ordersByStatus := make(map[string]int64, len(statusCounts))
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var recent []models.Order
	if err := ac.DB.Order("created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to compute dashboard stats", err)
		return
	}
	recentOrders := make([]gin.H, 0, len(recent))
	for _, o := range recent {
		recentOrders = append(recentOrders, gin.H{
			"id":          o.ID,
			"orderNumber": o.OrderNumber,
			"total":       o.Total,
			"status":      o.Status,
			"createdAt":   o.CreatedAt,
		})
	}

	var topFoods []struct {
		Name      string `json:"name"`
		TotalSold int64  `json:"totalSold"`
	}
	err = ac.DB.Model(&models.OrderItem{}).
		Select("food_name AS name, SUM(quantity) AS total_sold").
		Group("food_id, food_name").
		Order("total_sold DESC").
		Limit(5).
		Scan(&topFoods).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to compute dashboard stats", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"totalUsers":      totalUsers,
		"totalOrders":     totalOrders,
		"totalRevenue":    utils.Round2(totalRevenue),
		"ordersByStatus":  ordersByStatus,
		"recentOrders":    recentOrders,
		"topSellingFoods": topFoods,
	})
}

// ==================== Users management ====================

func (ac *AdminController) GetUsers(ctx *gin.Context) {
	query := ac.DB.Preload("Roles")

	if search := ctx.Query("search"); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", term, term, term)
	}

	offset, limit := parsePagination(ctx, 20, 100)

	var users []models.User
	if result := query.Offset(offset).Limit(limit).Find(&users); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch users", result.Error)
		return
	}

	response := make([]gin.H, 0, len(users))
	for _, user := range users {
		response = append(response, userResponse(user, user.RoleNames()))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": response})
}

func (ac *AdminController) ToggleUserActive(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch user", err)
		return
	}

	user.IsActive = !user.IsActive
	if err := ac.DB.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update user", err)
		return
	}

	message := "User deactivated"
	if user.IsActive {
		message = "User activated"
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": message})
}

func (ac *AdminController) MakeUserAdmin(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch user", err)
		return
	}

	var existing models.Role
	result := ac.DB.Where("user_id = ? AND role = ?", user.ID, models.RoleAdmin).Find(&existing)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to check roles", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "User is already an admin")
		return
	}

	if err := ac.DB.Create(&models.Role{UserID: user.ID, Role: models.RoleAdmin}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to grant admin role", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Admin role granted"})
}

// ==================== Categories management ====================

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (ac *AdminController) CreateCategory(ctx *gin.Context) {
	var input CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing models.Category
	result := ac.DB.Where("name = ?", input.Name).Find(&existing)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to check categories", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Category already exists")
		return
	}

	category := models.Category{Name: input.Name, Description: input.Description}
	if err := ac.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"category": category})
}

// DeleteCategory refuses to delete a category that still has foods; the
// error names the blocking count.
func (ac *AdminController) DeleteCategory(ctx *gin.Context) {
	categoryID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse category id")
		return
	}

	var category models.Category
	if err := ac.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgCategoryNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch category", err)
		return
	}

	var foodsCount int64
	if err := ac.DB.Model(&models.Food{}).Where("category_id = ?", category.ID).Count(&foodsCount).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to count foods", err)
		return
	}
	if foodsCount > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("Cannot delete category with %d food items", foodsCount))
		return
	}

	if err := ac.DB.Delete(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted"})
}

// ==================== Foods management ====================

func (ac *AdminController) GetFoods(ctx *gin.Context) {
	query := ac.DB.Preload("Category")

	includeUnavailable := true
	if v := ctx.Query("include_unavailable"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		includeUnavailable = parsed
	}
	if !includeUnavailable {
		query = query.Where("is_available = ?", true)
	}

	offset, limit := parsePagination(ctx, 50, 200)

	var foods []models.Food
	if result := query.Offset(offset).Limit(limit).Find(&foods); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch foods", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"foods": foods})
}

type FoodInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"originalPrice"`
	Image         string   `json:"image"`
	CategoryID    uint     `json:"categoryId" binding:"required"`
	PrepTime      string   `json:"prepTime"`
	Ingredients   []string `json:"ingredients"`
	IsSpecial     bool     `json:"isSpecial"`
	IsAvailable   *bool    `json:"isAvailable"`
}

func (ac *AdminController) CreateFood(ctx *gin.Context) {
	var input FoodInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var category models.Category
	if err := ac.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgCategoryNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch category", err)
		return
	}

	food := models.Food{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Image:         input.Image,
		CategoryID:    category.ID,
		PrepTime:      input.PrepTime,
		IsSpecial:     input.IsSpecial,
		IsAvailable:   true,
	}
	if input.IsAvailable != nil {
		food.IsAvailable = *input.IsAvailable
	}
	if len(input.Ingredients) > 0 {
		raw, err := json.Marshal(input.Ingredients)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		food.Ingredients = datatypes.JSON(raw)
	}

	if err := ac.DB.Create(&food).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create food", err)
		return
	}
	food.Category = &category

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"food": food})
}

type UpdateFoodInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Image         *string  `json:"image"`
	CategoryID    *uint    `json:"categoryId"`
	PrepTime      *string  `json:"prepTime"`
	Ingredients   []string `json:"ingredients"`
	IsSpecial     *bool    `json:"isSpecial"`
	IsAvailable   *bool    `json:"isAvailable"`
}

func (ac *AdminController) UpdateFood(ctx *gin.Context) {
	foodID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse food id")
		return
	}

	var food models.Food
	if err := ac.DB.First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgFoodNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch food", err)
		return
	}

	var input UpdateFoodInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if input.CategoryID != nil {
		var category models.Category
		if err := ac.DB.First(&category, *input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, msgCategoryNotFound)
				return
			}
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch category", err)
			return
		}
		food.CategoryID = category.ID
	}

	if input.Name != nil {
		food.Name = *input.Name
	}
	if input.Description != nil {
		food.Description = *input.Description
	}
	if input.Price != nil {
		food.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		food.OriginalPrice = input.OriginalPrice
	}
	if input.Image != nil {
		food.Image = *input.Image
	}
	if input.PrepTime != nil {
		food.PrepTime = *input.PrepTime
	}
	if input.IsSpecial != nil {
		food.IsSpecial = *input.IsSpecial
	}
	if input.IsAvailable != nil {
		food.IsAvailable = *input.IsAvailable
	}
	if input.Ingredients != nil {
		raw, err := json.Marshal(input.Ingredients)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		food.Ingredients = datatypes.JSON(raw)
	}

	if err := ac.DB.Save(&food).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update food", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"food": food})
}

func (ac *AdminController) DeleteFood(ctx *gin.Context) {
	foodID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse food id")
		return
	}

	var food models.Food
	if err := ac.DB.First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgFoodNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch food", err)
		return
	}

	if err := ac.DB.Delete(&food).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete food", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Food deleted"})
}

// UploadFoodImage stores a food image in S3 and saves its URL on the food
// row.
func (ac *AdminController) UploadFoodImage(ctx *gin.Context) {
	if ac.Uploader == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	foodID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse food id")
		return
	}

	var food models.Food
	if err := ac.DB.First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgFoodNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch food", err)
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No image uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Unable to read uploaded image", err)
		return
	}
	defer file.Close()

	imageURL, err := ac.Uploader.UploadFoodImage(ctx.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	if err := ac.DB.Model(&food).Update("image", imageURL).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save image URL", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"image": imageURL})
}

// ==================== Orders management ====================

func (ac *AdminController) GetOrders(ctx *gin.Context) {
	query := ac.DB.Preload("OrderItems")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	offset, limit := parsePagination(ctx, 50, 200)

	var orders []models.Order
	if result := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

type UpdateOrderStatusInput struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateOrderStatus moves an order forward through the status graph. The
// transition table is enforced, so pending cannot jump straight to
// delivered.
func (ac *AdminController) UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var input UpdateOrderStatusInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var order models.Order
	if err := ac.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch order", err)
		return
	}

	if input.Status != "" {
		newStatus := models.OrderStatus(input.Status)
		if !newStatus.Valid() {
			sendErrorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("Unknown order status %q", input.Status))
			return
		}
		if err := statemachine.CanTransition(order.Status, newStatus); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			return
		}
		order.Status = newStatus
		if newStatus == models.OrderDelivered {
			now := time.Now()
			order.DeliveredAt = &now
		}
	}

	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	if err := ac.DB.Save(&order).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update order status", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": fmt.Sprintf("Order status updated to %s", order.Status)})
}
