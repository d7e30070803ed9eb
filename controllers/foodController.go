package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tastybites/tastybites-api/models"
)

type FoodController struct {
	DB *gorm.DB
}

func NewFoodController(db *gorm.DB) *FoodController {
	return &FoodController{DB: db}
}

// GetFoods lists available foods with optional category, search and
// is_special filters.
func (fc *FoodController) GetFoods(ctx *gin.Context) {
	query := fc.DB.Preload("Category").Where("foods.is_available = ?", true)

	if category := ctx.Query("category"); category != "" && category != "All" {
		query = query.
			Joins("JOIN categories ON categories.id = foods.category_id").
			Where("categories.name = ?", category)
	}

	if search := ctx.Query("search"); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(foods.name) LIKE ? OR LOWER(foods.description) LIKE ?", term, term)
	}

	if special := ctx.Query("is_special"); special != "" {
		isSpecial, err := strconv.ParseBool(special)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		query = query.Where("foods.is_special = ?", isSpecial)
	}

	offset, limit := parsePagination(ctx, 20, 100)

	var foods []models.Food
	if result := query.Offset(offset).Limit(limit).Find(&foods); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch foods", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"foods": foods})
}

func (fc *FoodController) GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := fc.DB.Find(&categories); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

func (fc *FoodController) GetFood(ctx *gin.Context) {
	foodID, err := parseIDParam(ctx, "id")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse food id")
		return
	}

	var food models.Food
	if err := fc.DB.Preload("Category").First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgFoodNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch food", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"food": food})
}
