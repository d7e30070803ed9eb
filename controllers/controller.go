package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tastybites/tastybites-api/models"
)

// Standard response messages
const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
	msgUserNotFound        = "User not found"
	msgFoodNotFound        = "Food not found"
	msgCategoryNotFound    = "Category not found"
	msgOrderNotFound       = "Order not found"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	return uint(id), err
}

// parsePagination reads skip/limit query params and clamps limit to the
// given bounds.
func parsePagination(ctx *gin.Context, defaultLimit, maxLimit int) (offset, limit int) {
	offset, _ = strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return offset, limit
}

// userResponse is the user shape shared by auth, profile and admin
// endpoints; roles come from the roles table, never from the token.
func userResponse(user models.User, roles []string) gin.H {
	if roles == nil {
		roles = []string{}
	}
	return gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"phone":     user.Phone,
		"address":   user.Address,
		"city":      user.City,
		"zipCode":   user.ZipCode,
		"isActive":  user.IsActive,
		"createdAt": user.CreatedAt,
		"roles":     roles,
	}
}
