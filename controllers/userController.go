package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tastybites/tastybites-api/middlewares"
	"github.com/tastybites/tastybites-api/models"
	"github.com/tastybites/tastybites-api/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func (uc *UserController) GetProfile(ctx *gin.Context) {
	user, exists := middlewares.CurrentUser(ctx)
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	if err := uc.DB.Preload("Roles").First(&user, user.ID).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch profile", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, userResponse(user, user.RoleNames()))
}

type UpdateProfileInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	ZipCode   *string `json:"zipCode"`
}

// UpdateProfile applies a partial update to the caller's own profile. Email,
// password and roles are not updatable here.
func (uc *UserController) UpdateProfile(ctx *gin.Context) {
	user, exists := middlewares.CurrentUser(ctx)
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input UpdateProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.ZipCode != nil {
		user.ZipCode = *input.ZipCode
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update profile", err)
		return
	}

	if err := uc.DB.Preload("Roles").First(&user, user.ID).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch profile", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, userResponse(user, user.RoleNames()))
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func (uc *UserController) ChangePassword(ctx *gin.Context) {
	user, exists := middlewares.CurrentUser(ctx)
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input ChangePasswordInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := utils.ComparePasswords(user.Password, input.CurrentPassword); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		log.WithError(err).Error("password hashing error")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("password", hashedPassword).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update password", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password updated successfully"})
}
