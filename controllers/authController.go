package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tastybites/tastybites-api/config"
	"github.com/tastybites/tastybites-api/models"
	"github.com/tastybites/tastybites-api/utils"
)

const (
	msgEmailAlreadyRegistered = "Email already registered"
	msgFailedToHashPassword   = "failed to hash password"
	msgInvalidCredentials     = "Incorrect email or password"
	msgInactiveAccount        = "Inactive user account"
	msgFailedToGenerateToken  = "failed to generate token"
)

type AuthController struct {
	DB  *gorm.DB
	JWT config.JWTConfig
}

func NewAuthController(db *gorm.DB, jwtCfg config.JWTConfig) *AuthController {
	return &AuthController{DB: db, JWT: jwtCfg}
}

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
}

// Register creates the user row and its default "user" role row in a single
// transaction, so no account can exist without a role.
func (ac *AuthController) Register(ctx *gin.Context) {
	var input RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing models.User
	result := ac.DB.Where("email = ?", input.Email).Find(&existing)
	if result.Error != nil {
		log.WithError(result.Error).Error("database error during email check")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmailAlreadyRegistered)
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		log.WithError(err).Error("password hashing error")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Email:     input.Email,
		Password:  hashedPassword,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Address:   input.Address,
		City:      input.City,
		ZipCode:   input.ZipCode,
		IsActive:  true,
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Role{UserID: user.ID, Role: models.RoleUser}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgEmailAlreadyRegistered)
			return
		}
		log.WithError(err).Error("user creation error")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, userResponse(user, []string{string(models.RoleUser)}))
}

// Login verifies credentials and issues a token embedding the role snapshot
// at login time.
func (ac *AuthController) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := ac.DB.Preload("Roles").Where("email = ?", loginData.Email).First(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := utils.ComparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if !user.IsActive {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInactiveAccount)
		return
	}

	tokenString, err := utils.GenerateToken(ac.JWT, user, user.RoleNames())
	if err != nil {
		log.WithError(err).Error("JWT generation error")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "tokenType": "Bearer"})
}
