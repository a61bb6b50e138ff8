package controllers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gogramm/config"
	"gogramm/middleware"
	"gogramm/models"
	"gogramm/services"
	"gogramm/utils"
)

// AuthController handles registration, activation and session endpoints.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

const sessionTokenTTL = 72 * time.Hour

// Register creates an inactive account and emails an activation link.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Confirm  string `json:"confirm" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid email address")
		return
	}
	if req.Password != req.Confirm {
		utils.Error(ctx, http.StatusBadRequest, 40002, "passwords do not match")
		return
	}
	if len(req.Password) < 8 || len(req.Password) > 64 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "password must be 8-64 characters")
		return
	}

	// Anti-abuse: cooldown, per-IP daily limit, ban check
	ip := ctx.ClientIP()
	if utils.RegistrationIsBanned(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42920, "registration temporarily blocked for this address")
		return
	}
	if !utils.RegistrationCooldownTry(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42910, "too many requests, please try again later")
		return
	}
	if !utils.RegistrationDailyLimitCheck(ip) {
		utils.Error(ctx, http.StatusTooManyRequests, 42921, "daily registration limit reached")
		return
	}

	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to check email")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     false,
		RegisterIP:   ip,
	}

	if err := a.db.Create(&user).Error; err != nil {
		if services.IsDuplicateKey(err) {
			utils.Error(ctx, http.StatusConflict, 40901, "email already registered")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create user")
		fails := utils.RegistrationFailRecord(ip)
		if fails >= max(config.Get().RegisterFailedMaxPerIPPerHour, 1) {
			utils.RegistrationBan(ip)
		}
		return
	}
	utils.RegistrationDailyIncrement(ip)

	if err := a.sendActivation(&user); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to send activation email")
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{
		"message": "activation link sent, please check your email",
		"user":    sanitizeUserResponse(user),
	})
}

// Activate confirms an account via the emailed token link.
func (a *AuthController) Activate(ctx *gin.Context) {
	token := strings.TrimSpace(ctx.Query("token"))
	if token == "" {
		utils.Error(ctx, http.StatusBadRequest, 40010, "missing activation token")
		return
	}

	claims, err := utils.ParseActivationToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid or expired activation link")
		return
	}

	var user models.User
	if err := a.db.First(&user, claims.UserID).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid or expired activation link")
		return
	}

	if !user.IsActive {
		if err := a.db.Model(&user).Update("is_active", true).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to activate account")
			return
		}
	}

	utils.Success(ctx, gin.H{"message": "account activated, you can log in now"})
}

// ResendActivation sends a fresh activation link with a per-email cooldown.
func (a *AuthController) ResendActivation(ctx *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "no account for this email")
		return
	}
	if user.IsActive {
		utils.Error(ctx, http.StatusBadRequest, 40013, "account is already active")
		return
	}

	if !utils.ActivationCooldownTrySet(email, 60*time.Second) {
		utils.Error(ctx, http.StatusTooManyRequests, 42911, "too many requests, please try again later")
		return
	}

	if err := a.sendActivation(&user); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to send activation email")
		return
	}

	utils.Success(ctx, gin.H{"message": "activation link sent, please check your email"})
}

func (a *AuthController) sendActivation(user *models.User) error {
	ttl := time.Duration(config.Get().ActivationTTLHours) * time.Hour
	token, err := utils.GenerateActivationToken(user.ID, user.Email, ttl)
	if err != nil {
		return err
	}
	return utils.SendActivationEmail(user.Email, token, ttl)
}

// Login verifies credentials for an activated account and issues a JWT.
// The response carries the route the client should land on next.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid email or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid email or password")
		return
	}

	if !user.IsActive {
		utils.Error(ctx, http.StatusForbidden, 40301, "account is not activated, please check your email")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, sessionTokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	next := services.RoutePeople
	if !user.IsStaff {
		next, err = services.NextTarget(a.db, user.ID)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to resolve landing route")
			return
		}
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  sanitizeUserResponse(user),
		"next":  next,
	})
}

// Logout revokes the session token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(sessionTokenTTL)
	if claims.RegisteredClaims.ExpiresAt != nil {
		expiresAt = claims.RegisteredClaims.ExpiresAt.Time
	}

	utils.RevokeToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the current authenticated user together with their profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.Preload("Profile").First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	utils.Success(ctx, sanitizeUserResponse(user))
}

func sanitizeUserResponse(user models.User) gin.H {
	out := gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"is_active":   user.IsActive,
		"is_staff":    user.IsStaff,
		"date_joined": user.CreatedAt,
	}
	if user.Profile != nil {
		out["profile"] = user.Profile
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
