package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gogramm/models"
	"gogramm/utils"
)

// StatsController provides aggregate counts for the landing page.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

const statsCacheKey = "cache:stats"

// GetStats returns aggregate statistics.
func (s *StatsController) GetStats(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(statsCacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var userCount int64
	var profileCount int64
	var postCount int64
	var photoCount int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}
	if err := s.db.Model(&models.Profile{}).Count(&profileCount).Error; err != nil {
		profileCount = 0
	}
	if err := s.db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}
	if err := s.db.Model(&models.Photo{}).Count(&photoCount).Error; err != nil {
		photoCount = 0
	}

	payload := gin.H{
		"user_count":    userCount,
		"profile_count": profileCount,
		"post_count":    postCount,
		"photo_count":   photoCount,
	}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(statsCacheKey, wrapper, time.Minute)

	utils.Success(ctx, payload)
}
