package controllers

import (
	"github.com/gin-gonic/gin"

	"gogramm/config"
	"gogramm/utils"
)

// ConfigController serves environment-driven UI configuration.
type ConfigController struct{}

func NewConfigController() *ConfigController { return &ConfigController{} }

// GetMenu returns the navigation entries shown to a signed-in user.
func (c *ConfigController) GetMenu(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{"items": cfg.Menu})
}
