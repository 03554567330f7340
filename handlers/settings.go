package handlers

import (
	"net/http"

	"lunchbox/middleware"
	"lunchbox/models"
	"lunchbox/services/settings"
	"lunchbox/utils"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Service settings.SettingsService
}

func NewSettingsHandler(svc settings.SettingsService) *SettingsHandler {
	return &SettingsHandler{Service: svc}
}

func (h *SettingsHandler) GetSettingsHandler(c *gin.Context) {
	s, err := h.Service.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) UpdateSettingsHandler(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	saved, err := h.Service.UpdateSettings(c.Request.Context(), middleware.CallerFromContext(c), req)
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, saved)
}
