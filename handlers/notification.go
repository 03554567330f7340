package handlers

import (
	"net/http"
	"strconv"

	"lunchbox/middleware"
	"lunchbox/models"
	"lunchbox/services/notification"
	"lunchbox/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

func parseListOptions(c *gin.Context) (models.ListOptions, error) {
	var opts models.ListOptions
	if raw := c.Query("unreadOnly"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, models.NewValidationError("unreadOnly", "must be a boolean")
		}
		opts.UnreadOnly = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return opts, models.NewValidationError("limit", "must be a non-negative integer")
		}
		opts.Limit = v
	}
	if raw := c.Query("skip"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return opts, models.NewValidationError("skip", "must be a non-negative integer")
		}
		opts.Skip = v
	}
	return opts, nil
}

// ListNotificationsHandler returns the caller's records and broadcasts, newest first.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	opts, err := parseListOptions(c)
	if err != nil {
		respondError(c, err, "Invalid query")
		return
	}

	items, err := h.Service.ListNotifications(c.Request.Context(), middleware.CallerFromContext(c), opts)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

func (h *NotificationHandler) CountNotificationsHandler(c *gin.Context) {
	counts, err := h.Service.CountNotifications(c.Request.Context(), middleware.CallerFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to count notifications")
		return
	}
	c.JSON(http.StatusOK, counts)
}

// CreateNotificationHandler lets admins send an ad hoc notification.
func (h *NotificationHandler) CreateNotificationHandler(c *gin.Context) {
	var req models.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	result, err := h.Service.CreateNotification(c.Request.Context(), middleware.CallerFromContext(c), req)
	if err != nil {
		respondError(c, err, "Failed to create notification")
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	n, err := h.Service.MarkRead(c.Request.Context(), middleware.CallerFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to mark notification as read")
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	updated, err := h.Service.MarkAllRead(c.Request.Context(), middleware.CallerFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to mark notifications as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *NotificationHandler) GetPreferencesHandler(c *gin.Context) {
	prefs, err := h.Service.GetPreferences(c.Request.Context(), middleware.CallerFromContext(c))
	if err != nil {
		respondError(c, err, "Failed to load preferences")
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *NotificationHandler) SetPreferencesHandler(c *gin.Context) {
	var prefs models.NotificationPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	saved, err := h.Service.SetPreferences(c.Request.Context(), middleware.CallerFromContext(c), prefs)
	if err != nil {
		respondError(c, err, "Failed to save preferences")
		return
	}
	c.JSON(http.StatusOK, saved)
}
