package handlers

import (
	"context"
	"net/http"

	"lunchbox/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Ticker runs one reminder evaluation.
type Ticker interface {
	Tick(ctx context.Context) models.TickResult
}

// Purger removes expired notifications.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type SchedulerHandler struct {
	Ticker Ticker
	Purger Purger
}

func NewSchedulerHandler(t Ticker, p Purger) *SchedulerHandler {
	return &SchedulerHandler{Ticker: t, Purger: p}
}

// TickHandler runs the reminder gate once, for external cron triggers.
func (h *SchedulerHandler) TickHandler(c *gin.Context) {
	res := h.Ticker.Tick(c.Request.Context())
	getLogger(c).Info("Scheduler tick via HTTP",
		zap.String("menuUpdateReminder", res.MenuUpdateReminder.Status),
		zap.String("orderReminder", res.OrderReminder.Status))
	c.JSON(http.StatusOK, res)
}

func (h *SchedulerHandler) PurgeHandler(c *gin.Context) {
	deleted, err := h.Purger.PurgeExpired(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to purge notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
