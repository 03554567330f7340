package handlers

import (
	"net/http"

	"lunchbox/models"
	"lunchbox/services/notification"
	"lunchbox/utils"

	"github.com/gin-gonic/gin"
)

type EventsHandler struct {
	Notifier *notification.EventNotifier
}

func NewEventsHandler(n *notification.EventNotifier) *EventsHandler {
	return &EventsHandler{Notifier: n}
}

// HandleEvent accepts an order or menu event from the ordering layer.
func (h *EventsHandler) HandleEvent(c *gin.Context) {
	var ev models.DomainEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid event", err.Error())
		return
	}

	result, err := h.Notifier.Handle(c.Request.Context(), ev)
	if err != nil {
		respondError(c, err, "Failed to handle event")
		return
	}
	c.JSON(http.StatusAccepted, result)
}
