package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/reclab/blendsvc/internal/clients"
	"github.com/reclab/blendsvc/internal/services"
	"github.com/reclab/blendsvc/pkg/models"
)

// EventHandler proxies interaction writes to the event store collaborator so
// clients only need the recommendation service's base URL.
type EventHandler struct {
	logger *logrus.Logger
	events services.EventStore
}

func NewEventHandler(logger *logrus.Logger, events services.EventStore) *EventHandler {
	return &EventHandler{
		logger: logger,
		events: events,
	}
}

func (h *EventHandler) Record(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Invalid event format",
			},
		})
		return
	}

	if err := h.events.RecordEvent(c.Request.Context(), req.UserID, req.ItemID); err != nil {
		if errors.Is(err, clients.ErrUpstreamUnavailable) {
			h.logger.WithError(err).WithField("user_id", req.UserID).Error("Event store unavailable")
			c.JSON(http.StatusBadGateway, gin.H{
				"error": gin.H{
					"code":    "UPSTREAM_UNAVAILABLE",
					"message": "The event store is unavailable",
				},
			})
			return
		}

		h.logger.WithError(err).WithField("user_id", req.UserID).Error("Failed to record event")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "EVENT_RECORDING_FAILED",
				"message": "Failed to record event",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.EventResponse{
		UserID: req.UserID,
		ItemID: req.ItemID,
		Status: "recorded",
	})
}
