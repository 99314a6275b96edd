package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/reclab/blendsvc/internal/clients"
	"github.com/reclab/blendsvc/internal/services"
	"github.com/reclab/blendsvc/pkg/models"
)

type RecommendationHandler struct {
	orchestrator services.RecommendationOrchestratorInterface
	defaultK     int
	logger       *logrus.Logger
}

func NewRecommendationHandler(
	orchestrator services.RecommendationOrchestratorInterface,
	defaultK int,
	logger *logrus.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		orchestrator: orchestrator,
		defaultK:     defaultK,
		logger:       logger,
	}
}

// Offline serves the precomputed ranking, falling back to the shared default
// list for users without a personal entry.
func (h *RecommendationHandler) Offline(c *gin.Context) {
	userID, k, ok := h.parseParams(c)
	if !ok {
		return
	}

	recs := h.orchestrator.OfflineRecommendations(userID, k)

	c.JSON(http.StatusOK, models.RecommendationResponse{
		UserID:      userID,
		Recs:        recs,
		Source:      "offline",
		GeneratedAt: time.Now(),
	})
}

// Online serves the real-time ranking derived from recent events.
func (h *RecommendationHandler) Online(c *gin.Context) {
	userID, k, ok := h.parseParams(c)
	if !ok {
		return
	}

	recs, err := h.orchestrator.OnlineRecommendations(c.Request.Context(), userID, k)
	if err != nil {
		h.respondError(c, userID, err)
		return
	}

	c.JSON(http.StatusOK, models.RecommendationResponse{
		UserID:      userID,
		Recs:        recs,
		Source:      "online",
		GeneratedAt: time.Now(),
	})
}

// Blended serves the interleaved offline+online ranking.
func (h *RecommendationHandler) Blended(c *gin.Context) {
	userID, k, ok := h.parseParams(c)
	if !ok {
		return
	}

	recs, err := h.orchestrator.BlendedRecommendations(c.Request.Context(), userID, k)
	if err != nil {
		h.respondError(c, userID, err)
		return
	}

	c.JSON(http.StatusOK, models.RecommendationResponse{
		UserID:      userID,
		Recs:        recs,
		Source:      "blended",
		GeneratedAt: time.Now(),
	})
}

// parseParams extracts the user ID from the path and k from the query,
// writing the error response itself when parsing fails. k=0 is a valid
// degenerate request; negative k is rejected.
func (h *RecommendationHandler) parseParams(c *gin.Context) (userID int64, k int, ok bool) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user ID format",
			},
		})
		return 0, 0, false
	}

	k = h.defaultK
	if kStr := c.Query("k"); kStr != "" {
		k, err = strconv.Atoi(kStr)
		if err != nil || k < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "INVALID_K",
					"message": "k must be a non-negative integer",
				},
			})
			return 0, 0, false
		}
	}

	return userID, k, true
}

func (h *RecommendationHandler) respondError(c *gin.Context, userID int64, err error) {
	if errors.Is(err, clients.ErrUpstreamUnavailable) {
		h.logger.WithError(err).WithField("user_id", userID).Error("Collaborator store unavailable")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": gin.H{
				"code":    "UPSTREAM_UNAVAILABLE",
				"message": "A collaborator store is unavailable",
			},
		})
		return
	}

	h.logger.WithError(err).WithField("user_id", userID).Error("Failed to generate recommendations")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    "RECOMMENDATION_GENERATION_FAILED",
			"message": "Failed to generate recommendations",
		},
	})
}
