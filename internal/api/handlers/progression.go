package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/RamanShrikant/basketball-manager/internal/engine"
	"github.com/RamanShrikant/basketball-manager/internal/progression"
	"github.com/RamanShrikant/basketball-manager/pkg/config"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// ProgressionHandler ages a league's rosters by one offseason on
// demand.
type ProgressionHandler struct {
	config *config.Config
	logger *logrus.Logger
}

func NewProgressionHandler(config *config.Config, logger *logrus.Logger) *ProgressionHandler {
	return &ProgressionHandler{config: config, logger: logger}
}

// applyProgressionRequest is the body accepted by
// POST /api/v1/progression/apply.
type applyProgressionRequest struct {
	Teams      []types.Team                     `json:"teams" binding:"required"`
	Aggregates map[string]types.SeasonAggregate `json:"aggregates"`
	Year       int                              `json:"year" binding:"required"`
	Seed       *int64                           `json:"seed,omitempty"`
}

// Apply handles POST /api/v1/progression/apply: it ages every roster
// in the request by one offseason and returns both the diagnostic
// change log and the updated rosters, since progression mutates in
// place and the caller needs the result back to persist it.
func (h *ProgressionHandler) Apply(c *gin.Context) {
	var req applyProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}

	for i := range req.Teams {
		if err := req.Teams[i].Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roster", "details": err.Error()})
			return
		}
	}

	seed := h.config.BaseSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	result, err := engine.ApplyEndOfSeasonProgression(req.Teams, req.Aggregates, progression.Settings{}, seed, req.Year)
	if err != nil {
		h.logger.WithError(err).Error("progression run failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "progression failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams":   req.Teams,
		"changes": result.Changes,
	})
}
