package handlers

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/RamanShrikant/basketball-manager/internal/engine"
	"github.com/RamanShrikant/basketball-manager/pkg/cache"
	"github.com/RamanShrikant/basketball-manager/pkg/config"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// GamesHandler simulates single games on demand, caching results by a
// hash of the request body the way the teacher's OptimizationHandler
// caches lineup requests.
type GamesHandler struct {
	cache  *cache.SeasonCacheService
	config *config.Config
	logger *logrus.Logger
}

func NewGamesHandler(cache *cache.SeasonCacheService, config *config.Config, logger *logrus.Logger) *GamesHandler {
	return &GamesHandler{cache: cache, config: config, logger: logger}
}

// simulateRequest is the body accepted by POST /api/v1/games/simulate:
// two full rosters and an optional seed. Per-player minutes are never
// caller-supplied; lineup.Build derives them from each roster.
type simulateRequest struct {
	Home types.Team `json:"home" binding:"required"`
	Away types.Team `json:"away" binding:"required"`
	Seed *int64     `json:"seed,omitempty"`
}

// SimulateGame handles POST /api/v1/games/simulate.
func (h *GamesHandler) SimulateGame(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request format",
			"code":  "INVALID_REQUEST",
			"details": map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	if err := req.Home.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid home roster", "details": err.Error()})
		return
	}
	if err := req.Away.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid away roster", "details": err.Error()})
		return
	}

	cacheKey := h.generateCacheKey(req)

	if cached, err := h.cache.GetGameResult(c.Request.Context(), cacheKey); err == nil && cached != nil {
		h.logger.WithField("cache_key", cacheKey).Debug("returning cached game result")
		c.JSON(http.StatusOK, cached)
		return
	}

	seed := h.config.BaseSeed
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	lc := engine.NewLeagueContext([]types.Team{req.Home, req.Away})

	leagueKey := h.leagueKey(req.Home, req.Away)
	if cached, err := h.cache.GetLeagueContext(c.Request.Context(), leagueKey); err == nil {
		lc.Percentile = cached
	} else if err := h.cache.SetLeagueContext(c.Request.Context(), leagueKey, lc.Percentile.Snapshot(), time.Hour); err != nil {
		h.logger.WithError(err).Warn("failed to cache league context")
	}

	result, err := engine.SimulateGame(lc, req.Home, req.Away, rng)
	if err != nil {
		h.logger.WithError(err).Error("game simulation failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "simulation failed", "details": err.Error()})
		return
	}

	if err := h.cache.SetGameResult(c.Request.Context(), cacheKey, result, 24*time.Hour); err != nil {
		h.logger.WithError(err).Warn("failed to cache game result")
	}

	c.JSON(http.StatusOK, result)
}

func (h *GamesHandler) generateCacheKey(req simulateRequest) string {
	hash := md5.New()
	fmt.Fprintf(hash, "%+v", req)
	return fmt.Sprintf("sim:%x", hash.Sum(nil))
}

// leagueKey identifies the percentile curves built from this pair of
// rosters, so a repeated matchup between the same two teams skips
// rebuilding them. It hashes roster content rather than Team.ID, since
// an HTTP caller rarely supplies stable team IDs.
func (h *GamesHandler) leagueKey(home, away types.Team) string {
	hash := md5.New()
	fmt.Fprintf(hash, "%+v|%+v", home, away)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
