package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RamanShrikant/basketball-manager/internal/awards"
	"github.com/RamanShrikant/basketball-manager/internal/engine"
	"github.com/RamanShrikant/basketball-manager/internal/rosterio"
	"github.com/RamanShrikant/basketball-manager/internal/season"
	"github.com/RamanShrikant/basketball-manager/internal/websocket"
	"github.com/RamanShrikant/basketball-manager/pkg/cache"
	"github.com/RamanShrikant/basketball-manager/pkg/config"
	"github.com/RamanShrikant/basketball-manager/pkg/database"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// runRecord tracks one in-flight or completed season run, keyed by its
// RunID. The registry is process-local; a run started on one replica
// is only queryable from that replica.
type runRecord struct {
	Status string // "running", "done", "failed"
	Result *rosterio.ResultsDocument
	Err    string
}

// SeasonsHandler kicks off season runs and reports their results,
// streaming progress over the websocket hub the way the teacher's
// SimulationHandler forwards Monte Carlo progress to a user's socket.
type SeasonsHandler struct {
	db     *database.DB
	cache  *cache.SeasonCacheService
	wsHub  *websocket.Hub
	config *config.Config
	logger *logrus.Logger

	mu   sync.RWMutex
	runs map[string]*runRecord
}

func NewSeasonsHandler(db *database.DB, cache *cache.SeasonCacheService, wsHub *websocket.Hub, config *config.Config, logger *logrus.Logger) *SeasonsHandler {
	return &SeasonsHandler{
		db:     db,
		cache:  cache,
		wsHub:  wsHub,
		config: config,
		logger: logger,
		runs:   make(map[string]*runRecord),
	}
}

// runSeasonRequest is the body accepted by POST /api/v1/seasons/run.
type runSeasonRequest struct {
	League          types.League `json:"league" binding:"required"`
	GamesPerMatchup int          `json:"games_per_matchup,omitempty"`
	Seed            *int64       `json:"seed,omitempty"`
	Workers         int          `json:"workers,omitempty"`
}

// RunSeason handles POST /api/v1/seasons/run: it validates the league,
// allocates a RunID, and starts the season worker pool in the
// background, returning immediately so the caller can watch
// GET /ws/season-progress/:run_id.
func (h *SeasonsHandler) RunSeason(c *gin.Context) {
	var req runSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}

	if err := req.League.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid league", "details": err.Error()})
		return
	}

	teams := req.League.Teams()
	if len(teams) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "league must carry at least two teams"})
		return
	}

	seed := h.config.BaseSeed
	if req.Seed != nil {
		seed = *req.Seed
	}
	workers := req.Workers
	if workers <= 0 {
		workers = h.config.SimulationWorkers
	}
	gamesPerMatchup := req.GamesPerMatchup
	if gamesPerMatchup <= 0 {
		gamesPerMatchup = h.config.GamesPerMatchup
	}

	runID := uuid.New().String()
	h.mu.Lock()
	h.runs[runID] = &runRecord{Status: "running"}
	h.mu.Unlock()

	go h.runSeason(runID, req.League, teams, gamesPerMatchup, seed, workers, h.config.RetryBound)

	c.JSON(http.StatusAccepted, gin.H{
		"run_id":          runID,
		"progress_ws":     "/ws/season-progress/" + runID,
		"results_path":    "/api/v1/seasons/" + runID + "/results",
		"teams":           len(teams),
		"games_per_match": gamesPerMatchup,
	})
}

func (h *SeasonsHandler) runSeason(runID string, league types.League, teams []types.Team, gamesPerMatchup int, seed int64, workers, retryBound int) {
	lc := engine.NewLeagueContext(teams)

	if h.cache != nil {
		if err := h.cache.SetLeagueContext(context.Background(), runID, lc.Percentile.Snapshot(), time.Hour); err != nil {
			h.logger.WithError(err).Warn("failed to cache league context")
		}
	}

	progress := make(chan season.Progress, 64)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			h.wsHub.BroadcastToRun(runID, gin.H{
				"run_id":    runID,
				"completed": p.Completed,
				"total":     p.Total,
			})
		}
	}()

	result, err := season.RunWithRetryBound(lc, teams, gamesPerMatchup, seed, workers, retryBound, progress)
	close(progress)
	<-done

	if err != nil {
		h.logger.WithError(err).WithField("run_id", runID).Error("season run failed")
		h.mu.Lock()
		h.runs[runID] = &runRecord{Status: "failed", Err: err.Error()}
		h.mu.Unlock()
		h.wsHub.BroadcastToRun(runID, gin.H{"run_id": runID, "status": "failed", "error": err.Error()})
		return
	}

	standings := result.Standings
	aggregates := make([]types.SeasonAggregate, 0, len(result.Aggregates))
	for _, a := range result.Aggregates {
		aggregates = append(aggregates, a)
	}

	report := engine.ComputeAwards(lc.Percentile, aggregates, teams, standings, league.SeasonYear)

	var finalsMVP awards.Result
	if len(standings) > 0 {
		champion := standings[0].Team
		finalsMVP = engine.ComputeFinalsMVP(aggregates, champion, teams, league.SeasonYear)
	}

	doc := &rosterio.ResultsDocument{
		Standings: standings,
		Players:   aggregates,
		Awards:    report,
		FinalsMVP: finalsMVP,
	}

	h.mu.Lock()
	h.runs[runID] = &runRecord{Status: "done", Result: doc}
	h.mu.Unlock()

	if h.db != nil {
		if err := h.db.SaveSeasonResult(league.SeasonYear, gamesPerMatchup, seed, standings); err != nil {
			h.logger.WithError(err).Warn("failed to persist season result")
		}
	}
	if h.cache != nil {
		if err := h.cache.SetSeasonResult(context.Background(), runID, standings, 24*time.Hour); err != nil {
			h.logger.WithError(err).Warn("failed to cache season result")
		}
	}

	h.wsHub.BroadcastToRun(runID, gin.H{"run_id": runID, "status": "done"})
}

// GetResults handles GET /api/v1/seasons/:run_id/results.
func (h *SeasonsHandler) GetResults(c *gin.Context) {
	runID := c.Param("run_id")

	h.mu.RLock()
	rec, ok := h.runs[runID]
	h.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown run_id"})
		return
	}

	switch rec.Status {
	case "running":
		c.JSON(http.StatusAccepted, gin.H{"run_id": runID, "status": "running"})
	case "failed":
		c.JSON(http.StatusUnprocessableEntity, gin.H{"run_id": runID, "status": "failed", "error": rec.Err})
	default:
		c.JSON(http.StatusOK, rec.Result)
	}
}
