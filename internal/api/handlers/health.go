package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/RamanShrikant/basketball-manager/pkg/database"
)

// HealthStatus is the shared shape for /health and /ready responses.
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler handles health and readiness probes for the season
// service.
type HealthHandler struct {
	db     *database.DB
	redis  *redis.Client
	logger *logrus.Logger
}

func NewHealthHandler(db *database.DB, redis *redis.Client, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, logger: logger}
}

// GetHealth reports whether the process and its dependencies are
// reachable. Redis is critical (it backs the simulation cache);
// Postgres is optional since the engine can run without persistence.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	response := HealthStatus{
		Status:    "ok",
		Service:   "basketball-season-service",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			response.Status = "degraded"
			response.Checks["database"] = "failed: " + err.Error()
		} else {
			response.Checks["database"] = "ok"
		}
	} else {
		response.Checks["database"] = "not_configured"
	}

	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		response.Status = "unhealthy"
		response.Checks["redis"] = "failed: " + err.Error()
	} else {
		response.Checks["redis"] = "ok"
	}

	statusCode := http.StatusOK
	switch response.Status {
	case "unhealthy":
		statusCode = http.StatusServiceUnavailable
	case "degraded":
		statusCode = http.StatusPartialContent
	}

	c.JSON(statusCode, response)
}

// GetReady reports whether the service can accept simulation traffic.
// Redis must be reachable; Postgres failure is logged but doesn't
// block readiness since results persistence is best-effort.
func (h *HealthHandler) GetReady(c *gin.Context) {
	response := HealthStatus{
		Status:    "ready",
		Service:   "basketball-season-service",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		response.Status = "not_ready"
		response.Checks["redis"] = "failed: " + err.Error()
	} else {
		response.Checks["redis"] = "ok"
	}

	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			response.Checks["database"] = "failed: " + err.Error()
		} else {
			response.Checks["database"] = "ok"
		}
	}

	statusCode := http.StatusOK
	if response.Status != "ready" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// GetMetrics surfaces basic cache occupancy and connection pool stats
// for operators.
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	metrics := map[string]interface{}{
		"service":   "basketball-season-service",
		"timestamp": time.Now(),
	}

	if dbSize, err := h.redis.DBSize(c.Request.Context()).Result(); err == nil {
		metrics["cache"] = map[string]interface{}{"total_keys": dbSize}

		if gameKeys, err := h.redis.Keys(c.Request.Context(), "game:*").Result(); err == nil {
			metrics["game_cache"] = map[string]interface{}{"cached_results": len(gameKeys)}
		}
		if seasonKeys, err := h.redis.Keys(c.Request.Context(), "season:*").Result(); err == nil {
			metrics["season_cache"] = map[string]interface{}{"cached_results": len(seasonKeys)}
		}
	}

	if h.db != nil {
		if sqlDB, err := h.db.DB.DB(); err == nil {
			stats := sqlDB.Stats()
			metrics["database"] = map[string]interface{}{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			}
		}
	}

	c.JSON(http.StatusOK, metrics)
}
