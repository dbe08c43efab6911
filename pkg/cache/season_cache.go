// Package cache wraps a Redis client for caching simulated game and
// season results, so a repeated request for the same matchup/seed
// doesn't re-run the engine (grounded on the teacher's
// OptimizationCacheService in services/optimization-service/pkg/cache).
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/RamanShrikant/basketball-manager/internal/percentile"
	"github.com/RamanShrikant/basketball-manager/pkg/types"
)

// SeasonCacheService caches engine outputs keyed by a caller-chosen
// request hash (typically the roster + seed that produced them).
type SeasonCacheService struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewSeasonCacheService(client *redis.Client, logger *logrus.Logger) *SeasonCacheService {
	return &SeasonCacheService{client: client, logger: logger}
}

// SetGameResult caches one simulated game under a request key.
func (c *SeasonCacheService) SetGameResult(ctx context.Context, key string, result *types.GameResult, expiration time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling game result: %w", err)
	}

	fullKey := fmt.Sprintf("game:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("setting game result in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{"cache_key": fullKey, "expiration": expiration}).Debug("cached game result")
	return nil
}

// GetGameResult retrieves a cached game result.
func (c *SeasonCacheService) GetGameResult(ctx context.Context, key string) (*types.GameResult, error) {
	fullKey := fmt.Sprintf("game:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("game result %q not found in cache", key)
		}
		return nil, fmt.Errorf("getting game result from cache: %w", err)
	}

	var result types.GameResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("unmarshaling game result: %w", err)
	}
	return &result, nil
}

// SetSeasonResult caches a full season's standings (aggregates are not
// cached).
func (c *SeasonCacheService) SetSeasonResult(ctx context.Context, key string, standings []types.StandingsRow, expiration time.Duration) error {
	data, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("marshaling season standings: %w", err)
	}

	fullKey := fmt.Sprintf("season:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("setting season result in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{"cache_key": fullKey, "teams": len(standings)}).Debug("cached season result")
	return nil
}

// GetSeasonResult retrieves cached season standings.
func (c *SeasonCacheService) GetSeasonResult(ctx context.Context, key string) ([]types.StandingsRow, error) {
	fullKey := fmt.Sprintf("season:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("season result %q not found in cache", key)
		}
		return nil, fmt.Errorf("getting season result from cache: %w", err)
	}

	var standings []types.StandingsRow
	if err := json.Unmarshal([]byte(data), &standings); err != nil {
		return nil, fmt.Errorf("unmarshaling season standings: %w", err)
	}
	return standings, nil
}

// SetLeagueContext caches a season's built percentile curves under
// leagueKey (typically a hash of the roster), so repeated game/season
// requests against an unchanged roster skip rebuilding them.
func (c *SeasonCacheService) SetLeagueContext(ctx context.Context, leagueKey string, snapshot percentile.Snapshot, expiration time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshaling league context: %w", err)
	}

	fullKey := fmt.Sprintf("leaguectx:%s", leagueKey)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("setting league context in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{"cache_key": fullKey}).Debug("cached league context")
	return nil
}

// GetLeagueContext retrieves a cached percentile.LeagueContext built
// for leagueKey, or an error if nothing is cached (including on a
// roster-change invalidation, since the caller rotates leagueKey).
func (c *SeasonCacheService) GetLeagueContext(ctx context.Context, leagueKey string) (*percentile.LeagueContext, error) {
	fullKey := fmt.Sprintf("leaguectx:%s", leagueKey)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("league context %q not found in cache", leagueKey)
		}
		return nil, fmt.Errorf("getting league context from cache: %w", err)
	}

	var snapshot percentile.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshaling league context: %w", err)
	}
	return percentile.FromSnapshot(snapshot), nil
}

// GetStatus reports basic cache occupancy.
func (c *SeasonCacheService) GetStatus(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"service":   "season-cache",
		"timestamp": time.Now(),
		"connected": true,
	}

	if dbSize, err := c.client.DBSize(ctx).Result(); err == nil {
		status["db_size"] = dbSize
	}

	if gameKeys, err := c.client.Keys(ctx, "game:*").Result(); err == nil {
		status["cached_games"] = len(gameKeys)
	}
	if seasonKeys, err := c.client.Keys(ctx, "season:*").Result(); err == nil {
		status["cached_seasons"] = len(seasonKeys)
	}
	if ctxKeys, err := c.client.Keys(ctx, "leaguectx:*").Result(); err == nil {
		status["cached_league_contexts"] = len(ctxKeys)
	}

	return status
}
