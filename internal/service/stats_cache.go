package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dashboardCacheTTL = time.Minute

// StatsCache is a best-effort redis cache for per-user dashboard summaries.
// Every write to a user's records invalidates that user's entry. A nil cache
// or an unreachable redis disables caching without failing requests.
type StatsCache struct {
	rdb *redis.Client
}

// NewStatsCache creates a new StatsCache
func NewStatsCache(rdb *redis.Client) *StatsCache {
	return &StatsCache{rdb: rdb}
}

func dashboardKey(userID uint) string {
	return fmt.Sprintf("stats:dashboard:%d", userID)
}

// GetDashboard returns the cached dashboard for a user, if present
func (c *StatsCache) GetDashboard(ctx context.Context, userID uint) (*DashboardStats, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, dashboardKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var stats DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// SetDashboard stores a dashboard summary with a short TTL
func (c *StatsCache) SetDashboard(ctx context.Context, userID uint, stats *DashboardStats) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, dashboardKey(userID), data, dashboardCacheTTL)
}

// InvalidateDashboard drops a user's cached dashboard after a write
func (c *StatsCache) InvalidateDashboard(ctx context.Context, userID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, dashboardKey(userID))
}
