// internal/cache/dashboard.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fieldserve/serviceops/internal/config"
	"github.com/fieldserve/serviceops/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix = "dashboard:kpi"
	scanBatchSize      = 100
)

// DashboardCache holds assembled dashboard payloads for a short TTL.
// Nothing is persisted: an expired entry is simply re-derived from the
// latest fetched rows.
type DashboardCache interface {
	Get(ctx context.Context, filter domain.Filter) (*domain.Dashboard, bool, error)
	Set(ctx context.Context, filter domain.Filter, dashboard *domain.Dashboard) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) Get(ctx context.Context, filter domain.Filter) (*domain.Dashboard, bool, error) {
	key := buildDashboardKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dashboard domain.Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}

	return &dashboard, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, filter domain.Filter, dashboard *domain.Dashboard) error {
	key := buildDashboardKey(filter)
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, scanBatchSize)
}

func (c *noopDashboardCache) Get(ctx context.Context, filter domain.Filter) (*domain.Dashboard, bool, error) {
	return nil, false, nil
}

func (c *noopDashboardCache) Set(ctx context.Context, filter domain.Filter, dashboard *domain.Dashboard) error {
	return nil
}

func (c *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// buildDashboardKey hashes the normalized filter so equivalent filters
// share a cache entry regardless of parameter order.
func buildDashboardKey(filter domain.Filter) string {
	sites := domain.MapSitesToCodes(filter.Sites)
	sort.Strings(sites)
	statuses := append([]string(nil), filter.Statuses...)
	sort.Strings(statuses)

	parts := []string{
		strings.Join(sites, ","),
		strings.Join(statuses, ","),
		filter.Priority,
		strconv.Itoa(filter.HorizonOrDefault()),
		strconv.FormatBool(filter.OnlyExceptions),
	}
	if filter.From != nil {
		parts = append(parts, filter.From.UTC().Format(time.RFC3339))
	}
	if filter.To != nil {
		parts = append(parts, filter.To.UTC().Format(time.RFC3339))
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return dashboardKeyPrefix + ":" + hex.EncodeToString(sum[:])
}
