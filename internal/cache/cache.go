// Package cache is a Redis-backed store for analysis results with graceful
// degradation: when Redis is down, reads miss and writes are dropped, and
// callers fall through to a fresh analysis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"pattern-analyzer/internal/analysis"
)

// ErrMiss is returned when no cached result exists for the key.
var ErrMiss = errors.New("cache: miss")

const keyFormat = "analysis:%s:%s" // symbol, timeframe

// Config holds Redis connection settings.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	TTL      int    `json:"ttl_seconds"`
}

// AnalysisCache stores serialized analysis results keyed by symbol and
// timeframe.
type AnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New connects to Redis and verifies connectivity. A failed ping is logged,
// not fatal; the cache starts in degraded mode and recovers when Redis does.
func New(cfg Config, logger zerolog.Logger) *AnalysisCache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ttl := time.Duration(cfg.TTL) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &AnalysisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Logger(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("Redis unavailable, cache degraded")
	}

	return c
}

// Get returns the cached result for symbol/timeframe, or ErrMiss.
func (c *AnalysisCache) Get(ctx context.Context, symbol, timeframe string) (*analysis.Result, error) {
	key := fmt.Sprintf(keyFormat, symbol, timeframe)
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	var result analysis.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return &result, nil
}

// Set stores the result under symbol/timeframe for the configured TTL.
// Failures are logged and swallowed; a cold cache is not an error.
func (c *AnalysisCache) Set(ctx context.Context, symbol, timeframe string, result *analysis.Result) {
	key := fmt.Sprintf(keyFormat, symbol, timeframe)
	raw, err := json.Marshal(result)
	if err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("Failed to encode analysis result")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache analysis result")
	}
}

// Close releases the Redis connection.
func (c *AnalysisCache) Close() error {
	return c.client.Close()
}
