// Package rates implements the exchange-rate collaborator with an optional
// redis-backed cache in front of the HTTP API.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"echo/internal/config"
)

// Client fetches the latest exchange-rate table for a base currency. When a
// redis address is configured, fetched tables are cached with a TTL so
// repeated conversions do not hammer the upstream API.
type Client struct {
	httpClient *http.Client
	cache      *redis.Client
	log        *slog.Logger
	baseURL    string
	cacheTTL   time.Duration
}

// NewClient creates a rate client. The redis cache is optional: with an empty
// RedisAddr every lookup goes straight to the HTTP API.
func NewClient(cfg config.RatesConfig, log *slog.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With("component", "rates_client"),
		baseURL:    cfg.BaseURL,
		cacheTTL:   cfg.CacheTTL,
	}
	if cfg.RedisAddr != "" {
		c.cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		c.log.Info("Exchange-rate caching enabled", "redis_addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}
	return c
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Latest returns the rate table for base (e.g. "USD"), consulting the cache
// first when one is configured. Cache failures are logged and ignored; the
// upstream API remains the source of truth.
func (c *Client) Latest(ctx context.Context, base string) (map[string]float64, error) {
	cacheKey := "rates:" + base

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var table map[string]float64
			if err := json.Unmarshal([]byte(cached), &table); err == nil {
				c.log.DebugContext(ctx, "Exchange rates served from cache", "base", base)
				return table, nil
			}
		} else if err != redis.Nil {
			c.log.WarnContext(ctx, "Rate cache lookup failed", "base", base, "error", err)
		}
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates service returned status %d", resp.StatusCode)
	}

	var data ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if len(data.Rates) == 0 {
		return nil, fmt.Errorf("rates response missing rate table")
	}

	if c.cache != nil {
		encoded, err := json.Marshal(data.Rates)
		if err == nil {
			if err := c.cache.Set(ctx, cacheKey, encoded, c.cacheTTL).Err(); err != nil {
				c.log.WarnContext(ctx, "Failed to cache exchange rates", "base", base, "error", err)
			}
		}
	}

	return data.Rates, nil
}
