package nokogiri

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

const (
	cacheTTLMin     = 300
	cacheTTLMax     = 86400
	cacheNegTTL     = 300
	cacheKeyPrefix  = "nokogiri"
)

// summaryCache wraps a Redis connection used to memoize summarize() results
// and robots.txt bodies. A nil *summaryCache is valid and behaves as an
// always-miss, no-op cache, matching the "cache.enabled = false" config path.
type summaryCache struct {
	rdb    *redis.Client
	prefix string
}

var globalCache *summaryCache

// SetGlobalCache installs c as the process-lifetime summary cache. Pass nil
// to run with caching disabled.
func SetGlobalCache(c *summaryCache) { globalCache = c }

func cacheInstance() *summaryCache { return globalCache }

// NewSummaryCache builds a cache from the [cache] config section and probes
// connectivity with PING. Per spec §4.3, startup must refuse to run only if
// cache.enabled is true and this probe fails. Returns (nil, nil) when
// caching is disabled.
func NewSummaryCache(ctx context.Context, cfg CacheConfig) (*summaryCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opts := &redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
	if cfg.DB != nil {
		opts.DB = *cfg.DB
	}
	if cfg.Username != nil {
		opts.Username = *cfg.Username
	}
	if cfg.Password != nil {
		opts.Password = *cfg.Password
	}

	rdb := redis.NewClient(opts)
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(probeCtx).Err(); err != nil {
		return nil, fmt.Errorf("cache enabled but unreachable at %s: %w", opts.Addr, err)
	}

	prefix := cacheKeyPrefix
	if cfg.Prefix != nil && *cfg.Prefix != "" {
		prefix = *cfg.Prefix + ":" + cacheKeyPrefix
	}
	return &summaryCache{rdb: rdb, prefix: prefix}, nil
}

// genKey reproduces original_source/src/core/cache.rs's gen_key: a category,
// the xxh64 fingerprint of the URL, and an optional language discriminator.
func (c *summaryCache) genKey(category, rawURL, lang string) string {
	sum := xxhash.Sum64String(rawURL)
	langPart := "none"
	if lang != "" {
		langPart = lang
	}
	return fmt.Sprintf("%s:%s:%x:%s", c.prefix, category, sum, langPart)
}

// clampTTL enforces the [300, 86400] second window from spec §4.3 for the
// "summarize" category. Other categories (e.g. robots.txt bodies) are passed
// through unclamped by their callers.
func clampTTL(ttl int64) int64 {
	switch {
	case ttl < cacheTTLMin:
		return cacheTTLMin
	case ttl > cacheTTLMax:
		return cacheTTLMax
	default:
		return ttl
	}
}

// get returns the cached value and true if present. Any backend error is
// treated as a miss, not a fatal condition: the cache degrades silently at
// runtime per spec §4.3.
func (c *summaryCache) get(ctx context.Context, category, rawURL, lang string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, err := c.rdb.Get(ctx, c.genKey(category, rawURL, lang)).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

// set stores value under the category/url/lang key with the given TTL. A
// zero or negative ttl is treated as "don't cache" and is a no-op.
func (c *summaryCache) set(ctx context.Context, category, rawURL, lang, value string, ttl int64) {
	if c == nil || ttl <= 0 {
		return
	}
	_ = c.rdb.Set(ctx, c.genKey(category, rawURL, lang), value, time.Duration(ttl)*time.Second).Err()
}

// getSummarizeCache / setSummarizeCache are the "summarize" category's
// entrypoints, matching get_summarize_cache/set_summarize_cache in
// original_source/src/core/cache.rs. lang is folded into the key because a
// summary's title/description can be localized (wikipedia, oembed).
func (c *summaryCache) getSummarizeCache(ctx context.Context, rawURL, lang string) (string, bool) {
	return c.get(ctx, "summarize", rawURL, lang)
}

func (c *summaryCache) setSummarizeCache(ctx context.Context, rawURL, lang, value string, ttl int64) {
	c.set(ctx, "summarize", rawURL, lang, value, clampTTL(ttl))
}

// getRobotsCache / setRobotsCache back the robots.txt gate's exact, somewhat
// unusual caching rules (see robots.go): an empty string is a valid cached
// "no rules" result distinct from a cache miss.
func (c *summaryCache) getRobotsCache(ctx context.Context, rawURL string) (string, bool) {
	return c.get(ctx, "robotstxt", rawURL, "")
}

func (c *summaryCache) setRobotsCache(ctx context.Context, rawURL, body string, ttl int64) {
	c.set(ctx, "robotstxt", rawURL, "", body, ttl)
}
