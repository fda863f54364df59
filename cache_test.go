package nokogiri

import (
	"context"
	"testing"
)

func TestClampTTL(t *testing.T) {
	cases := []struct {
		in, want int64
	}{
		{0, 300},
		{299, 300},
		{300, 300},
		{3600, 3600},
		{86400, 86400},
		{90000, 86400},
		{-10, 300},
	}
	for _, c := range cases {
		if got := clampTTL(c.in); got != c.want {
			t.Errorf("clampTTL(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestGenKeyIncludesLangDiscriminator(t *testing.T) {
	c := &summaryCache{prefix: cacheKeyPrefix}
	withLang := c.genKey("summarize", "https://example.com/", "en-US")
	withoutLang := c.genKey("summarize", "https://example.com/", "")
	if withLang == withoutLang {
		t.Error("keys with and without a lang discriminator must differ")
	}
	if got := c.genKey("summarize", "https://example.com/", ""); got != withoutLang {
		t.Error("genKey must be deterministic for identical inputs")
	}
}

func TestGenKeyDiffersByCategory(t *testing.T) {
	c := &summaryCache{prefix: cacheKeyPrefix}
	a := c.genKey("summarize", "https://example.com/", "")
	b := c.genKey("robotstxt", "https://example.com/", "")
	if a == b {
		t.Error("keys must differ by category even for the same URL")
	}
}

func TestNilCacheIsNoopGetSet(t *testing.T) {
	var c *summaryCache
	ctx := context.Background()
	if _, ok := c.get(ctx, "summarize", "https://example.com/", ""); ok {
		t.Error("nil cache must always miss")
	}
	// must not panic
	c.set(ctx, "summarize", "https://example.com/", "", "value", 3600)
}

func TestNewSummaryCacheDisabledReturnsNilNil(t *testing.T) {
	c, err := NewSummaryCache(context.Background(), CacheConfig{Enabled: false})
	if c != nil || err != nil {
		t.Errorf("disabled cache must return (nil, nil), got (%v, %v)", c, err)
	}
}
