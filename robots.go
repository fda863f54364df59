package nokogiri

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/temoto/robotstxt"
)

const robotsCacheTTL = 86400 // 24h, documented per spec §4.3's "implementation choice"

// robotsResult is the outcome of checkRobots: whether scraping path is
// allowed and whether the probe itself failed (the robots.txt URL could not
// be built, or the server answered 5xx or 429).
type robotsResult struct {
	allowed bool
	failed  bool
}

// checkRobots implements the C7 state machine from spec §4.7 exactly,
// including its deliberately asymmetric caching rules.
func checkRobots(ctx context.Context, target *url.URL) robotsResult {
	origin := &url.URL{Scheme: target.Scheme, Host: target.Host}
	robotsURL, err := url.Parse(origin.String() + "/robots.txt")
	if err != nil {
		// "Failure to construct URL" -> failed, not-disallowed: allow, don't cache.
		return robotsResult{allowed: true, failed: true}
	}

	cache := cacheInstance()
	if cache != nil {
		if body, ok := cache.getRobotsCache(ctx, robotsURL.String()); ok {
			return evaluateRobotsBody(body, target)
		}
	}

	client := clientInstance()
	resp, body, err := client.Get(ctx, robotsURL.String(), RequestOptions{})
	if err != nil {
		// Transport failure -> cache empty string (permanently within TTL), allow.
		if cache != nil {
			cache.setRobotsCache(ctx, robotsURL.String(), "", robotsCacheTTL)
		}
		return robotsResult{allowed: true}
	}

	status := resp.StatusCode
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/plain") && status/100 == 2 {
		// 2xx but wrong content type: treated like "any other non-2xx" path below.
		if cache != nil {
			cache.setRobotsCache(ctx, robotsURL.String(), "", robotsCacheTTL)
		}
		return robotsResult{allowed: true}
	}

	switch {
	case status >= 500 || status == http.StatusTooManyRequests:
		// Transient problem: do not cache, deny (conservative stance).
		return robotsResult{allowed: false, failed: true}
	case status/100 != 2:
		if cache != nil {
			cache.setRobotsCache(ctx, robotsURL.String(), "", robotsCacheTTL)
		}
		return robotsResult{allowed: true}
	}

	if cache != nil {
		cache.setRobotsCache(ctx, robotsURL.String(), body, robotsCacheTTL)
	}
	return evaluateRobotsBody(body, target)
}

// evaluateRobotsBody parses body with the SummalyBot user-agent rules. A
// malformed document is fully permissive, matching spec §4.7.
func evaluateRobotsBody(body string, target *url.URL) robotsResult {
	if body == "" {
		return robotsResult{allowed: true}
	}
	data, err := robotstxt.FromString(body)
	if err != nil {
		return robotsResult{allowed: true}
	}
	group := data.FindGroup("SummalyBot")
	path := target.Path
	if path == "" {
		path = "/"
	}
	return robotsResult{allowed: group.Test(path)}
}
