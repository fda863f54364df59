package nokogiri

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fetchAndExtract fetches target with opts, parses it as HTML, and runs the
// generic extractor, returning the page's Cache-Control-derived TTL
// alongside the Summary. Shared by every handler that defers to C8.
func fetchAndExtract(ctx context.Context, target *url.URL, opts RequestOptions) (Summary, int64, bool) {
	client := clientInstance()
	if client == nil {
		return Summary{}, 0, false
	}
	resp, body, err := client.Get(ctx, target.String(), opts)
	if err != nil {
		return Summary{}, 0, false
	}
	ttl := cacheControlMaxAge(resp.Header.Get("Cache-Control"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Summary{}, 0, false
	}
	summary, err := genericExtract(ctx, doc, target, opts)
	if err != nil {
		return Summary{}, 0, false
	}
	return summary, ttl, true
}

// fetchAndExtractWith is fetchAndExtract with per-site extractOverrides.
func fetchAndExtractWith(ctx context.Context, target *url.URL, opts RequestOptions, ov extractOverrides) (Summary, int64, bool) {
	client := clientInstance()
	if client == nil {
		return Summary{}, 0, false
	}
	resp, body, err := client.Get(ctx, target.String(), opts)
	if err != nil {
		return Summary{}, 0, false
	}
	ttl := cacheControlMaxAge(resp.Header.Get("Cache-Control"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Summary{}, 0, false
	}
	summary, err := genericExtractWith(ctx, doc, target, opts, ov)
	if err != nil {
		return Summary{}, 0, false
	}
	return summary, ttl, true
}

// generalHandler is the unconditional dispatch terminator (spec §4.11).
type generalHandler struct{}

func (generalHandler) ID() string { return "general" }

func (generalHandler) Test(*url.URL) bool { return true }

func (generalHandler) Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool) {
	if !config().General.IgnoreRobotsTxt {
		res := checkRobots(ctx, args.URL)
		if !res.allowed {
			Logger().Info("scraping disallowed by robots.txt", "url", args.URL.String())
			return nil, false
		}
	}

	summary, ttl, ok := fetchAndExtract(ctx, args.URL, RequestOptions{UserAgent: args.UserAgent, AcceptLanguage: args.Lang})
	if !ok {
		return nil, false
	}
	return &SummaryResultWithMetadata{Summary: summary, CacheTTL: ttl}, true
}
