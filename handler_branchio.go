package nokogiri

import (
	"context"
	"net/url"
	"strings"
)

type branchioHandler struct{}

func (branchioHandler) ID() string { return "branchio" }

func (branchioHandler) Test(u *url.URL) bool {
	domain := u.Hostname()
	return domain == "spotify.link" || strings.HasSuffix(domain, ".app.link")
}

func (branchioHandler) Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool) {
	fixed := *args.URL
	fixed.RawQuery = "$web_only=true"

	summary, ttl, ok := fetchAndExtract(ctx, &fixed, RequestOptions{UserAgent: args.UserAgent, AcceptLanguage: args.Lang})
	if !ok {
		return nil, false
	}
	return &SummaryResultWithMetadata{Summary: summary, CacheTTL: ttl}, true
}
