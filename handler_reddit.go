package nokogiri

import (
	"context"
	"net/url"
	"strings"

	"github.com/hideki0403/nokogiri/internal/useragent"
)

type redditHandler struct{}

func (redditHandler) ID() string { return "reddit" }

func (redditHandler) Test(u *url.URL) bool {
	host := u.Hostname()
	return host == "reddit.com" || strings.HasSuffix(host, ".reddit.com") || host == "redd.it"
}

func (redditHandler) Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool) {
	summary, _, ok := fetchAndExtract(ctx, args.URL, RequestOptions{UserAgent: useragent.TwitterBot, AcceptLanguage: args.Lang})
	if !ok {
		return nil, false
	}
	return &SummaryResultWithMetadata{Summary: summary, CacheTTL: 3600}, true
}
