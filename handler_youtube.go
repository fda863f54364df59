package nokogiri

import (
	"context"
	"net/url"
	"regexp"

	"github.com/hideki0403/nokogiri/internal/useragent"
)

var youtubeDomainRE = regexp.MustCompile(`^(.*\.)?(?:youtube(-nocookie)?\.com|youtu\.be)$`)

type youtubeHandler struct{}

func (youtubeHandler) ID() string { return "youtube" }

func (youtubeHandler) Test(u *url.URL) bool { return youtubeDomainRE.MatchString(u.Hostname()) }

func (youtubeHandler) Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool) {
	summary, ttl, ok := fetchAndExtract(ctx, args.URL, RequestOptions{UserAgent: useragent.TwitterBot, AcceptLanguage: args.Lang})
	if !ok {
		return nil, false
	}
	return &SummaryResultWithMetadata{Summary: summary, CacheTTL: ttl}, true
}
