package nokogiri

import (
	"context"
	"net/url"

	"github.com/hideki0403/nokogiri/internal/useragent"
)

type spotifyHandler struct{}

func (spotifyHandler) ID() string { return "spotify" }

func (spotifyHandler) Test(u *url.URL) bool { return u.Hostname() == "open.spotify.com" }

func (spotifyHandler) Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool) {
	sitename := "Spotify"
	ov := extractOverrides{forceSitename: &sitename, forcePlayerNone: true}
	summary, _, ok := fetchAndExtractWith(ctx, args.URL, RequestOptions{UserAgent: useragent.TwitterBot, AcceptLanguage: args.Lang}, ov)
	if !ok {
		return nil, false
	}
	return &SummaryResultWithMetadata{Summary: summary, CacheTTL: 86400}, true
}
