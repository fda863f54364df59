package nokogiri

import (
	"context"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/hideki0403/nokogiri/internal/useragent"
)

var amazonDomainRE = regexp.MustCompile(`^(www\.)?((amazon(\.co|com)?(\.[a-z]{2})?|amzn\.[a-z]{2,4}))$`)

var selAdultWarning = sel(`#adultWarning`)

type amazonHandler struct{}

func (amazonHandler) ID() string { return "amazon" }

func (amazonHandler) Test(u *url.URL) bool {
	host := u.Hostname()
	if host == "" {
		return false
	}
	return amazonDomainRE.MatchString(host)
}

func (amazonHandler) Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool) {
	icon := "https://www.amazon.com/favicon.ico"
	sitename := "Amazon"
	largeCard := true
	ov := extractOverrides{
		forceIcon:       &icon,
		forceIconExists: true,
		forceSitename:   &sitename,
		forceLargeCard:  &largeCard,
		skipOembedPlayer: true,
		forceSensitive: func(doc *goquery.Document) *bool {
			return boolPtr(doc.FindMatcher(goquery.Single(selAdultWarning)).Length() > 0)
		},
	}
	summary, _, ok := fetchAndExtractWith(ctx, args.URL, RequestOptions{UserAgent: useragent.TwitterBot, AcceptLanguage: args.Lang}, ov)
	if !ok {
		return nil, false
	}
	return &SummaryResultWithMetadata{Summary: summary, CacheTTL: 3600}, true
}
