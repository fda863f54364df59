package nokogiri

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

var twitterURLRE = regexp.MustCompile(`^https?://((www|mobile)\.)?(twitter|x)\.com/\w+/status/(?P<id>\d+)([/?#].*)?$`)

type twitterHandler struct{}

func (twitterHandler) ID() string { return "twitter" }

func (twitterHandler) Test(u *url.URL) bool { return twitterURLRE.MatchString(u.String()) }

type tweetData struct {
	Typename          *string        `json:"__typename"`
	Text              *string        `json:"text"`
	User              *tweetUser     `json:"user"`
	Entities          *tweetEntities `json:"entities"`
	Photos            []tweetPhoto   `json:"photos"`
	Video             *tweetVideo    `json:"video"`
	PossiblySensitive *bool          `json:"possibly_sensitive"`
}

type tweetUser struct {
	Name                  *string `json:"name"`
	ScreenName            *string `json:"screen_name"`
	ProfileImageURLHTTPS  *string `json:"profile_image_url_https"`
}

type tweetEntities struct {
	URLs  []tweetURLEntity `json:"urls"`
	Media []tweetURLEntity `json:"media"`
}

type tweetURLEntity struct {
	DisplayURL *string `json:"display_url"`
	URL        *string `json:"url"`
}

type tweetPhoto struct {
	URL *string `json:"url"`
}

type tweetVideo struct {
	Poster *string `json:"poster"`
}

func (twitterHandler) Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool) {
	m := twitterURLRE.FindStringSubmatch(args.URL.String())
	if m == nil {
		return nil, false
	}
	id := m[twitterURLRE.SubexpIndex("id")]

	client := clientInstance()
	if client == nil {
		return nil, false
	}
	apiURL := "https://cdn.syndication.twimg.com/tweet-result?id=" + id + "&token=x&lang=en"
	_, body, err := client.Get(ctx, apiURL, RequestOptions{UserAgent: args.UserAgent, AcceptLanguage: args.Lang})
	if err != nil {
		return nil, false
	}

	isTwitter := strings.Contains(strings.ToLower(args.URL.Hostname()), "twitter")

	var tweet tweetData
	if err := json.Unmarshal([]byte(body), &tweet); err != nil {
		return nil, false
	}
	dataAvailable := tweet.Typename != nil && *tweet.Typename == "Tweet"

	summary := Summary{
		Player: Player{Allow: []string{}},
	}
	if isTwitter {
		summary.Icon = "https://abs.twimg.com/favicons/twitter.2.ico"
		summary.Sitename = "Twitter"
	} else {
		summary.Icon = "https://x.com/favicon.ico"
		summary.Sitename = "X"
	}
	if tweet.PossiblySensitive != nil {
		summary.Sensitive = tweet.PossiblySensitive
	}

	if dataAvailable {
		if tweet.User == nil || tweet.User.Name == nil || tweet.User.ScreenName == nil {
			Logger().Info("tweet user name or screen_name missing", "id", id)
			return nil, false
		}

		text := ""
		if tweet.Text != nil {
			text = *tweet.Text
		}
		if tweet.Entities != nil {
			for _, e := range tweet.Entities.URLs {
				if e.URL != nil && e.DisplayURL != nil {
					text = strings.ReplaceAll(text, *e.URL, *e.DisplayURL)
				}
			}
			for _, m := range tweet.Entities.Media {
				if m.URL != nil {
					text = strings.ReplaceAll(text, *m.URL, "")
				}
			}
		}

		var thumbnail string
		switch {
		case tweet.Video != nil && tweet.Video.Poster != nil:
			thumbnail = *tweet.Video.Poster
		case len(tweet.Photos) > 0 && tweet.Photos[0].URL != nil:
			thumbnail = *tweet.Photos[0].URL
		case tweet.User.ProfileImageURLHTTPS != nil:
			thumbnail = strings.Replace(*tweet.User.ProfileImageURLHTTPS, "_normal.", ".", 1)
		}

		summary.Title = *tweet.User.Name + " (@" + *tweet.User.ScreenName + ")"
		summary.Description = strings.TrimSpace(text)
		summary.Thumbnail = thumbnail
	} else if isTwitter {
		summary.Title = "Twitter"
	} else {
		summary.Title = "X"
	}

	return &SummaryResultWithMetadata{Summary: summary, CacheTTL: 3600}, true
}
