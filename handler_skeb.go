package nokogiri

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/hideki0403/nokogiri/internal/useragent"
)

var skebAcceptableURLRE = regexp.MustCompile(`^https://([a-z0-9-]+\.)?skeb\.jp/@(?P<user>\w+)(/works/(?P<work>[0-9]+))?/?$`)
var skebCookieRE = regexp.MustCompile(`document\.cookie\s?=\s?"(?P<cookie>.*)";`)

type skebHandler struct{}

func (skebHandler) ID() string { return "skeb" }

func (skebHandler) Test(u *url.URL) bool { return skebAcceptableURLRE.MatchString(u.String()) }

var skebRequestOptions = RequestOptions{
	UserAgent: useragent.Chrome,
	Headers:   map[string]string{"Authorization": "Bearer null", "Accept": "application/json"},
}

type skebUserResponse struct {
	Name        string  `json:"name"`
	ScreenName  string  `json:"screen_name"`
	Description *string `json:"description"`
	OgImageURL  *string `json:"og_image_url"`
}

type skebWorkResponse struct {
	Creator struct {
		Name string `json:"name"`
	} `json:"creator"`
	Body       *string `json:"body"`
	OgImageURL *string `json:"og_image_url"`
	NSFW       bool    `json:"nsfw"`
}

// skebAPICall implements the 429-retry-after-cookie dance from
// original_source/src/core/summary/handler/skeb.rs's api_caller: on a 429
// with Retry-After: 0, a document.cookie assignment is scraped from the body
// and replayed as a real cookie before retrying once.
func skebAPICall(ctx context.Context, target string, out interface{}) bool {
	client := clientInstance()
	if client == nil {
		return false
	}

	resp, body, err := client.Get(ctx, target, skebRequestOptions)
	if err == nil && resp.StatusCode == http.StatusTooManyRequests && resp.Header.Get("Retry-After") == "0" {
		if m := skebCookieRE.FindStringSubmatch(body); m != nil {
			cookie := m[skebCookieRE.SubexpIndex("cookie")]
			_ = client.addCookie(target, cookie)
			resp, body, err = client.Get(ctx, target, skebRequestOptions)
		}
	}
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(body), out) == nil
}

func (skebHandler) Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool) {
	m := skebAcceptableURLRE.FindStringSubmatch(args.URL.String())
	if m == nil {
		return nil, false
	}
	user := m[skebAcceptableURLRE.SubexpIndex("user")]
	work := m[skebAcceptableURLRE.SubexpIndex("work")]

	var (
		title       string
		description *string
		ogImage     *string
		nsfw        bool
	)

	if work != "" {
		var resp skebWorkResponse
		if !skebAPICall(ctx, "https://skeb.jp/api/users/"+user+"/works/"+work, &resp) {
			return nil, false
		}
		clamped := "Untitled"
		if resp.Body != nil {
			clamped = textClampN(strings.ReplaceAll(*resp.Body, "\n", ""), 12)
		}
		title = clamped + " by " + resp.Creator.Name
		if resp.Body != nil {
			d := textClampN(*resp.Body, 300)
			description = &d
		}
		ogImage = resp.OgImageURL
		nsfw = resp.NSFW
	} else {
		var resp skebUserResponse
		if !skebAPICall(ctx, "https://skeb.jp/api/users/"+user, &resp) {
			return nil, false
		}
		title = resp.Name + " (@" + resp.ScreenName + ")"
		if resp.Description != nil {
			d := textClampN(*resp.Description, 300)
			description = &d
		}
		ogImage = resp.OgImageURL
	}

	summary := Summary{
		Title:     title + " | Skeb",
		Icon:      "https://fcdn.skeb.jp/assets/v1/commons/favicon.ico",
		Sitename:  "Skeb",
		Sensitive: boolPtr(nsfw),
		LargeCard: boolPtr(true),
		Player:    Player{Allow: []string{}},
	}
	if description != nil {
		summary.Description = *description
	}
	if ogImage != nil {
		summary.Thumbnail = *ogImage
	}

	return &SummaryResultWithMetadata{Summary: summary, CacheTTL: 3600}, true
}
