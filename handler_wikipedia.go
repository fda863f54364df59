package nokogiri

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

var wikipediaPageRE = regexp.MustCompile(`^https?://(?:(?P<lang>.*?)\.)?wikipedia\.org/wiki/(?P<title>.*?)(?:[#?/].*)?$`)

type wikipediaHandler struct{}

func (wikipediaHandler) ID() string { return "wikipedia" }

func (wikipediaHandler) Test(u *url.URL) bool {
	host := u.Hostname()
	return host == "wikipedia.org" || strings.HasSuffix(host, ".wikipedia.org")
}

type wikipediaAPIResponse struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

func (wikipediaHandler) Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool) {
	m := wikipediaPageRE.FindStringSubmatch(args.URL.String())
	if m == nil {
		return nil, false
	}
	lang := m[wikipediaPageRE.SubexpIndex("lang")]
	if lang == "" {
		lang = "en"
	}
	title := m[wikipediaPageRE.SubexpIndex("title")]
	if title == "" {
		return nil, false
	}

	client := clientInstance()
	if client == nil {
		return nil, false
	}
	apiURL := "https://" + lang + ".wikipedia.org/api/rest_v1/page/summary/" + title
	resp, body, err := client.Get(ctx, apiURL, RequestOptions{Headers: map[string]string{"Accept": "application/json"}})
	if err != nil || resp.StatusCode/100 != 2 {
		return nil, false
	}

	var page wikipediaAPIResponse
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		return nil, false
	}

	summary := Summary{
		Title:       textClampN(page.Title, 100),
		Description: textClampN(page.Extract, 300),
		Icon:        "https://wikipedia.org/static/favicon/wikipedia.ico",
		Sitename:    "Wikipedia",
		Thumbnail:   "https://wikipedia.org/static/images/project-logos/" + lang + "wiki.png",
		Player:      Player{Allow: []string{}},
	}
	return &SummaryResultWithMetadata{Summary: summary, CacheTTL: 604800}, true
}
