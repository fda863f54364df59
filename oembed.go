package nokogiri

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// oembedIgnoredAllowTokens are dropped silently before the allowed-set check.
var oembedIgnoredAllowTokens = map[string]bool{
	"accelerometer": true,
	"gyroscope":     true,
}

// oembedAllowedTokens is the only set a surviving iframe `allow` token may
// belong to; anything else rejects the whole oEmbed response.
var oembedAllowedTokens = map[string]bool{
	"autoplay":         true,
	"clipboard-write":  true,
	"fullscreen":       true,
	"encrypted-media":  true,
	"picture-in-picture": true,
	"web-share":        true,
}

const oembedHeightCap = 1024

type oembedResponse struct {
	Version string `json:"version"`
	Type    string `json:"type"`
	HTML    string `json:"html"`
	Width   *int   `json:"width"`
	Height  *int   `json:"height"`
}

// resolveOEmbed implements C9. absHref is the oEmbed endpoint, already
// resolved against the page it was discovered on.
func resolveOEmbed(ctx context.Context, absHref string) (Player, bool) {
	client := clientInstance()
	if client == nil {
		return Player{}, false
	}
	_, body, err := client.Get(ctx, absHref, RequestOptions{Headers: map[string]string{"Accept": "application/json"}})
	if err != nil {
		return Player{}, false
	}

	var resp oembedResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return Player{}, false
	}

	// Spec §4.9 step 2: both conditions must hold (the source this was
	// distilled from only checked one; see DESIGN.md open-question entry).
	if resp.Version != "1.0" {
		return Player{}, false
	}
	if resp.Type != "video" && resp.Type != "rich" {
		return Player{}, false
	}

	htmlFrag := strings.TrimSpace(resp.HTML)
	if !strings.HasPrefix(htmlFrag, "<iframe ") || !strings.HasSuffix(htmlFrag, "</iframe>") {
		return Player{}, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlFrag))
	if err != nil {
		return Player{}, false
	}
	iframes := doc.FindMatcher(selIframe)
	if iframes.Length() != 1 {
		return Player{}, false
	}
	iframe := iframes.First()

	src, ok := iframe.Attr("src")
	if !ok {
		return Player{}, false
	}
	srcURL, err := url.Parse(src)
	if err != nil || srcURL.Scheme != "https" {
		return Player{}, false
	}

	width := parseUintAttrOr(iframe, "width", resp.Width)
	height := parseUintAttrOr(iframe, "height", resp.Height)
	if height == nil {
		return Player{}, false
	}
	if *height > oembedHeightCap {
		capped := uint32(oembedHeightCap)
		height = &capped
	}

	allowAttr, _ := iframe.Attr("allow")
	allow := make([]string, 0)
	for _, tok := range strings.Split(allowAttr, ";") {
		tok = strings.TrimSpace(tok)
		if tok == "" || oembedIgnoredAllowTokens[tok] {
			continue
		}
		if !oembedAllowedTokens[tok] {
			return Player{}, false
		}
		allow = append(allow, tok)
	}

	return Player{URL: src, Width: width, Height: height, Allow: allow}, true
}

func parseUintAttrOr(sel *goquery.Selection, attr string, fallback *int) *uint32 {
	if v, ok := sel.Attr(attr); ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint32(n)
			return &u
		}
	}
	if fallback != nil && *fallback >= 0 {
		u := uint32(*fallback)
		return &u
	}
	return nil
}

// defaultPlayerAllow is used by the twitter-card/OG video fallback path,
// matching spec §4.10.
var defaultPlayerAllow = []string{"autoplay", "encrypted-media", "fullscreen"}

// playerFallback implements C10: when oEmbed did not yield a player,
// consider twitter:player (only for summary_large_image cards) then OG
// video selectors.
func playerFallback(doc *goquery.Document, src *url.URL, largeCard bool) (Player, bool) {
	var rawURL string
	var ok bool
	if largeCard {
		rawURL, ok = selectContentAttr(doc, selPlayerTwitter)
	}
	if !ok {
		rawURL, ok = selectContentAttr(doc, selPlayerOG)
	}
	if !ok || strings.TrimSpace(rawURL) == "" {
		return Player{}, false
	}
	abs, ok := resolveAbsoluteURL(src, rawURL)
	if !ok {
		return Player{}, false
	}
	if parsed, err := url.Parse(abs); err != nil || parsed.Scheme != "https" {
		return Player{}, false
	}

	p := Player{URL: abs, Allow: append([]string(nil), defaultPlayerAllow...)}
	if w, ok := selectContentAttr(doc, selPlayerWidth); ok {
		if n, err := strconv.ParseUint(strings.TrimSpace(w), 10, 32); err == nil {
			v := uint32(n)
			p.Width = &v
		}
	}
	if h, ok := selectContentAttr(doc, selPlayerHeight); ok {
		if n, err := strconv.ParseUint(strings.TrimSpace(h), 10, 32); err == nil {
			v := uint32(n)
			p.Height = &v
		}
	}
	return p, true
}
