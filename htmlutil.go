package nokogiri

import (
	"context"
	"html"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const textClampLimit = 300 // runes, matching original_source's text_clamp

// selectAttr walks a selectorSet in order and returns the first non-empty
// attr value found, mirroring original_source/src/core/summary/utility.rs's
// select_attr.
func selectAttr(doc *goquery.Document, set selectorSet, attr string) (string, bool) {
	for _, s := range set {
		sel := doc.FindMatcher(goquery.Single(s))
		if sel.Length() == 0 {
			continue
		}
		if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// selectContentAttr is the common case of selectAttr(set, "content").
func selectContentAttr(doc *goquery.Document, set selectorSet) (string, bool) {
	return selectAttr(doc, set, "content")
}

// selectHrefAttr is the common case of selectAttr(set, "href").
func selectHrefAttr(doc *goquery.Document, set selectorSet) (string, bool) {
	return selectAttr(doc, set, "href")
}

// selectTitleText returns the <title> element's text, used as a last-resort
// title source when no og/twitter meta tag is present.
func selectTitleText(doc *goquery.Document) (string, bool) {
	sel := doc.FindMatcher(goquery.Single(selTitleTag))
	if sel.Length() == 0 {
		return "", false
	}
	t := strings.TrimSpace(sel.Text())
	if t == "" {
		return "", false
	}
	return t, true
}

// textClamp decodes HTML entities then truncates to textClampLimit runes,
// matching the decode-then-clamp ordering spec §4.8 requires.
func textClamp(s string) string {
	return textClampN(s, textClampLimit)
}

// textClampN is textClamp with an explicit rune limit, used by handlers
// whose upstream API documents a different clamp width (e.g. wikipedia's
// title/extract fields).
func textClampN(s string, limit int) string {
	decoded := html.UnescapeString(s)
	if utf8.RuneCountInString(decoded) <= limit {
		return decoded
	}
	runes := []rune(decoded)
	return string(runes[:limit])
}

// resolveAbsoluteURL resolves href against base, matching
// original_source's resolve_absolute_url. A relative href with no scheme
// resolves against base's scheme+host.
func resolveAbsoluteURL(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

// urlExists issues a HEAD probe and reports whether it completed at all,
// matching original_source's url_exists_check (`.is_ok()`): any response,
// including a non-2xx status such as 404, counts as existing. Only a
// transport-level failure counts as non-existence.
func urlExists(ctx context.Context, target string, opts RequestOptions) bool {
	client := clientInstance()
	if client == nil {
		return false
	}
	resp, err := client.Head(ctx, target, opts)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return true
}
