package nokogiri

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Handler is the C10 per-site handler contract: Test decides whether this
// handler owns the URL, Summarize produces the result (or none on failure).
type Handler interface {
	ID() string
	Test(u *url.URL) bool
	Summarize(ctx context.Context, args SummarizeArguments) (*SummaryResultWithMetadata, bool)
}

// activeHandlers returns the handlers in the exact sequence from spec §4.11,
// minus those whose ID is in disabled: first Test() to return true wins;
// general is the unconditional terminator.
func activeHandlers(disabled []string) []Handler {
	all := []Handler{
		wikipediaHandler{},
		youtubeHandler{},
		skebHandler{},
		twitterHandler{},
		spotifyHandler{},
		branchioHandler{},
		amazonHandler{},
		redditHandler{},
		generalHandler{},
	}
	skip := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		skip[id] = true
	}
	out := all[:0]
	for _, h := range all {
		if !skip[h.ID()] {
			out = append(out, h)
		}
	}
	return out
}

// normalizeLang validates args.lang using golang.org/x/text/language's BCP-47
// parser rather than a hand-rolled regex, applying the one documented
// irregular mapping (ja-KS -> ja-JP) before the parse. §4.12 narrows the
// general BCP-47 grammar (which allows language-only tags, scripts, and
// multiple variant/extension subtags) to exactly one language subtag and
// one region subtag; that component-count and length rule is nokogiri's own
// shape constraint, not something a generic tag parser enforces, so it's
// checked directly before handing the pair to language.Parse for the actual
// subtag validation and canonical casing.
func normalizeLang(lang string) (string, bool) {
	if lang == "" {
		return "", true
	}
	if strings.EqualFold(lang, "ja-KS") {
		lang = "ja-JP"
	}
	parts := strings.Split(lang, "-")
	if len(parts) != 2 {
		return "", false
	}
	for _, p := range parts {
		if len(p) < 2 || len(p) > 3 {
			return "", false
		}
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", false
	}
	return tag.String(), true
}

// Summarize implements the C11 dispatcher end to end: cache lookup,
// handler walk, cache store.
func Summarize(ctx context.Context, target *url.URL, rawLang, userAgent string) (*Summary, bool) {
	lang, ok := normalizeLang(rawLang)
	if !ok {
		Logger().Warn("invalid lang tag", "lang", rawLang)
		return nil, false
	}

	cache := cacheInstance()
	canonical := target.String()
	if cache != nil {
		if cached, ok := cache.getSummarizeCache(ctx, canonical, lang); ok {
			if cached == "null" {
				return nil, false
			}
			var s Summary
			if err := json.Unmarshal([]byte(cached), &s); err == nil {
				return &s, true
			}
		}
	}

	args := SummarizeArguments{URL: target, Lang: lang, UserAgent: userAgent}
	var result *SummaryResultWithMetadata
	for _, h := range activeHandlers(config().Plugins.Disabled) {
		if !h.Test(target) {
			continue
		}
		if r, ok := h.Summarize(ctx, args); ok {
			result = r
		}
		break
	}

	if result == nil {
		if cache != nil {
			cache.setSummarizeCache(ctx, canonical, lang, "null", cacheNegTTL)
		}
		return nil, false
	}

	if result.Summary.URL == "" {
		result.Summary.URL = canonical
	}
	if cache != nil {
		if b, err := json.Marshal(result.Summary); err == nil {
			cache.setSummarizeCache(ctx, canonical, lang, string(b), result.CacheTTL)
		}
	}
	return &result.Summary, true
}
