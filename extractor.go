package nokogiri

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/sync/errgroup"
)

var errNoTitle = errors.New("nokogiri: no title")

// extractOverrides lets a per-site handler replace individual pieces of the
// generic extraction, mirroring how original_source/src/core/summary/summarize.rs's
// SummarizeHandler trait is implemented per-site on top of a shared
// GenericSummarizeHandler default (e.g. spotify.rs forces sitename/player,
// amazon.rs forces icon/icon_exists/sensitive/large_card).
type extractOverrides struct {
	forceIcon        *string // nil = use generic favicon resolution
	forceIconExists  bool    // skip the HEAD probe, treat forceIcon as existing
	forceSitename    *string
	forcePlayerNone  bool
	forceLargeCard   *bool
	forceSensitive   func(*goquery.Document) *bool
	skipOembedPlayer bool
}

// genericExtract implements C8: given a parsed document and its source URL,
// produce a Summary by walking the selector catalog in the orders from
// §4.1. Title absence is a hard failure; everything else degrades to zero
// values. opts carries the UA the page itself was fetched with, reused for
// the favicon HEAD probe.
func genericExtract(ctx context.Context, doc *goquery.Document, src *url.URL, opts RequestOptions) (Summary, error) {
	return genericExtractWith(ctx, doc, src, opts, extractOverrides{})
}

func genericExtractWith(ctx context.Context, doc *goquery.Document, src *url.URL, opts RequestOptions, ov extractOverrides) (Summary, error) {
	title, ok := selectContentAttr(doc, selTitle)
	if !ok {
		title, ok = selectTitleText(doc)
	}
	if !ok || strings.TrimSpace(title) == "" {
		return Summary{}, errNoTitle
	}
	title = textClamp(title)

	description, _ := selectContentAttr(doc, selDescription)
	description = textClamp(description)

	sitename, _ := selectContentAttr(doc, selSitename)
	sitename = textClamp(sitename)

	largeCard := isLargeCard(doc)

	var thumbnail string
	if raw, ok := selectContentAttr(doc, selThumbnail); ok {
		if abs, ok := resolveAbsoluteURL(src, raw); ok {
			thumbnail = abs
		}
	} else if raw, ok := selectHrefAttr(doc, selThumbnailLink); ok {
		if abs, ok := resolveAbsoluteURL(src, raw); ok {
			thumbnail = abs
		}
	}

	var (
		iconCandidate   string
		oembedCandidate string
		haveOembedLink  bool
	)
	if ov.forceIcon != nil {
		iconCandidate = *ov.forceIcon
	} else if raw, ok := selectHrefAttr(doc, selFavicon); ok {
		if abs, ok := resolveAbsoluteURL(src, raw); ok {
			iconCandidate = abs
		}
	} else if abs, ok := resolveAbsoluteURL(src, "/favicon.ico"); ok {
		iconCandidate = abs
	}
	if !ov.skipOembedPlayer {
		if raw, ok := selectHrefAttr(doc, selOembedLink); ok {
			if abs, ok := resolveAbsoluteURL(src, raw); ok {
				oembedCandidate = abs
				haveOembedLink = true
			}
		}
	}

	activityPub, _ := selectHrefAttr(doc, selActivityPub)
	fediverseCreator, _ := selectContentAttr(doc, selFediverseCreator)

	sensitive := detectSensitive(doc)

	// §4.8: favicon existence and oEmbed resolution run concurrently.
	var (
		iconExists  bool
		player      Player
		havePlayer  bool
	)
	g, gctx := errgroup.WithContext(ctx)
	if ov.forceIconExists {
		iconExists = iconCandidate != ""
	} else if iconCandidate != "" {
		g.Go(func() error {
			iconExists = urlExists(gctx, iconCandidate, opts)
			return nil
		})
	}
	if haveOembedLink {
		g.Go(func() error {
			if p, ok := resolveOEmbed(gctx, oembedCandidate); ok {
				player = p
				havePlayer = true
			}
			return nil
		})
	}
	_ = g.Wait() // sub-tasks never return errors; they degrade to zero values.

	icon := ""
	if iconCandidate != "" && iconExists {
		icon = iconCandidate
	}

	if ov.forcePlayerNone {
		havePlayer = true
		player = Player{Allow: []string{}}
	}
	if !havePlayer {
		if p, ok := playerFallback(doc, src, largeCard); ok {
			player = p
			havePlayer = true
		}
	}
	if !havePlayer {
		player = Player{Allow: []string{}}
	}

	if ov.forceSitename != nil {
		sitename = *ov.forceSitename
	}
	if ov.forceLargeCard != nil {
		largeCard = *ov.forceLargeCard
	}

	summary := Summary{
		Title:            title,
		Icon:             icon,
		Description:      description,
		Thumbnail:        thumbnail,
		Sitename:         sitename,
		Player:           player,
		URL:              src.String(),
		ActivityPub:      activityPub,
		FediverseCreator: fediverseCreator,
		LargeCard:        boolPtr(largeCard),
	}
	if ov.forceSensitive != nil {
		summary.Sensitive = ov.forceSensitive(doc)
	} else if sensitive != nil {
		summary.Sensitive = sensitive
	}
	return summary, nil
}

// isLargeCard reports whether twitter:card (name or property form) equals
// "summary_large_image".
func isLargeCard(doc *goquery.Document) bool {
	for _, s := range []cascadia.Sel{selTwitterCardName, selTwitterCardProperty} {
		sel := doc.FindMatcher(goquery.Single(s))
		if sel.Length() == 0 {
			continue
		}
		if v, ok := sel.Attr("content"); ok && v == "summary_large_image" {
			return true
		}
	}
	return false
}

// detectSensitive checks mixi:content_rating and the generic "rating" meta
// tag for an adult-content marker. A present-but-non-matching tag still
// yields an explicit false rather than being treated as absent.
func detectSensitive(doc *goquery.Document) *bool {
	if v, ok := attrOf(doc, selMixiContentRating, "content"); ok {
		b := v == "true" || v == "1"
		return &b
	}
	if v, ok := attrOf(doc, selRating, "content"); ok {
		x := strings.ToUpper(v)
		b := x == "ADULT" || x == "RTA-5042-1996-1400-1577-RTA"
		return &b
	}
	return nil
}

func attrOf(doc *goquery.Document, s cascadia.Sel, attr string) (string, bool) {
	sel := doc.FindMatcher(goquery.Single(s))
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr(attr)
}
