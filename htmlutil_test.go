package nokogiri

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, htm string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htm))
	if err != nil {
		t.Fatalf("parsing test HTML: %v", err)
	}
	return doc
}

func TestSelectContentAttrFallsThroughSet(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta name="twitter:title" content="from twitter">
	</head></html>`)
	got, ok := selectContentAttr(doc, selTitle)
	if !ok || got != "from twitter" {
		t.Errorf("got (%q, %v), want (%q, true)", got, ok, "from twitter")
	}
}

func TestSelectContentAttrPrefersFirstMatch(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:title" content="og wins">
		<meta name="twitter:title" content="twitter loses">
	</head></html>`)
	got, ok := selectContentAttr(doc, selTitle)
	if !ok || got != "og wins" {
		t.Errorf("got (%q, %v), want (%q, true)", got, ok, "og wins")
	}
}

func TestSelectContentAttrMiss(t *testing.T) {
	doc := mustDoc(t, `<html><head></head></html>`)
	if _, ok := selectContentAttr(doc, selTitle); ok {
		t.Error("expected no match on empty document")
	}
}

func TestSelectTitleTextFallback(t *testing.T) {
	doc := mustDoc(t, `<html><head><title> Page Title </title></head></html>`)
	got, ok := selectTitleText(doc)
	if !ok || got != "Page Title" {
		t.Errorf("got (%q, %v), want (%q, true)", got, ok, "Page Title")
	}
}

func TestTextClampDecodesEntitiesBeforeTruncating(t *testing.T) {
	// "&amp;" decodes to one rune; a naive truncate-then-decode would cut mid-entity.
	in := strings.Repeat("a", 298) + "&amp;bc"
	got := textClampN(in, 300)
	want := strings.Repeat("a", 298) + "&b"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextClampNoopUnderLimit(t *testing.T) {
	if got := textClampN("short", 300); got != "short" {
		t.Errorf("got %q, want %q", got, "short")
	}
}

func TestResolveAbsoluteURL(t *testing.T) {
	base, _ := url.Parse("https://example.com/path/page.html")
	cases := []struct {
		href string
		want string
	}{
		{"/favicon.ico", "https://example.com/favicon.ico"},
		{"thumb.jpg", "https://example.com/path/thumb.jpg"},
		{"https://cdn.example.com/img.png", "https://cdn.example.com/img.png"},
		{"", ""},
	}
	for _, c := range cases {
		got, ok := resolveAbsoluteURL(base, c.href)
		if c.href == "" {
			if ok {
				t.Errorf("empty href should not resolve, got %q", got)
			}
			continue
		}
		if !ok || got != c.want {
			t.Errorf("resolveAbsoluteURL(%q) = (%q, %v), want (%q, true)", c.href, got, ok, c.want)
		}
	}
}
