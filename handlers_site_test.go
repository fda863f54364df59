package nokogiri

import (
	"net/url"
	"testing"
)

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	return u
}

func TestWikipediaHandlerTest(t *testing.T) {
	h := wikipediaHandler{}
	if !h.Test(mustParseURL(t, "https://en.wikipedia.org/wiki/Go_(programming_language)")) {
		t.Error("expected en.wikipedia.org to match")
	}
	if h.Test(mustParseURL(t, "https://example.com/wiki/Go")) {
		t.Error("expected a non-wikipedia host to not match")
	}
}

func TestYoutubeHandlerTest(t *testing.T) {
	h := youtubeHandler{}
	cases := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"https://www.youtube-nocookie.com/embed/abc", true},
		{"https://example.com/watch?v=abc", false},
	}
	for _, c := range cases {
		if got := h.Test(mustParseURL(t, c.url)); got != c.want {
			t.Errorf("Test(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

func TestRedditHandlerTest(t *testing.T) {
	h := redditHandler{}
	if !h.Test(mustParseURL(t, "https://old.reddit.com/r/golang")) {
		t.Error("expected old.reddit.com to match")
	}
	if !h.Test(mustParseURL(t, "https://redd.it/abc123")) {
		t.Error("expected redd.it to match")
	}
	if h.Test(mustParseURL(t, "https://example.com/r/golang")) {
		t.Error("expected a non-reddit host to not match")
	}
}

func TestBranchioHandlerTest(t *testing.T) {
	h := branchioHandler{}
	if !h.Test(mustParseURL(t, "https://foo.app.link/xyz")) {
		t.Error("expected *.app.link to match")
	}
	if !h.Test(mustParseURL(t, "https://spotify.link/xyz")) {
		t.Error("expected spotify.link to match")
	}
	if h.Test(mustParseURL(t, "https://example.com/xyz")) {
		t.Error("expected an unrelated host to not match")
	}
}

func TestSpotifyHandlerTest(t *testing.T) {
	h := spotifyHandler{}
	if !h.Test(mustParseURL(t, "https://open.spotify.com/track/abc")) {
		t.Error("expected open.spotify.com to match")
	}
	if h.Test(mustParseURL(t, "https://spotify.com/track/abc")) {
		t.Error("expected bare spotify.com to not match (only open.spotify.com)")
	}
}

func TestAmazonHandlerTest(t *testing.T) {
	h := amazonHandler{}
	cases := []struct {
		url  string
		want bool
	}{
		{"https://www.amazon.com/dp/B000000000", true},
		{"https://amazon.co.jp/dp/B000000000", true},
		{"https://amzn.to/abc123", true},
		{"https://example.com/dp/B000000000", false},
	}
	for _, c := range cases {
		if got := h.Test(mustParseURL(t, c.url)); got != c.want {
			t.Errorf("Test(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

func TestTwitterHandlerTest(t *testing.T) {
	h := twitterHandler{}
	if !h.Test(mustParseURL(t, "https://twitter.com/golang/status/123456")) {
		t.Error("expected a twitter.com status URL to match")
	}
	if !h.Test(mustParseURL(t, "https://x.com/golang/status/123456")) {
		t.Error("expected an x.com status URL to match")
	}
	if h.Test(mustParseURL(t, "https://twitter.com/golang")) {
		t.Error("a profile URL (no /status/) must not match")
	}
}

func TestSkebHandlerTest(t *testing.T) {
	h := skebHandler{}
	if !h.Test(mustParseURL(t, "https://skeb.jp/@someone")) {
		t.Error("expected a user page to match")
	}
	if !h.Test(mustParseURL(t, "https://skeb.jp/@someone/works/123")) {
		t.Error("expected a work page to match")
	}
	if h.Test(mustParseURL(t, "https://example.com/@someone")) {
		t.Error("expected a non-skeb host to not match")
	}
}
