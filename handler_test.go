package nokogiri

import "testing"

func TestNormalizeLang(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantOK  bool
	}{
		{"", "", true},
		{"en-US", "en-US", true},
		{"ja-JP", "ja-JP", true},
		{"ja-KS", "ja-JP", true},
		{"JA-ks", "ja-JP", true},
		{"en", "", false},
		{"english-US", "", false},
		{"en-US-extra", "", false},
	}
	for _, c := range cases {
		got, ok := normalizeLang(c.in)
		if ok != c.wantOK || got != c.want {
			t.Errorf("normalizeLang(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOK)
		}
	}
}

func TestActiveHandlersOrderAndFilter(t *testing.T) {
	all := activeHandlers(nil)
	wantOrder := []string{
		"wikipedia", "youtube", "skeb", "twitter", "spotify",
		"branchio", "amazon", "reddit", "general",
	}
	if len(all) != len(wantOrder) {
		t.Fatalf("got %d handlers, want %d", len(all), len(wantOrder))
	}
	for i, h := range all {
		if h.ID() != wantOrder[i] {
			t.Errorf("handler[%d] = %q, want %q", i, h.ID(), wantOrder[i])
		}
	}

	filtered := activeHandlers([]string{"youtube", "amazon"})
	for _, h := range filtered {
		if h.ID() == "youtube" || h.ID() == "amazon" {
			t.Errorf("disabled handler %q was not filtered out", h.ID())
		}
	}
	if len(filtered) != len(wantOrder)-2 {
		t.Errorf("got %d handlers after disabling 2, want %d", len(filtered), len(wantOrder)-2)
	}

	// general must always survive and remain the last handler, since it is
	// the dispatcher's unconditional terminator.
	if filtered[len(filtered)-1].ID() != "general" {
		t.Error("general handler must remain last after filtering")
	}
}
