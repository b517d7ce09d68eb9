package deduplication

import (
	"testing"

	"storyreel/types"
)

func TestNormalizeTitleAndURL(t *testing.T) {
	cases := []struct {
		name          string
		url           string
		title         string
		wantNormURL   string
		wantNormTitle string
	}{
		{"simple", "https://reddit.com/r/a/comments/x1/post", "Hello World", "https://reddit.com/r/a/comments/x1/post", "hello world"},
		{"www and trailing slash", "https://www.Reddit.com/r/a/comments/x1/post/", "  Hello   World  ", "https://reddit.com/r/a/comments/x1/post", "hello world"},
		{"tracking params", "https://www.reddit.com/r/a/comments/x1/?utm_source=share&share_id=abc#top", "T", "https://reddit.com/r/a/comments/x1", "t"},
		{"empty url", "", "Only Title", "", "only title"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := normalizeURL(c.url); got != c.wantNormURL {
				t.Fatalf("normalizeURL(%q) = %q; want %q", c.url, got, c.wantNormURL)
			}
			if got := normalizeTitle(c.title); got != c.wantNormTitle {
				t.Fatalf("normalizeTitle(%q) = %q; want %q", c.title, got, c.wantNormTitle)
			}
		})
	}
}

func TestPostKey(t *testing.T) {
	a := types.Post{URL: "https://www.reddit.com/r/a/comments/x1/post/?utm_medium=web", Title: "AITA  for this"}
	b := types.Post{URL: "https://reddit.com/r/a/comments/x1/post", Title: "aita for this"}
	c := types.Post{URL: "https://reddit.com/r/a/comments/x2/post", Title: "aita for this"}

	if PostKey(a) != PostKey(b) {
		t.Fatalf("equivalent posts should share a key")
	}
	if PostKey(a) == PostKey(c) {
		t.Fatalf("different posts should not share a key")
	}
	if len(PostKey(a)) != 64 {
		t.Fatalf("key length = %d; want 64", len(PostKey(a)))
	}
}
