package composition

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in    string
		force bool
		want  string
	}{
		{"Am I the jerk", true, "Am I the jerk?"},
		{"I ate the last slice.", true, "I ate the last slice?"},
		{"Was I wrong?", true, "Was I wrong?"},
		{"Seriously!", true, "Seriously!"},
		{"They said \"no\"", true, "They said \"no\""},
		{"ends in space ", true, "ends in space ?"},
		{"Café", true, "Café?"},
		{"", true, "?"},
		{"Leave me alone.", false, "Leave me alone."},
	}

	for _, c := range cases {
		if got := NormalizeTitle(c.in, c.force); got != c.want {
			t.Fatalf("NormalizeTitle(%q, %v) = %q; want %q", c.in, c.force, got, c.want)
		}
	}
}

func TestOutputBaseNameSafety(t *testing.T) {
	got := OutputBaseName(`A/B:C?"D<E>F|G*H`)
	if strings.ContainsAny(got, illegalPathChars) {
		t.Fatalf("OutputBaseName kept an illegal character: %q", got)
	}
	if got != "ABCDEFGH" {
		t.Fatalf("OutputBaseName = %q; want %q", got, "ABCDEFGH")
	}
	if got := OutputBaseName(`back\slash`); got != "backslash" {
		t.Fatalf("OutputBaseName = %q", got)
	}
}

func TestOutputBaseNameTruncation(t *testing.T) {
	title := strings.Repeat("word ", 30) // 150 characters
	got := OutputBaseName(title)

	if n := utf8.RuneCountInString(got); n > MaxBaseNameLength {
		t.Fatalf("len = %d; want <= %d", n, MaxBaseNameLength)
	}
	for _, w := range strings.Fields(got) {
		if w != "word" {
			t.Fatalf("name ends mid-word: %q", got)
		}
	}
	if strings.HasSuffix(got, " ") {
		t.Fatalf("name has trailing space: %q", got)
	}

	// a title with no spaces is cut at the limit
	long := strings.Repeat("x", 150)
	if got := OutputBaseName(long); utf8.RuneCountInString(got) != MaxBaseNameLength {
		t.Fatalf("len = %d; want %d", utf8.RuneCountInString(got), MaxBaseNameLength)
	}

	short := "Am I the jerk?"
	if got := OutputBaseName(short); got != "Am I the jerk" {
		t.Fatalf("OutputBaseName(%q) = %q", short, got)
	}
}
