package composition

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxBaseNameLength caps the output file name, in characters
const MaxBaseNameLength = 100

const illegalPathChars = `\/*?:"<>|`

// NormalizeTitle makes sure the title ends in punctuation when force is set:
// a trailing period becomes a question mark, and a title without closing
// punctuation gets one appended.
func NormalizeTitle(title string, force bool) string {
	if !force {
		return title
	}
	if strings.HasSuffix(title, ".") {
		return strings.TrimSuffix(title, ".") + "?"
	}

	last, _ := utf8.DecodeLastRuneInString(title)
	if title == "" || isWordOrSpace(last) {
		return title + "?"
	}
	return title
}

func isWordOrSpace(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r)
}

// OutputBaseName derives a filesystem-safe file name (no extension) from a title
func OutputBaseName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalPathChars, r) {
			return -1
		}
		return r
	}, title)

	runes := []rune(name)
	if len(runes) > MaxBaseNameLength {
		name = string(runes[:MaxBaseNameLength])
		// back up to the last word boundary
		if i := strings.LastIndex(name, " "); i >= 0 {
			name = name[:i]
		}
	}
	return strings.TrimRightFunc(name, unicode.IsSpace)
}
