package rssfeeds

import "strings"

// abbreviations are spelled out so the speech synthesizer reads them letter by letter
var abbreviations = strings.NewReplacer(
	"AITA", "A.I.T.A",
	"TIFU", "T.I.F.U",
)

// SanitizeText expands abbreviations that TTS would otherwise mispronounce
func SanitizeText(text string) string {
	return abbreviations.Replace(text)
}
