package composition

import (
	"errors"
	"strings"
)

// fixedSource always draws v, clamped to the requested range
type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

// perWord measures 100px for every word in the text
var perWord = MeasureFunc(func(text string, _ FontRef) (int, error) {
	return 100 * len(strings.Fields(text)), nil
})

// perRune measures 10px per character, spaces included
var perRune = MeasureFunc(func(text string, _ FontRef) (int, error) {
	return 10 * len([]rune(text)), nil
})

var errBackend = errors.New("font backend unavailable")

var failing = MeasureFunc(func(string, FontRef) (int, error) {
	return 0, errBackend
})
