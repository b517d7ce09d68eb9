package composition

import "strings"

// FontRef names the font a piece of text is measured and rendered with
type FontRef struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

// Measurer reports the rendered width in pixels of text drawn in font
type Measurer interface {
	Measure(text string, font FontRef) (int, error)
}

// MeasureFunc adapts a plain function to the Measurer interface
type MeasureFunc func(text string, font FontRef) (int, error)

// Measure calls f(text, font)
func (f MeasureFunc) Measure(text string, font FontRef) (int, error) {
	return f(text, font)
}

// Wrap greedily fills lines with words from text so that no line is wider than
// maxWidth pixels. A word that is too wide on its own still gets its own line;
// words are never split.
func Wrap(text string, font FontRef, maxWidth int, m Measurer) (WrappedText, error) {
	words := strings.Fields(text)
	lines := make([]string, 0, 1)
	var line []string

	for _, word := range words {
		candidate := strings.Join(append(line, word), " ")
		width, err := m.Measure(candidate, font)
		if err != nil {
			return WrappedText{}, &MeasurementError{Text: candidate, Err: err}
		}

		if width > maxWidth && len(line) > 0 {
			lines = append(lines, strings.Join(line, " "))
			line = []string{word}
			continue
		}
		line = append(line, word)
	}

	lines = append(lines, strings.Join(line, " "))
	return WrappedText{Lines: lines, LineCount: len(lines)}, nil
}
