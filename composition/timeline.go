package composition

// CaptionStyle is the fixed style of the per-word subtitles
var CaptionStyle = TextStyle{
	Font:        "Tahoma-Bold",
	FontSize:    90,
	Color:       "white",
	StrokeColor: "black",
	StrokeWidth: 5,
}

// CaptionPosition centers captions on the frame
var CaptionPosition = Position{X: Centered(), Y: Centered()}

// BuildTimeline turns word timings into one caption overlay per word.
//
// Output order and length match the input. Overlapping or zero-length timings
// are kept as they are: the renderer composites every caption independently,
// and timing quality is the transcriber's responsibility.
func BuildTimeline(words []WordTiming) []OverlayInstruction {
	out := make([]OverlayInstruction, 0, len(words))
	for _, w := range words {
		out = append(out, OverlayInstruction{
			Kind:        OverlaySubtitle,
			Text:        w.Text,
			StartOffset: w.Start,
			Duration:    w.End - w.Start,
			Position:    CaptionPosition,
			Style:       CaptionStyle,
		})
	}
	return out
}

// TimingAnomalies counts words whose timing is inverted or zero-length and
// places where start times go backwards. It is informational only.
func TimingAnomalies(words []WordTiming) (nonPositive, outOfOrder int) {
	for i, w := range words {
		if w.End <= w.Start {
			nonPositive++
		}
		if i > 0 && w.Start < words[i-1].Start {
			outOfOrder++
		}
	}
	return nonPositive, outOfOrder
}
