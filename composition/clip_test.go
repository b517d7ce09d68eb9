package composition

import (
	"errors"
	"math"
	"testing"
)

func TestSelectWindowValidity(t *testing.T) {
	cases := []struct {
		name  string
		video float64
		audio float64
	}{
		{"typical", 120, 30},
		{"equal lengths", 45.5, 45.5},
		{"fractional", 61.7, 60.2},
		{"silent narration", 10, 0},
		{"both empty", 0, 0},
		{"long background", 3600, 59.9},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sel := NewClipSelector(NewRandomSource(7))
			for i := 0; i < 200; i++ {
				w, err := sel.Select(c.video, c.audio)
				if err != nil {
					t.Fatalf("Select(%v, %v) error: %v", c.video, c.audio, err)
				}
				if w.Start < 0 {
					t.Fatalf("start %v < 0", w.Start)
				}
				if w.End > c.video {
					t.Fatalf("end %v > video duration %v", w.End, c.video)
				}
				if d := w.Duration(); d < c.audio || d > c.audio+ClipPadSeconds {
					t.Fatalf("window length %v not within [%v, %v]", d, c.audio, c.audio+ClipPadSeconds)
				}
				if w.Start != math.Floor(w.Start) {
					t.Fatalf("start %v is not a whole second", w.Start)
				}
			}
		})
	}
}

func TestSelectUsesInjectedSource(t *testing.T) {
	sel := NewClipSelector(fixedSource{v: 12})
	w, err := sel.Select(100, 20)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if w.Start != 12 || w.End != 33 {
		t.Fatalf("window = %+v; want {12 33}", w)
	}

	// the last possible start is clamped so the pad never runs past the video
	sel = NewClipSelector(fixedSource{v: 1000})
	w, err = sel.Select(100, 20)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if w.Start != 80 || w.End != 100 {
		t.Fatalf("window = %+v; want {80 100}", w)
	}
}

func TestSelectWindowNeverExceedsPad(t *testing.T) {
	cases := []struct {
		name  string
		start int
		video float64
		audio float64
	}{
		{"rounding up in the sum", 7, 3600, 59.9},
		{"tenths", 3, 100, 12.3},
		{"hundredths", 41, 500, 33.33},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, err := NewClipSelector(fixedSource{v: c.start}).Select(c.video, c.audio)
			if err != nil {
				t.Fatalf("Select error: %v", err)
			}
			if w.Start != float64(c.start) {
				t.Fatalf("start = %v; want %d", w.Start, c.start)
			}
			if d := w.Duration(); d > c.audio+ClipPadSeconds || d < c.audio {
				t.Fatalf("window length %v not within [%v, %v]", d, c.audio, c.audio+ClipPadSeconds)
			}
		})
	}
}

func TestSelectSameSeedSameWindows(t *testing.T) {
	a := NewClipSelector(NewRandomSource(42))
	b := NewClipSelector(NewRandomSource(42))
	for i := 0; i < 20; i++ {
		wa, _ := a.Select(300, 42)
		wb, _ := b.Select(300, 42)
		if wa != wb {
			t.Fatalf("draw %d: %+v != %+v", i, wa, wb)
		}
	}
}

func TestSelectInvalidDuration(t *testing.T) {
	cases := []struct {
		name  string
		video float64
		audio float64
	}{
		{"background shorter", 29.9, 30},
		{"empty background", 0, 0.5},
		{"negative audio", 10, -1},
		{"nan video", math.NaN(), 1},
	}

	sel := NewClipSelector(NewRandomSource(1))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := sel.Select(c.video, c.audio)
			if !errors.Is(err, ErrInvalidDuration) {
				t.Fatalf("Select(%v, %v) err = %v; want ErrInvalidDuration", c.video, c.audio, err)
			}
			var ide *InvalidDurationError
			if !errors.As(err, &ide) {
				t.Fatalf("error %T is not *InvalidDurationError", err)
			}
		})
	}

	// a failure does not poison later calls
	if _, err := sel.Select(60, 30); err != nil {
		t.Fatalf("Select after failure: %v", err)
	}
}
