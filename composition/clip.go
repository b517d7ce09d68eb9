package composition

import (
	"math"
	"math/rand"
	"sync"
)

// ClipPadSeconds is added to the narration length when cutting the background,
// so the last frame of audio is never truncated at the clip boundary. The end
// of the window is clamped to the background's duration.
const ClipPadSeconds = 1.0

// RandomSource draws integers uniformly from [0, n)
type RandomSource interface {
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a RandomSource seeded with seed that is safe for
// concurrent use
func NewRandomSource(seed int64) RandomSource {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// ClipSelector picks a random window of the background video that covers the narration
type ClipSelector struct {
	rng RandomSource
}

// NewClipSelector creates a selector drawing start offsets from rng
func NewClipSelector(rng RandomSource) *ClipSelector {
	return &ClipSelector{rng: rng}
}

// Select returns a window of roughly audioDuration seconds starting at a random
// whole second of the background video
func (s *ClipSelector) Select(videoDuration, audioDuration float64) (ClipWindow, error) {
	if !validDuration(videoDuration) || !validDuration(audioDuration) || videoDuration < audioDuration {
		return ClipWindow{}, &InvalidDurationError{VideoDuration: videoDuration, AudioDuration: audioDuration}
	}

	maxStart := int(math.Floor(videoDuration - audioDuration))
	start := float64(s.rng.Intn(maxStart + 1))
	end := math.Min(start+audioDuration+ClipPadSeconds, videoDuration)
	// rounding in the sum can leave the window a hair longer than the pad allows
	for end-start > audioDuration+ClipPadSeconds {
		end = math.Nextafter(end, start)
	}

	return ClipWindow{Start: start, End: end}, nil
}

func validDuration(d float64) bool {
	return d >= 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}
