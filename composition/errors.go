package composition

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDuration is matched by InvalidDurationError
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrMeasurement is matched by MeasurementError
	ErrMeasurement = errors.New("text measurement failed")
)

// InvalidDurationError reports a background video that cannot cover the narration
type InvalidDurationError struct {
	VideoDuration float64
	AudioDuration float64
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("background video (%.2fs) is shorter than narration audio (%.2fs)",
		e.VideoDuration, e.AudioDuration)
}

func (e *InvalidDurationError) Is(target error) bool {
	return target == ErrInvalidDuration
}

// MeasurementError wraps a failure of the injected text measurer
type MeasurementError struct {
	Text string
	Err  error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("failed to measure %q: %v", e.Text, e.Err)
}

func (e *MeasurementError) Unwrap() error { return e.Err }

func (e *MeasurementError) Is(target error) bool {
	return target == ErrMeasurement
}
