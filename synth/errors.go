package synth

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidParameter is returned when a generator is given a parameter it cannot synthesize,
// such as a non-positive frequency or duration. It is always returned before any samples are produced.
var ErrInvalidParameter = errors.New("invalid parameter")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func checkFrequency(name string, freq float64) error {
	if !(freq > 0) {
		return invalidf("%s must be > 0 Hz, got %v", name, freq)
	}
	return nil
}

func checkDuration(d time.Duration) error {
	if d <= 0 {
		return invalidf("duration must be > 0, got %v", d)
	}
	return nil
}

func checkSampleRate(sampleRate int) error {
	if sampleRate <= 0 {
		return invalidf("sample rate must be > 0, got %d", sampleRate)
	}
	return nil
}

// clampVolume keeps volume within [0, 1]. Out of range volumes are not an error.
func clampVolume(v float64) float64 {
	if v != v { // NaN
		return 0
	}
	return min(max(v, 0), 1)
}
