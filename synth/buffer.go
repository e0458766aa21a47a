// Package synth generates and shapes the float sample buffers that make up a sound effect.
package synth

import (
	"fmt"
	"math"
	"time"
)

// DefaultSampleRate is the sample rate used when nothing else is configured.
// Generators never fall back to it; callers pass the rate explicitly.
const DefaultSampleRate = 44100

// A mono signal: a finite sequence of samples at a fixed sample rate.
// Samples are nominally in [-1, 1] but may exceed it before encoding.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// NewBuffer returns a silent buffer of n samples.
func NewBuffer(n int, sampleRate int) Buffer {
	return Buffer{
		Samples:    make([]float64, n),
		SampleRate: sampleRate,
	}
}

// SampleCount returns round(d * sampleRate), the number of samples needed to hold d.
func SampleCount(d time.Duration, sampleRate int) int {
	return int(math.Round(d.Seconds() * float64(sampleRate)))
}

// Len returns the number of samples in the buffer.
func (b Buffer) Len() int {
	return len(b.Samples)
}

// Duration returns the playing time of the buffer.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.SampleRate)
}

// Peak returns the largest absolute sample value.
func (b Buffer) Peak() float64 {
	peak := 0.0
	for _, s := range b.Samples {
		peak = max(peak, math.Abs(s))
	}
	return peak
}

// Clone returns a deep copy of the buffer.
func (b Buffer) Clone() Buffer {
	out := NewBuffer(len(b.Samples), b.SampleRate)
	copy(out.Samples, b.Samples)
	return out
}

func (b Buffer) String() string {
	return fmt.Sprintf("%d samples @ %d Hz (%v, peak %.3f)", b.Len(), b.SampleRate, b.Duration(), b.Peak())
}
