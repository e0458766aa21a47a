package synth

import (
	"math/rand/v2"
	"time"
)

// RandSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateNoise produces uniform white noise in [-amplitude, amplitude).
// Unlike the oscillators this output depends on rng, so it is only reproducible for a seeded source.
func GenerateNoise(amplitude float64, d time.Duration, sampleRate int, rng RandSource) (Buffer, error) {
	if err := checkDuration(d); err != nil {
		return Buffer{}, err
	}
	if err := checkSampleRate(sampleRate); err != nil {
		return Buffer{}, err
	}
	if rng == nil {
		return Buffer{}, invalidf("noise needs a random source")
	}
	amplitude = clampVolume(amplitude)

	buf := NewBuffer(SampleCount(d, sampleRate), sampleRate)
	for i := range buf.Samples {
		buf.Samples[i] = amplitude * (2*rng.Float64() - 1)
	}
	return buf, nil
}
