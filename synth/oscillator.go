package synth

import (
	"math"
	"time"
)

// square returns the sign of sin(2*pi*phase): 1, -1, or 0 on a zero crossing.
func square(phase float64) float64 {
	s := math.Sin(2 * math.Pi * phase)
	switch {
	case s > 0:
		return 1
	case s < 0:
		return -1
	default:
		return 0
	}
}

// GenerateTone produces a fixed-frequency square wave. Sample i sits at t = i/sampleRate and
// has the value volume * sign(sin(2*pi*freq*t)). The output is not band-limited.
func GenerateTone(freq float64, d time.Duration, sampleRate int, volume float64) (Buffer, error) {
	if err := checkFrequency("frequency", freq); err != nil {
		return Buffer{}, err
	}
	if err := checkDuration(d); err != nil {
		return Buffer{}, err
	}
	if err := checkSampleRate(sampleRate); err != nil {
		return Buffer{}, err
	}
	volume = clampVolume(volume)

	buf := NewBuffer(SampleCount(d, sampleRate), sampleRate)
	for i := range buf.Samples {
		t := float64(i) / float64(sampleRate)
		buf.Samples[i] = volume * square(freq*t)
	}
	return buf, nil
}

// GenerateSweep produces a square wave whose frequency moves linearly from start (first sample)
// to end (last sample). The phase is accumulated sample by sample from the instantaneous
// frequency, so the waveform never jumps when the frequency changes.
func GenerateSweep(start, end float64, d time.Duration, sampleRate int, volume float64) (Buffer, error) {
	if err := checkFrequency("start frequency", start); err != nil {
		return Buffer{}, err
	}
	if err := checkFrequency("end frequency", end); err != nil {
		return Buffer{}, err
	}
	if err := checkDuration(d); err != nil {
		return Buffer{}, err
	}
	if err := checkSampleRate(sampleRate); err != nil {
		return Buffer{}, err
	}
	volume = clampVolume(volume)

	buf := NewBuffer(SampleCount(d, sampleRate), sampleRate)
	n := buf.Len()
	phase := 0.0 // in cycles, kept within [0, 1)
	for i := range buf.Samples {
		freq := start
		if n > 1 {
			freq += (end - start) * float64(i) / float64(n-1)
		}
		_, phase = math.Modf(phase + freq/float64(sampleRate))
		buf.Samples[i] = volume * square(phase)
	}
	return buf, nil
}
