package synth

import "time"

// Concat joins buffers end to end in order. No cross-fading is done at the joins;
// each segment is expected to carry its own envelope. All buffers must share a sample rate.
func Concat(bufs ...Buffer) (Buffer, error) {
	if len(bufs) == 0 {
		return Buffer{}, nil
	}

	sampleRate := bufs[0].SampleRate
	total := 0
	for i, b := range bufs {
		if b.SampleRate != sampleRate {
			return Buffer{}, invalidf("segment %d has sample rate %d, expected %d", i, b.SampleRate, sampleRate)
		}
		total += b.Len()
	}

	out := Buffer{
		Samples:    make([]float64, 0, total),
		SampleRate: sampleRate,
	}
	for _, b := range bufs {
		out.Samples = append(out.Samples, b.Samples...)
	}
	return out, nil
}

// Silence returns an all-zero buffer of duration d. A zero duration gives an empty buffer.
func Silence(d time.Duration, sampleRate int) (Buffer, error) {
	if d < 0 {
		return Buffer{}, invalidf("silence duration must be >= 0, got %v", d)
	}
	if err := checkSampleRate(sampleRate); err != nil {
		return Buffer{}, err
	}
	return NewBuffer(SampleCount(d, sampleRate), sampleRate), nil
}
