package synth

import (
	"fmt"
	"math"
	"time"
)

// Design defaults for exponential decay.
const (
	DecayMusical    = 3.0 // sweeps and tonal effects
	DecayPercussive = 8.0 // noise bursts
)

// BeepFade is the fade length applied to both ends of a beep.
const BeepFade = 10 * time.Millisecond

type EnvelopeKind int

const (
	EnvelopeNone             EnvelopeKind = iota // Constant gain of 1.
	EnvelopeLinearFade                           // Linear fade in and out over Fade at each edge.
	EnvelopeExponentialDecay                     // exp(-Rate * t/duration) over the whole buffer.
)

func (k EnvelopeKind) isValid() bool {
	switch k {
	case EnvelopeNone, EnvelopeLinearFade, EnvelopeExponentialDecay:
		return true
	default:
		return false
	}
}

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeNone:
		return "none"
	case EnvelopeLinearFade:
		return "fade"
	case EnvelopeExponentialDecay:
		return "decay"
	default:
		return fmt.Sprintf("EnvelopeKind(%d)", int(k))
	}
}

// An amplitude curve applied to a whole buffer. Only the fields relevant to Kind are used.
type Envelope struct {
	Kind EnvelopeKind
	Fade time.Duration // For EnvelopeLinearFade: length of each edge ramp.
	Rate float64       // For EnvelopeExponentialDecay: decay rate over the buffer.
}

// LinearFade returns a fade-in/fade-out envelope with edges of length fade.
func LinearFade(fade time.Duration) Envelope {
	return Envelope{Kind: EnvelopeLinearFade, Fade: fade}
}

// ExponentialDecay returns an envelope falling from 1 to exp(-rate).
func ExponentialDecay(rate float64) Envelope {
	return Envelope{Kind: EnvelopeExponentialDecay, Rate: rate}
}

// Validate reports a malformed envelope request.
func (e Envelope) Validate() error {
	if !e.Kind.isValid() {
		return invalidf("unknown envelope kind %d", int(e.Kind))
	}
	switch e.Kind {
	case EnvelopeLinearFade:
		if e.Fade < 0 {
			return invalidf("fade must be >= 0, got %v", e.Fade)
		}
	case EnvelopeExponentialDecay:
		if e.Rate < 0 || math.IsNaN(e.Rate) || math.IsInf(e.Rate, 0) {
			return invalidf("decay rate must be a finite value >= 0, got %v", e.Rate)
		}
	}
	return nil
}

// FadeSamples converts the fade length to whole samples (truncating).
func (e Envelope) FadeSamples(sampleRate int) int {
	return int(float64(sampleRate) * e.Fade.Seconds())
}

// Gain returns the envelope gain for sample i of a buffer of n samples.
func (e Envelope) Gain(i, n, sampleRate int) float64 {
	switch e.Kind {
	case EnvelopeLinearFade:
		return fadeGain(i, n, e.FadeSamples(sampleRate))
	case EnvelopeExponentialDecay:
		return decayGain(i, n, e.Rate)
	default:
		return 1
	}
}

// Apply returns a shaped copy of buf.
func (e Envelope) Apply(buf Buffer) Buffer {
	switch e.Kind {
	case EnvelopeLinearFade:
		return ApplyLinearFade(buf, e.FadeSamples(buf.SampleRate))
	case EnvelopeExponentialDecay:
		return ApplyExponentialDecay(buf, e.Rate)
	default:
		return buf.Clone()
	}
}

func (e Envelope) String() string {
	switch e.Kind {
	case EnvelopeLinearFade:
		return fmt.Sprintf("fade %v", e.Fade)
	case EnvelopeExponentialDecay:
		return fmt.Sprintf("decay %g", e.Rate)
	default:
		return e.Kind.String()
	}
}

// ramp returns the k-th of count evenly spaced points from 0 to 1 inclusive.
func ramp(k, count int) float64 {
	if count <= 1 {
		return 0
	}
	return float64(k) / float64(count-1)
}

func fadeGain(i, n, fade int) float64 {
	if fade <= 0 || fade*2 >= n {
		return 1
	}
	switch {
	case i < fade:
		return ramp(i, fade)
	case i >= n-fade:
		return ramp(n-1-i, fade)
	default:
		return 1
	}
}

func decayGain(i, n int, rate float64) float64 {
	if n <= 1 {
		return 1
	}
	return math.Exp(-rate * float64(i) / float64(n-1))
}

// ApplyLinearFade ramps the first fadeSamples samples from 0 to 1 and the last fadeSamples from 1 to 0.
// Buffers too short to hold both ramps (fadeSamples*2 >= length) are returned unshaped.
func ApplyLinearFade(buf Buffer, fadeSamples int) Buffer {
	out := buf.Clone()
	n := out.Len()
	if fadeSamples <= 0 || fadeSamples*2 >= n {
		return out
	}
	for k := 0; k < fadeSamples; k++ {
		g := ramp(k, fadeSamples)
		out.Samples[k] *= g
		out.Samples[n-1-k] *= g
	}
	return out
}

// ApplyExponentialDecay multiplies the buffer by exp(-rate * t/duration), where t runs from 0 at the
// first sample to duration at the last.
func ApplyExponentialDecay(buf Buffer, rate float64) Buffer {
	out := buf.Clone()
	n := out.Len()
	for i := range out.Samples {
		out.Samples[i] *= decayGain(i, n, rate)
	}
	return out
}
