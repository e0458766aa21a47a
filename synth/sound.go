package synth

import (
	"fmt"
	"time"
)

type WaveKind int

const (
	WaveTone  WaveKind = iota // Fixed-frequency square wave.
	WaveSweep                 // Square wave sweeping from Frequency to EndFrequency.
	WaveNoise                 // Uniform white noise; Frequency is ignored.
)

func (k WaveKind) isValid() bool {
	switch k {
	case WaveTone, WaveSweep, WaveNoise:
		return true
	default:
		return false
	}
}

func (k WaveKind) String() string {
	switch k {
	case WaveTone:
		return "tone"
	case WaveSweep:
		return "sweep"
	case WaveNoise:
		return "noise"
	default:
		return fmt.Sprintf("WaveKind(%d)", int(k))
	}
}

// Renderer holds the per-request settings every generator needs.
// A Renderer is not safe for concurrent use when Rand is not; give each request its own.
type Renderer struct {
	SampleRate int
	Rand       RandSource // Only needed for noise.
}

// NewRenderer returns a renderer with a source seeded from seed.
func NewRenderer(sampleRate int, seed uint64) *Renderer {
	return &Renderer{
		SampleRate: sampleRate,
		Rand:       NewRand(seed),
	}
}

// A Sound is anything that renders to a single buffer.
type Sound interface {
	Render(r *Renderer) (Buffer, error)
	Length() time.Duration
}

// A single sound event. ToneSpecs are values and are never modified once built.
type ToneSpec struct {
	Kind         WaveKind
	Frequency    float64 // Hz. Start frequency for sweeps.
	EndFrequency float64 // Hz. Only used for sweeps.
	Duration     time.Duration
	Volume       float64 // 0..1, clamped. Peak amplitude for noise.
	Envelope     Envelope
}

// Validate checks the tone description without generating anything.
func (s ToneSpec) Validate() error {
	if !s.Kind.isValid() {
		return invalidf("unknown wave kind %d", int(s.Kind))
	}
	switch s.Kind {
	case WaveTone:
		if err := checkFrequency("frequency", s.Frequency); err != nil {
			return err
		}
	case WaveSweep:
		if err := checkFrequency("start frequency", s.Frequency); err != nil {
			return err
		}
		if err := checkFrequency("end frequency", s.EndFrequency); err != nil {
			return err
		}
	}
	if err := checkDuration(s.Duration); err != nil {
		return err
	}
	return s.Envelope.Validate()
}

// Render generates the raw waveform and applies the envelope.
func (s ToneSpec) Render(r *Renderer) (Buffer, error) {
	if r == nil {
		return Buffer{}, invalidf("nil renderer")
	}
	if err := s.Validate(); err != nil {
		return Buffer{}, err
	}

	var raw Buffer
	var err error
	switch s.Kind {
	case WaveTone:
		raw, err = GenerateTone(s.Frequency, s.Duration, r.SampleRate, s.Volume)
	case WaveSweep:
		raw, err = GenerateSweep(s.Frequency, s.EndFrequency, s.Duration, r.SampleRate, s.Volume)
	case WaveNoise:
		raw, err = GenerateNoise(s.Volume, s.Duration, r.SampleRate, r.Rand)
	}
	if err != nil {
		return Buffer{}, err
	}
	return s.Envelope.Apply(raw), nil
}

// Length returns the playing time of the tone.
func (s ToneSpec) Length() time.Duration {
	return s.Duration
}

func (s ToneSpec) frequencyLabel() string {
	switch s.Kind {
	case WaveSweep:
		return fmt.Sprintf("%g -> %g Hz", s.Frequency, s.EndFrequency)
	case WaveNoise:
		return "-"
	default:
		return fmt.Sprintf("%g Hz", s.Frequency)
	}
}

// One step of a composite: either a tone or, when Tone is nil, a silent gap.
type Part struct {
	Tone *ToneSpec
	Gap  time.Duration
}

// TonePart wraps a tone as a composite part.
func TonePart(t ToneSpec) Part {
	return Part{Tone: &t}
}

// GapPart returns a silent part of length d.
func GapPart(d time.Duration) Part {
	return Part{Gap: d}
}

// An ordered sequence of tones and gaps rendered back to back.
type CompositeSpec struct {
	Parts []Part
}

// Render renders every part in order and concatenates the results.
func (c CompositeSpec) Render(r *Renderer) (Buffer, error) {
	if r == nil {
		return Buffer{}, invalidf("nil renderer")
	}
	if len(c.Parts) == 0 {
		return Buffer{}, invalidf("composite has no parts")
	}

	// Validate everything before rendering anything.
	for i, p := range c.Parts {
		if p.Tone != nil {
			if err := p.Tone.Validate(); err != nil {
				return Buffer{}, fmt.Errorf("part %d: %w", i, err)
			}
		} else if p.Gap < 0 {
			return Buffer{}, fmt.Errorf("part %d: %w", i, invalidf("gap must be >= 0, got %v", p.Gap))
		}
	}

	segments := make([]Buffer, 0, len(c.Parts))
	for i, p := range c.Parts {
		var seg Buffer
		var err error
		if p.Tone != nil {
			seg, err = p.Tone.Render(r)
		} else {
			seg, err = Silence(p.Gap, r.SampleRate)
		}
		if err != nil {
			return Buffer{}, fmt.Errorf("part %d: %w", i, err)
		}
		segments = append(segments, seg)
	}
	return Concat(segments...)
}

// Length returns the sum of all part durations.
func (c CompositeSpec) Length() time.Duration {
	var total time.Duration
	for _, p := range c.Parts {
		if p.Tone != nil {
			total += p.Tone.Duration
		} else {
			total += p.Gap
		}
	}
	return total
}

// Beep is a square tone with a short linear fade at both ends.
func Beep(freq float64, d time.Duration, volume float64) ToneSpec {
	return ToneSpec{
		Kind:      WaveTone,
		Frequency: freq,
		Duration:  d,
		Volume:    volume,
		Envelope:  LinearFade(BeepFade),
	}
}

// Sweep is a square sweep from start to end with a musical exponential decay.
func Sweep(start, end float64, d time.Duration, volume float64) ToneSpec {
	return ToneSpec{
		Kind:         WaveSweep,
		Frequency:    start,
		EndFrequency: end,
		Duration:     d,
		Volume:       volume,
		Envelope:     ExponentialDecay(DecayMusical),
	}
}

// NoiseBurst is white noise with a percussive exponential decay.
func NoiseBurst(d time.Duration, amplitude float64) ToneSpec {
	return ToneSpec{
		Kind:     WaveNoise,
		Duration: d,
		Volume:   amplitude,
		Envelope: ExponentialDecay(DecayPercussive),
	}
}

// Arpeggio plays one beep per frequency, each lasting noteDuration.
func Arpeggio(freqs []float64, noteDuration time.Duration, volume float64) CompositeSpec {
	parts := make([]Part, 0, len(freqs))
	for _, f := range freqs {
		parts = append(parts, TonePart(Beep(f, noteDuration, volume)))
	}
	return CompositeSpec{Parts: parts}
}
