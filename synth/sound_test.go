package synth

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeepScenario(t *testing.T) {
	buf, err := Beep(800, 50*time.Millisecond, 0.2).Render(NewRenderer(44100, 0))
	require.NoError(t, err)

	assert.Equal(t, 2205, buf.Len())
	assert.InDelta(t, 0.2, buf.Peak(), 1e-12)
	assert.Equal(t, 0.0, buf.Samples[0])
	assert.Equal(t, 0.0, buf.Samples[2204])
}

func TestSweepScenario(t *testing.T) {
	spec := Sweep(500, 100, 150*time.Millisecond, 0.35)
	buf, err := spec.Render(NewRenderer(44100, 0))
	require.NoError(t, err)
	n := buf.Len()
	require.Equal(t, 6615, n)

	assert.Equal(t, 1.0, spec.Envelope.Gain(0, n, 44100))
	assert.InDelta(t, math.Exp(-3), spec.Envelope.Gain(n-1, n, 44100), 1e-12)

	prev := math.Inf(1)
	for i := range buf.Samples {
		g := spec.Envelope.Gain(i, n, 44100)
		require.Less(t, g, prev)
		prev = g
		require.LessOrEqual(t, math.Abs(buf.Samples[i]), 0.35*g+1e-12)
	}
}

func TestArpeggioScenario(t *testing.T) {
	r := NewRenderer(44100, 0)
	buf, err := Arpeggio([]float64{523, 659}, 80*time.Millisecond, 0.3).Render(r)
	require.NoError(t, err)

	assert.Equal(t, 7056, buf.Len())

	first, err := Beep(523, 80*time.Millisecond, 0.3).Render(r)
	require.NoError(t, err)
	second, err := Beep(659, 80*time.Millisecond, 0.3).Render(r)
	require.NoError(t, err)

	require.Equal(t, 3528, first.Len())
	assert.Equal(t, first.Samples, buf.Samples[:3528])
	assert.Equal(t, second.Samples, buf.Samples[3528:])
	assert.Equal(t, 0.0, buf.Samples[3528], "second note starts faded in")
}

func TestNoiseBurstWithinEnvelope(t *testing.T) {
	spec := NoiseBurst(300*time.Millisecond, 0.4)
	for seed := uint64(0); seed < 5; seed++ {
		buf, err := spec.Render(NewRenderer(44100, seed))
		require.NoError(t, err)
		n := buf.Len()
		require.Equal(t, 13230, n)

		for i, s := range buf.Samples {
			limit := 0.4 * spec.Envelope.Gain(i, n, 44100)
			if math.Abs(s) > limit+1e-12 {
				t.Fatalf("seed %d: sample %d = %v exceeds envelope %v", seed, i, s, limit)
			}
		}
		assert.Greater(t, buf.Peak(), 0.3, "seed %d: burst starts loud", seed)
	}
}

func TestWarningPatternWithGap(t *testing.T) {
	warning := CompositeSpec{Parts: []Part{
		TonePart(Beep(880, 100*time.Millisecond, 0.25)),
		GapPart(50 * time.Millisecond),
		TonePart(Beep(880, 100*time.Millisecond, 0.25)),
	}}
	assert.Equal(t, 250*time.Millisecond, warning.Length())

	buf, err := warning.Render(NewRenderer(44100, 0))
	require.NoError(t, err)
	assert.Equal(t, 4410+2205+4410, buf.Len())
	for i := 4410; i < 4410+2205; i++ {
		require.Equal(t, 0.0, buf.Samples[i])
	}
}

func TestCompositeFailsBeforeRendering(t *testing.T) {
	bad := CompositeSpec{Parts: []Part{
		TonePart(Beep(440, 50*time.Millisecond, 0.3)),
		TonePart(Beep(-1, 50*time.Millisecond, 0.3)),
	}}
	_, err := bad.Render(NewRenderer(44100, 0))
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Contains(t, err.Error(), "part 1")

	_, err = CompositeSpec{}.Render(NewRenderer(44100, 0))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = CompositeSpec{Parts: []Part{GapPart(-time.Second)}}.Render(NewRenderer(44100, 0))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestToneSpecValidate(t *testing.T) {
	assert.NoError(t, Beep(440, time.Second, 0.3).Validate())
	assert.NoError(t, NoiseBurst(time.Second, 0.4).Validate(), "noise ignores frequency")

	assert.ErrorIs(t, ToneSpec{Kind: WaveKind(9), Frequency: 1, Duration: time.Second}.Validate(), ErrInvalidParameter)
	assert.ErrorIs(t, Sweep(440, 0, time.Second, 0.3).Validate(), ErrInvalidParameter)
	assert.ErrorIs(t, Beep(440, 0, 0.3).Validate(), ErrInvalidParameter)

	_, err := Beep(440, time.Second, 0.3).Render(nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCompositeString(t *testing.T) {
	out := CompositeSpec{Parts: []Part{
		TonePart(Beep(880, 100*time.Millisecond, 0.25)),
		GapPart(50 * time.Millisecond),
		TonePart(Sweep(400, 800, 120*time.Millisecond, 0.2)),
	}}.String()

	assert.Contains(t, out, "| Wave")
	assert.Contains(t, out, "880 Hz")
	assert.Contains(t, out, "gap")
	assert.Contains(t, out, "400 -> 800 Hz")
	assert.Contains(t, out, "decay 3")
	assert.Contains(t, out, "[Total length: 270ms in 3 parts]")
}

func TestPitch(t *testing.T) {
	cases := map[string]int{
		"C4": 60, "A4": 69, "C5": 72, "E5": 76, "F#4": 66, "Bb3": 58, "c5": 72, "C-1": 0,
	}
	for note, want := range cases {
		got, err := ParseNote(note)
		require.NoError(t, err, note)
		assert.Equal(t, want, got, note)
	}

	for _, bad := range []string{"", "H4", "C", "Cx", "G9x", "G10"} {
		_, err := ParseNote(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, 440.0, PitchToFreq(69, StandardTuning))
	c5, err := NoteFreq("C5", StandardTuning)
	require.NoError(t, err)
	assert.InDelta(t, 523.25, c5, 0.01)
}
