package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcat(t *testing.T) {
	a, err := GenerateTone(523, 80*time.Millisecond, 44100, 0.3)
	require.NoError(t, err)
	b, err := GenerateTone(659, 50*time.Millisecond, 44100, 0.3)
	require.NoError(t, err)

	out, err := Concat(a, b)
	require.NoError(t, err)

	assert.Equal(t, a.Len()+b.Len(), out.Len())
	assert.Equal(t, a.Samples, out.Samples[:a.Len()])
	assert.Equal(t, b.Samples, out.Samples[a.Len():])
	assert.Equal(t, 44100, out.SampleRate)
}

func TestConcatEdgeCases(t *testing.T) {
	empty, err := Concat()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	one := constantBuffer(3, 0.25)
	out, err := Concat(one)
	require.NoError(t, err)
	assert.Equal(t, one.Samples, out.Samples)

	out.Samples[0] = 1
	assert.Equal(t, 0.25, one.Samples[0], "result does not alias its inputs")

	_, err = Concat(NewBuffer(3, 44100), NewBuffer(3, 48000))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSilence(t *testing.T) {
	gap, err := Silence(50*time.Millisecond, 44100)
	require.NoError(t, err)
	assert.Equal(t, 2205, gap.Len())
	assert.Equal(t, 0.0, gap.Peak())

	zero, err := Silence(0, 44100)
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Len())

	_, err = Silence(-time.Millisecond, 44100)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Silence(time.Millisecond, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
