package validate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/QEStudios/ChiptuneSFX/pcm"
	"github.com/QEStudios/ChiptuneSFX/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBeep(t *testing.T, path string) {
	t.Helper()
	buf, err := synth.GenerateTone(440, 100*time.Millisecond, 44100, 0.2)
	require.NoError(t, err)
	_, err = pcm.WriteFile(path, buf)
	require.NoError(t, err)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeBeep(t, filepath.Join(dir, "ok.wav"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("RIFF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.mp3"), []byte("not checked"), 0o644))

	report := Check(dir, []string{"ok.wav", "missing.wav", "broken.wav", "theme.mp3"})
	require.Len(t, report.Files, 4)

	ok := report.Files[0]
	assert.True(t, ok.OK())
	assert.EqualValues(t, 44+2*4410, ok.Size)
	assert.Equal(t, 100*time.Millisecond, ok.Duration)

	missing := report.Files[1]
	assert.False(t, missing.Exists)
	assert.ErrorIs(t, missing.Err, os.ErrNotExist)

	broken := report.Files[2]
	assert.True(t, broken.Exists)
	assert.ErrorIs(t, broken.Err, pcm.ErrInvalidWAV)

	assert.True(t, report.Files[3].OK(), "non-WAV files only need to exist")

	assert.Equal(t, 2, report.Found())
	assert.Equal(t, []string{"missing.wav", "broken.wav"}, report.Missing())
	assert.False(t, report.OK())

	s := report.String()
	assert.Contains(t, s, "missing.wav")
	assert.Contains(t, s, "2/4 files present, 2 files missing or invalid")
}

func TestCheckAllPresent(t *testing.T) {
	dir := t.TempDir()
	writeBeep(t, filepath.Join(dir, "a.wav"))
	writeBeep(t, filepath.Join(dir, "b.wav"))

	report := Check(dir, []string{"a.wav", "b.wav"})
	assert.True(t, report.OK())
	assert.Empty(t, report.Missing())
	assert.Contains(t, report.String(), "2/2 files present")
}

func TestCheckEmptyList(t *testing.T) {
	report := Check(t.TempDir(), nil)
	assert.True(t, report.OK())
	assert.Equal(t, 0, report.Found())
}
