package catalog

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/QEStudios/ChiptuneSFX/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsComplete(t *testing.T) {
	all := All()
	require.Len(t, all, 24)

	seenIDs := map[string]bool{}
	seenFiles := map[string]bool{}
	for _, e := range all {
		assert.False(t, seenIDs[e.ID], "duplicate id %s", e.ID)
		assert.False(t, seenFiles[e.Filename], "duplicate file %s", e.Filename)
		seenIDs[e.ID] = true
		seenFiles[e.Filename] = true

		assert.Equal(t, ".wav", filepath.Ext(e.Filename))
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Group)
	}
}

func TestEveryEntryRenders(t *testing.T) {
	for _, e := range All() {
		t.Run(e.ID, func(t *testing.T) {
			buf, err := e.Sound.Render(synth.NewRenderer(synth.DefaultSampleRate, 1))
			require.NoError(t, err)
			assert.Equal(t, synth.SampleCount(e.Sound.Length(), synth.DefaultSampleRate), buf.Len())
			assert.LessOrEqual(t, buf.Peak(), 1.0, "catalog never clips")
			assert.Greater(t, buf.Peak(), 0.0)
		})
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("line_clear_single")
	require.True(t, ok)
	assert.Equal(t, "line_clear_single.wav", e.Filename)

	buf, err := e.Sound.Render(synth.NewRenderer(44100, 0))
	require.NoError(t, err)
	assert.Equal(t, 7056, buf.Len())

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	custom := Entry{ID: "piece_move", Filename: "piece_move.wav", Sound: synth.Beep(1000, 20*time.Millisecond, 0.1)}
	extra := Entry{ID: "zap", Filename: "zap.wav", Sound: synth.Sweep(2000, 100, 100*time.Millisecond, 0.3)}

	merged := Merge(All(), []Entry{custom, extra})
	require.Len(t, merged, 25)
	assert.Equal(t, custom.Sound, merged[0].Sound)
	assert.Equal(t, "zap", merged[24].ID)

	orig, _ := Lookup("piece_move")
	assert.NotEqual(t, custom.Sound, orig.Sound, "the built-in catalog is not modified")
}

func TestEntryString(t *testing.T) {
	e, _ := Lookup("combo")
	assert.True(t, strings.HasPrefix(e.String(), "combo "))
	assert.True(t, strings.HasSuffix(e.String(), "(Combo)"))
}
