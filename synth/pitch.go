package synth

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StandardTuning is the frequency of A4.
const StandardTuning = 440.0

// Semitone offsets from C for each natural note name.
var noteOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// PitchToFreq converts a Midi note number to a frequency, given a specific tuning of A4.
func PitchToFreq(pitch int, tuning float64) float64 {
	return tuning * math.Pow(2, float64(pitch-69)/12)
}

// ParseNote parses scientific pitch notation ("C5", "F#4", "Bb3") into a Midi note number.
func ParseNote(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid note %q", s)
	}

	offset, ok := noteOffsets[byte(strings.ToUpper(s[:1])[0])]
	if !ok {
		return 0, fmt.Errorf("invalid note name in %q", s)
	}

	rest := s[1:]
	switch rest[0] {
	case '#':
		offset++
		rest = rest[1:]
	case 'b':
		offset--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note %q: %w", s, err)
	}

	// Midi note 60 is C4.
	pitch := (octave+1)*12 + offset
	if pitch < 0 || pitch > 127 {
		return 0, fmt.Errorf("note %q is outside the Midi range", s)
	}
	return pitch, nil
}

// NoteFreq parses a note name and returns its frequency in the given tuning.
func NoteFreq(s string, tuning float64) (float64, error) {
	pitch, err := ParseNote(s)
	if err != nil {
		return 0, err
	}
	return PitchToFreq(pitch, tuning), nil
}
