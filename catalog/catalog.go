// Package catalog holds the fixed set of procedural sound effects shipped with the game.
package catalog

import (
	"fmt"
	"time"

	"github.com/QEStudios/ChiptuneSFX/synth"
)

// A single sound effect and where it is written.
type Entry struct {
	ID       string
	Name     string
	Group    string // Used to group entries when listing.
	Filename string
	Sound    synth.Sound
}

// C major scale notes used by the arpeggios, rounded to whole Hz.
const (
	c4 = 262
	f4 = 349
	a4 = 440
	c5 = 523
	e5 = 659
	g5 = 784
	a5 = 880
	b5 = 988
	c6 = 1047
	e6 = 1319
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func entry(group, id, name string, sound synth.Sound) Entry {
	return Entry{
		ID:       id,
		Name:     name,
		Group:    group,
		Filename: id + ".wav",
		Sound:    sound,
	}
}

func arp(volume float64, noteMs int, freqs ...float64) synth.CompositeSpec {
	return synth.Arpeggio(freqs, ms(noteMs), volume)
}

var entries = []Entry{
	// Short, crisp movement sounds.
	entry("Movement", "piece_move", "Piece Move", synth.Beep(800, ms(50), 0.2)),
	entry("Movement", "piece_rotate", "Piece Rotate", synth.Sweep(600, 900, ms(80), 0.25)),
	entry("Movement", "soft_drop", "Soft Drop", synth.Beep(400, ms(40), 0.15)),
	entry("Movement", "hard_drop", "Hard Drop", synth.Sweep(500, 100, ms(150), 0.35)),

	// Ascending arpeggios.
	entry("Line clear", "line_clear_single", "Line Clear (Single)", arp(0.3, 80, c5, e5)),
	entry("Line clear", "line_clear_double", "Line Clear (Double)", arp(0.3, 80, c5, e5, g5)),
	entry("Line clear", "line_clear_triple", "Line Clear (Triple)", arp(0.3, 80, c5, e5, g5, b5)),
	entry("Line clear", "line_clear_tetris", "Line Clear (Tetris)", arp(0.35, 100, c5, e5, g5, b5, c6)),

	entry("Rewards", "combo", "Combo", arp(0.25, 60, a5, c6, e6)),
	entry("Rewards", "star_earned", "Star Earned", arp(0.2, 50, c6, e6)),

	entry("Abilities", "ability_buff_activate", "Buff Activated", synth.Sweep(400, 1200, ms(250), 0.3)),
	entry("Abilities", "ability_debuff_activate", "Debuff Activated", synth.Sweep(1000, 200, ms(250), 0.3)),
	entry("Abilities", "ability_ultra_activate", "Ultra Activated", synth.Sweep(200, 1500, ms(400), 0.35)),
	entry("Abilities", "ability_ready", "Ability Ready", synth.Beep(880, ms(100), 0.2)),
	entry("Abilities", "ability_bomb_explode", "Bomb Explosion", synth.NoiseBurst(ms(300), 0.4)),

	entry("UI", "button_click", "Button Click", synth.Beep(1200, ms(30), 0.15)),
	entry("UI", "button_hover", "Button Hover", synth.Beep(1000, ms(20), 0.1)),
	entry("UI", "countdown_beep", "Countdown Beep", synth.Beep(880, ms(150), 0.25)),
	entry("UI", "countdown_go", "Countdown Go", arp(0.3, 80, e5, a5, c6)),
	entry("UI", "match_found", "Match Found", arp(0.3, 100, c5, e5, g5, c6)),
	entry("UI", "pause", "Pause", synth.Sweep(800, 400, ms(120), 0.2)),
	entry("UI", "resume", "Resume", synth.Sweep(400, 800, ms(120), 0.2)),

	// Alternating beeps with a short gap.
	entry("Warnings", "warning_high_stack", "High Stack Warning", synth.CompositeSpec{Parts: []synth.Part{
		synth.TonePart(synth.Beep(880, ms(100), 0.25)),
		synth.GapPart(ms(50)),
		synth.TonePart(synth.Beep(880, ms(100), 0.25)),
	}}),
	// Descending arpeggio.
	entry("Warnings", "game_over", "Game Over", arp(0.3, 150, e5, c5, a4, f4, c4)),
}

// All returns every built-in entry in catalog order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup finds an entry by ID.
func Lookup(id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Merge returns base with extra appended. Entries in extra replace base entries with the same ID
// in place.
func Merge(base, extra []Entry) []Entry {
	out := make([]Entry, len(base), len(base)+len(extra))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, e := range out {
		index[e.ID] = i
	}
	for _, e := range extra {
		if i, ok := index[e.ID]; ok {
			out[i] = e
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	return out
}

// Filenames returns the output filename of every entry.
func Filenames(list []Entry) []string {
	names := make([]string, len(list))
	for i, e := range list {
		names[i] = e.Filename
	}
	return names
}

func (e Entry) String() string {
	return fmt.Sprintf("%-30s (%s)", e.ID, e.Name)
}
