// Package manifest parses the audio requirements manifest that lists every music track and
// sound effect the game expects to find on disk.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/QEStudios/ChiptuneSFX/catalog"
	"github.com/QEStudios/ChiptuneSFX/synth"
	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the manifest format from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// The whole requirements file.
type Manifest struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Tuning   float64  `json:"tuning,omitempty" yaml:"tuning,omitempty"` // Frequency of A4 for note names, default 440.
	Music    []Track  `json:"music" yaml:"music"`
	SFX      []Track  `json:"sfx" yaml:"sfx"`
}

// Summary written by the tool that produced the manifest.
type Metadata struct {
	TotalMusicTracks int    `json:"total_music_tracks" yaml:"total_music_tracks"`
	TotalSFX         int    `json:"total_sfx" yaml:"total_sfx"`
	Style            string `json:"style" yaml:"style"`
}

// A single music track or sound effect.
type Track struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Type     string  `json:"type" yaml:"type"`
	Filename string  `json:"filename" yaml:"filename"`
	Duration float64 `json:"duration" yaml:"duration"` // Seconds.
	Loop     bool    `json:"loop" yaml:"loop"`
	Prompt   string  `json:"prompt,omitempty" yaml:"prompt,omitempty"` // Only used by AI generation.

	// Optional procedural description. Tracks with one can be synthesized locally.
	Synth *SynthBlock `json:"synth,omitempty" yaml:"synth,omitempty"`

	sound synth.Sound
}

// Sound returns the synthesized sound for tracks with a synth block, or nil.
func (t Track) Sound() synth.Sound {
	return t.sound
}

// Procedural description of a sound effect.
// Durations are in seconds; zero means "use the default".
type SynthBlock struct {
	Kind         string    `json:"kind" yaml:"kind"` // beep, tone, sweep, noise or arpeggio.
	Frequencies  []float64 `json:"frequencies,omitempty" yaml:"frequencies,omitempty"`
	Notes        []string  `json:"notes,omitempty" yaml:"notes,omitempty"` // Alternative to Frequencies, e.g. "C5".
	Volume       float64   `json:"volume" yaml:"volume"`
	NoteDuration float64   `json:"note_duration,omitempty" yaml:"note_duration,omitempty"` // Arpeggio note length.
	Fade         *float64  `json:"fade,omitempty" yaml:"fade,omitempty"`                   // Linear fade at each edge.
	Decay        *float64  `json:"decay,omitempty" yaml:"decay,omitempty"`                 // Exponential decay rate.
	Gap          float64   `json:"gap,omitempty" yaml:"gap,omitempty"`                     // Silence between repeats or notes.
	Repeat       int       `json:"repeat,omitempty" yaml:"repeat,omitempty"`               // Play a beep or tone this many times.
}

// Small struct for non-fatal warnings
type Warning struct {
	Entry   string // ID of the entry, or its position when it has none.
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Entry, w.Message)
}

type ParseResult struct {
	Manifest *Manifest
	Warnings []Warning
}

type Parser struct {
	r      io.Reader
	format Format
	logger *log.Logger

	// Collect any warnings whilst parsing.
	warnings []Warning

	// Parsing can only be done once per Parser.
	used bool
}

// NewParser creates a new parser to parse a manifest.
func NewParser(r io.Reader, format Format, logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.Default()
	}
	return &Parser{
		r:      r,
		format: format,
		logger: logger,
	}
}

// Load opens and parses the manifest at path.
func Load(path string, logger *log.Logger) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := NewParser(f, FormatFromPath(path), logger).Parse()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// addWarning adds to the list of warnings encountered when parsing.
func (p *Parser) addWarning(entry string, format string, args ...any) {
	p.warnings = append(p.warnings, Warning{
		Entry:   entry,
		Message: fmt.Sprintf(format, args...),
	})
}

// Keys understood at each level of the manifest. Anything else is reported and ignored.
var (
	manifestKeys = []string{"metadata", "tuning", "music", "sfx"}
	metadataKeys = []string{"total_music_tracks", "total_sfx", "style"}
	trackKeys    = []string{"id", "name", "type", "filename", "duration", "loop", "prompt", "synth"}
	synthKeys    = []string{"kind", "frequencies", "notes", "volume", "note_duration", "fade", "decay", "gap", "repeat"}
)

// decode fills m and also returns the document as generic maps, for checking unknown keys.
func (p *Parser) decode(m *Manifest) (map[string]any, error) {
	data, err := io.ReadAll(p.r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	switch p.format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, err
		}
		err = yaml.Unmarshal(data, &raw)
	default:
		if err := json.Unmarshal(data, m); err != nil {
			return nil, err
		}
		err = json.Unmarshal(data, &raw)
	}
	return raw, err
}

// unknownKeys returns the keys of obj that are not in known, sorted.
func unknownKeys(obj any, known []string) []string {
	fields, ok := obj.(map[string]any)
	if !ok {
		return nil
	}
	var out []string
	for k := range fields {
		if !slices.Contains(known, k) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// checkKeys adds a warning for every key the manifest types do not know about.
func (p *Parser) checkKeys(raw map[string]any) {
	for _, k := range unknownKeys(raw, manifestKeys) {
		p.addWarning("manifest", "unknown key %q is ignored", k)
	}
	for _, k := range unknownKeys(raw["metadata"], metadataKeys) {
		p.addWarning("metadata", "unknown key %q is ignored", k)
	}
	for _, section := range []string{"music", "sfx"} {
		tracks, _ := raw[section].([]any)
		for i, t := range tracks {
			fields, ok := t.(map[string]any)
			if !ok {
				continue
			}
			label := fmt.Sprintf("%s[%d]", section, i)
			if id, ok := fields["id"].(string); ok && id != "" {
				label = id
			}
			for _, k := range unknownKeys(fields, trackKeys) {
				p.addWarning(label, "unknown key %q is ignored", k)
			}
			for _, k := range unknownKeys(fields["synth"], synthKeys) {
				p.addWarning(label, "unknown synth key %q is ignored", k)
			}
		}
	}
}

func (p *Parser) parseInternal() (*ParseResult, error) {
	if p.used {
		return nil, fmt.Errorf("parser already used")
	}
	p.used = true

	var m Manifest
	raw, err := p.decode(&m)
	if err != nil {
		return nil, fmt.Errorf("error decoding manifest: %w", err)
	}
	p.checkKeys(raw)
	if m.Tuning == 0 {
		m.Tuning = synth.StandardTuning
	}
	if m.Tuning < 0 {
		return nil, fmt.Errorf("tuning must be positive, got %v", m.Tuning)
	}

	seen := make(map[string]bool)
	check := func(section string, tracks []Track) error {
		for i := range tracks {
			t := &tracks[i]
			label := t.ID
			if label == "" {
				label = fmt.Sprintf("%s[%d]", section, i)
				return fmt.Errorf("%s: missing id", label)
			}
			if t.Filename == "" {
				return fmt.Errorf("%s: missing filename", label)
			}
			if seen[t.ID] {
				p.addWarning(label, "duplicate id, later entries shadow earlier ones")
			}
			seen[t.ID] = true

			if strings.ToLower(filepath.Ext(t.Filename)) != ".wav" {
				p.addWarning(label, "filename %q does not end in .wav", t.Filename)
			}
			if t.Duration < 0 {
				return fmt.Errorf("%s: duration must not be negative, got %v", label, t.Duration)
			}
			if t.Synth == nil {
				continue
			}
			if section == "music" {
				p.addWarning(label, "synth block on a music track is ignored")
				continue
			}

			sound, err := p.buildSound(label, t, m.Tuning)
			if err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
			t.sound = sound
		}
		return nil
	}

	if err := check("music", m.Music); err != nil {
		return nil, err
	}
	if err := check("sfx", m.SFX); err != nil {
		return nil, err
	}

	// Zero counts mean the manifest carries no metadata.
	if n := m.Metadata.TotalMusicTracks; n > 0 && n != len(m.Music) {
		p.addWarning("metadata", "total_music_tracks is %d but %d music tracks are listed", n, len(m.Music))
	}
	if n := m.Metadata.TotalSFX; n > 0 && n != len(m.SFX) {
		p.addWarning("metadata", "total_sfx is %d but %d sound effects are listed", n, len(m.SFX))
	}

	return &ParseResult{Manifest: &m, Warnings: p.warnings}, nil
}

// Parse parses the manifest, logging any warnings.
func (p *Parser) Parse() (*Manifest, error) {
	result, err := p.parseInternal()
	if err != nil {
		return nil, err
	}

	if len(result.Warnings) > 0 {
		p.logger.Println("Warnings produced while parsing manifest:")
		for _, warning := range result.Warnings {
			p.logger.Printf("%v\n", warning)
		}
	}
	return result.Manifest, nil
}

// Warnings returns the warnings collected so far.
func (p *Parser) Warnings() []Warning {
	return p.warnings
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

func (p *Parser) frequencies(b *SynthBlock, tuning float64) ([]float64, error) {
	freqs := append([]float64(nil), b.Frequencies...)
	for _, n := range b.Notes {
		f, err := synth.NoteFreq(n, tuning)
		if err != nil {
			return nil, err
		}
		freqs = append(freqs, f)
	}
	return freqs, nil
}

// buildSound converts a synth block into a renderable sound and validates it.
func (p *Parser) buildSound(label string, t *Track, tuning float64) (synth.Sound, error) {
	b := t.Synth
	if b.Gap < 0 {
		return nil, fmt.Errorf("gap must not be negative, got %v", b.Gap)
	}
	if b.NoteDuration < 0 {
		return nil, fmt.Errorf("note_duration must not be negative, got %v", b.NoteDuration)
	}
	if b.Volume < 0 || b.Volume > 1 {
		p.addWarning(label, "volume %v will be clamped to 0..1", b.Volume)
	}
	if len(b.Frequencies) > 0 && len(b.Notes) > 0 {
		p.addWarning(label, "both frequencies and notes given, notes are appended")
	}

	freqs, err := p.frequencies(b, tuning)
	if err != nil {
		return nil, err
	}
	d := seconds(t.Duration)

	need := func(n int) error {
		if len(freqs) < n {
			return fmt.Errorf("synth kind %q needs %d frequencies, got %d", b.Kind, n, len(freqs))
		}
		if len(freqs) > n {
			p.addWarning(label, "synth kind %q uses %d frequencies, ignoring %d", b.Kind, n, len(freqs)-n)
		}
		return nil
	}

	var tone synth.ToneSpec
	switch strings.ToLower(b.Kind) {
	case "beep":
		if err := need(1); err != nil {
			return nil, err
		}
		tone = synth.Beep(freqs[0], d, b.Volume)
	case "tone":
		if err := need(1); err != nil {
			return nil, err
		}
		tone = synth.ToneSpec{Kind: synth.WaveTone, Frequency: freqs[0], Duration: d, Volume: b.Volume}
	case "sweep":
		if err := need(2); err != nil {
			return nil, err
		}
		tone = synth.Sweep(freqs[0], freqs[1], d, b.Volume)
	case "noise":
		if err := need(0); err != nil {
			return nil, err
		}
		tone = synth.NoiseBurst(d, b.Volume)
	case "arpeggio":
		return p.buildArpeggio(label, b, freqs, d)
	default:
		p.logger.Printf("unrecognised synth block for %s:\n%s", label, spew.Sdump(b))
		return nil, fmt.Errorf("unknown synth kind %q", b.Kind)
	}

	tone.Envelope = envelopeOverride(b, tone.Envelope)
	if err := tone.Validate(); err != nil {
		return nil, err
	}

	if b.Repeat <= 1 {
		if b.Gap != 0 {
			p.addWarning(label, "gap without repeat is ignored")
		}
		return tone, nil
	}

	// Repeated tones separated by gaps, like an intermittent warning beep.
	parts := make([]synth.Part, 0, b.Repeat*2-1)
	for i := 0; i < b.Repeat; i++ {
		if i > 0 && b.Gap > 0 {
			parts = append(parts, synth.GapPart(seconds(b.Gap)))
		}
		parts = append(parts, synth.TonePart(tone))
	}
	return synth.CompositeSpec{Parts: parts}, nil
}

func (p *Parser) buildArpeggio(label string, b *SynthBlock, freqs []float64, d time.Duration) (synth.Sound, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("arpeggio needs at least one frequency")
	}
	if b.Repeat > 1 {
		p.addWarning(label, "repeat is not supported for arpeggios")
	}

	noteDuration := seconds(b.NoteDuration)
	if noteDuration == 0 {
		// Split the gapless track duration evenly between the notes.
		noteDuration = (d - seconds(b.Gap)*time.Duration(len(freqs)-1)) / time.Duration(len(freqs))
	}

	parts := make([]synth.Part, 0, len(freqs)*2)
	for i, f := range freqs {
		if i > 0 && b.Gap > 0 {
			parts = append(parts, synth.GapPart(seconds(b.Gap)))
		}
		note := synth.Beep(f, noteDuration, b.Volume)
		note.Envelope = envelopeOverride(b, note.Envelope)
		if err := note.Validate(); err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		parts = append(parts, synth.TonePart(note))
	}
	return synth.CompositeSpec{Parts: parts}, nil
}

// envelopeOverride applies an explicit fade or decay from the block. Decay wins if both are set.
func envelopeOverride(b *SynthBlock, env synth.Envelope) synth.Envelope {
	if b.Fade != nil {
		env = synth.LinearFade(seconds(*b.Fade))
	}
	if b.Decay != nil {
		env = synth.ExponentialDecay(*b.Decay)
	}
	return env
}

// Lookup finds a track or sound effect by ID. Sound effects shadow music with the same ID.
func (m *Manifest) Lookup(id string) (Track, bool) {
	for i := len(m.SFX) - 1; i >= 0; i-- {
		if m.SFX[i].ID == id {
			return m.SFX[i], true
		}
	}
	for i := len(m.Music) - 1; i >= 0; i-- {
		if m.Music[i].ID == id {
			return m.Music[i], true
		}
	}
	return Track{}, false
}

// Files returns every expected filename, music first.
func (m *Manifest) Files() []string {
	files := make([]string, 0, len(m.Music)+len(m.SFX))
	for _, t := range m.Music {
		files = append(files, t.Filename)
	}
	for _, t := range m.SFX {
		files = append(files, t.Filename)
	}
	return files
}

// SynthEntries returns a catalog entry for every sound effect with a synth block.
func (m *Manifest) SynthEntries() []catalog.Entry {
	var out []catalog.Entry
	for _, t := range m.SFX {
		if t.sound == nil {
			continue
		}
		name := t.Name
		if name == "" {
			name = t.ID
		}
		out = append(out, catalog.Entry{
			ID:       t.ID,
			Name:     name,
			Group:    "Manifest",
			Filename: t.Filename,
			Sound:    t.sound,
		})
	}
	return out
}
