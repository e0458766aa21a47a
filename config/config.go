package config

import (
	"os"
	"strconv"

	"github.com/QEStudios/ChiptuneSFX/synth"
)

// Config holds runtime defaults, loaded from environment variables.
// Command line flags override these values.
type Config struct {
	OutputDir  string // Directory the WAV files are written to.
	Manifest   string // Path to the audio requirements manifest (JSON or YAML).
	SampleRate int
	Jobs       int    // Files synthesized in parallel.
	Seed       uint64 // Seed for noise effects. 0 picks a random seed per run.
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		OutputDir:  envStr("SFX_OUTPUT_DIR", "packages/web/public/audio"),
		Manifest:   envStr("SFX_MANIFEST", "audio-requirements.json"),
		SampleRate: envInt("SFX_SAMPLE_RATE", synth.DefaultSampleRate),
		Jobs:       envInt("SFX_JOBS", 4),
		Seed:       envUint("SFX_SEED", 0),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
