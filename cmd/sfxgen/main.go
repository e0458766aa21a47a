package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/QEStudios/ChiptuneSFX/batch"
	"github.com/QEStudios/ChiptuneSFX/catalog"
	"github.com/QEStudios/ChiptuneSFX/config"
	"github.com/QEStudios/ChiptuneSFX/parser/manifest"
	"github.com/QEStudios/ChiptuneSFX/validate"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/sqweek/dialog"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "", log.Ldate|log.Ltime)
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	// Get the current working directory.
	cwd, err := os.Getwd()
	if err != nil {
		logger.Printf("failed to get current working directory: %v", err)
		return 1
	}

	var list, check, pick, dump bool
	pflag.BoolVarP(&list, "list", "l", false, "list available sound effects and exit")
	pflag.BoolVar(&check, "validate", false, "check that every expected file exists in the output directory")
	pflag.StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "output directory")
	pflag.StringVarP(&cfg.Manifest, "manifest", "m", cfg.Manifest, "audio requirements manifest (JSON or YAML)")
	pflag.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "output sample rate in Hz")
	pflag.IntVarP(&cfg.Jobs, "jobs", "j", cfg.Jobs, "number of files to generate in parallel")
	pflag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for noise effects (0 picks one)")
	pflag.BoolVarP(&pick, "pick", "p", false, "choose the output directory with a dialog")
	pflag.BoolVar(&dump, "dump", false, "dump the resolved sound descriptions")
	pflag.Parse()

	m, err := loadManifest(cfg.Manifest, pflag.CommandLine.Changed("manifest"))
	if err != nil {
		logger.Printf("manifest error: %v", err)
		return 1
	}

	entries := catalog.All()
	if m != nil {
		entries = catalog.Merge(entries, m.SynthEntries())
	}

	if list {
		printEntries(entries)
		return 0
	}

	selected, err := selectEntries(entries, pflag.Args())
	if err != nil {
		logger.Printf("%v", err)
		logger.Printf("Run with --list to see the available sound effects")
		return 1
	}

	if dump {
		for _, e := range selected {
			spew.Dump(e)
		}
		return 0
	}

	// Get the output directory.
	dir, err := chooseOutputDir(cwd, cfg.OutputDir, pick)
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			logger.Printf("User cancelled the directory dialog")
			return 1
		}
		logger.Printf("failed to determine output directory: %v", err)
		return 1
	}

	if check {
		files := catalog.Filenames(entries)
		if m != nil {
			files = m.Files()
		}
		report := validate.Check(dir, files)
		fmt.Println(report)
		if !report.OK() {
			return 1
		}
		return 0
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Printf("cannot create output directory: %v", err)
		return 1
	}

	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	logger.Printf("Generating %d sound effect(s) into %s (seed %d)", len(selected), dir, cfg.Seed)
	if len(selected) == 1 {
		fmt.Println(selected[0].Sound)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := batch.Run(ctx, selected, batch.Options{
		Dir:        dir,
		SampleRate: cfg.SampleRate,
		Jobs:       cfg.Jobs,
		Seed:       cfg.Seed,
		Logger:     logger,
	})
	logger.Printf("%v", summary)
	if !summary.OK() {
		return 1
	}
	return 0
}

// loadManifest parses the manifest at path. A missing manifest is only an error when it was
// asked for explicitly.
func loadManifest(path string, required bool) (*manifest.Manifest, error) {
	if path == "" {
		return nil, nil
	}
	m, err := manifest.Load(path, logger)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Printf("Loaded manifest %s: %d music tracks, %d sound effects", path, len(m.Music), len(m.SFX))
	if m.Metadata.Style != "" {
		logger.Printf("Style: %s", m.Metadata.Style)
	}
	return m, nil
}

// selectEntries returns every entry, or just the one named by the first argument.
func selectEntries(entries []catalog.Entry, args []string) ([]catalog.Entry, error) {
	if len(args) == 0 {
		return entries, nil
	}
	if len(args) > 1 {
		return nil, fmt.Errorf("expected at most one sound effect id, got %d", len(args))
	}
	for _, e := range entries {
		if e.ID == args[0] {
			return []catalog.Entry{e}, nil
		}
	}
	return nil, fmt.Errorf("unknown sound effect %q", args[0])
}

func printEntries(entries []catalog.Entry) {
	group := ""
	for _, e := range entries {
		if e.Group != group {
			if group != "" {
				fmt.Println()
			}
			group = e.Group
			fmt.Printf("%s:\n", group)
		}
		fmt.Printf("  %v\n", e)
	}
}

// chooseOutputDir returns the output directory either from the flags/config
// or from an interactive directory dialog.
func chooseOutputDir(cwd, dir string, pick bool) (string, error) {
	if !pick {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		return filepath.Clean(dir), nil
	}

	// Otherwise open the directory dialog.
	path, err := dialog.
		Directory().
		Title("Choose the audio output directory").
		SetStartDir(cwd).
		Browse()
	if err != nil {
		// Propagate the error. Caller will check for dialog.ErrCancelled.
		return "", err
	}

	// Check for empty path just in case.
	if path == "" {
		return "", dialog.ErrCancelled
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot get absolute path: %w", err)
	}
	if st, err := os.Stat(absPath); err != nil {
		return "", fmt.Errorf("cannot stat directory: %w", err)
	} else if !st.IsDir() {
		return "", fmt.Errorf("%s is not a directory", absPath)
	}
	return absPath, nil
}
