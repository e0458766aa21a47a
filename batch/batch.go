// Package batch synthesizes a list of catalog entries into WAV files.
package batch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/QEStudios/ChiptuneSFX/catalog"
	"github.com/QEStudios/ChiptuneSFX/pcm"
	"github.com/QEStudios/ChiptuneSFX/synth"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Dir        string // Output directory. Must already exist.
	SampleRate int
	Jobs       int    // Maximum files generated at once; <= 0 means one at a time.
	Seed       uint64 // Entry i uses Seed+i for its random source.
	Logger     *log.Logger
}

// A file that was written successfully.
type Result struct {
	Entry    catalog.Entry
	Path     string
	Samples  int
	Clipping *pcm.ClippingWarning
}

// An entry that could not be generated. No file is left at Path.
type Failure struct {
	Entry catalog.Entry
	Path  string
	Err   error
}

type Summary struct {
	Generated []Result
	Failed    []Failure
}

// OK reports whether every entry was generated.
func (s Summary) OK() bool {
	return len(s.Failed) == 0
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d files generated", len(s.Generated), len(s.Generated)+len(s.Failed))
	for _, f := range s.Failed {
		fmt.Fprintf(&b, "\n  - %s: %v", f.Entry.ID, f.Err)
	}
	return b.String()
}

// Generate renders a single entry with r and writes it to path.
func Generate(e catalog.Entry, path string, r *synth.Renderer) (Result, error) {
	if e.Sound == nil {
		return Result{}, fmt.Errorf("%s has no sound", e.ID)
	}
	buf, err := e.Sound.Render(r)
	if err != nil {
		return Result{}, fmt.Errorf("synthesis failed: %w", err)
	}
	warn, err := pcm.WriteFile(path, buf)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Entry:    e,
		Path:     path,
		Samples:  buf.Len(),
		Clipping: warn,
	}, nil
}

type outcome struct {
	result Result
	err    error
}

// Run generates every entry into opts.Dir. Entries are independent: a failure is recorded and
// the remaining entries still run. Entries not started when ctx is cancelled are reported as failed.
func Run(ctx context.Context, entries []catalog.Entry, opts Options) Summary {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	outcomes := make([]outcome, len(entries))
	paths := make([]string, len(entries))
	seen := make(map[string]string, len(entries))
	for i, e := range entries {
		paths[i] = filepath.Join(opts.Dir, e.Filename)
		if other, ok := seen[paths[i]]; ok {
			outcomes[i].err = fmt.Errorf("output path %s is already used by %s", paths[i], other)
			continue
		}
		seen[paths[i]] = e.ID
	}

	var g errgroup.Group
	g.SetLimit(max(opts.Jobs, 1))
	for i, e := range entries {
		if outcomes[i].err != nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].err = err
				return nil
			}
			// Each entry gets its own renderer so no state is shared between goroutines.
			r := synth.NewRenderer(opts.SampleRate, opts.Seed+uint64(i))
			outcomes[i].result, outcomes[i].err = Generate(e, paths[i], r)
			return nil
		})
	}
	g.Wait()

	var summary Summary
	for i, o := range outcomes {
		if o.err != nil {
			logger.Printf("✗ Failed: %s: %v", entries[i].Filename, o.err)
			summary.Failed = append(summary.Failed, Failure{Entry: entries[i], Path: paths[i], Err: o.err})
			continue
		}
		logger.Printf("✓ Generated: %s", entries[i].Filename)
		if o.result.Clipping != nil {
			logger.Printf("  warning: %s: %v", entries[i].Filename, o.result.Clipping)
		}
		summary.Generated = append(summary.Generated, o.result)
	}
	return summary
}
