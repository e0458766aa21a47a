// Package validate checks that every expected audio file is present in an output directory.
package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/QEStudios/ChiptuneSFX/pcm"
)

// Status of one expected file.
type File struct {
	Filename string
	Exists   bool
	Size     int64
	Duration time.Duration // Zero for files that are not WAV audio.
	Err      error         // Set when the file is missing or cannot be read.
}

func (f File) OK() bool {
	return f.Exists && f.Err == nil
}

type Report struct {
	Dir   string
	Files []File
}

// Found returns the number of files that exist and are readable.
func (r Report) Found() int {
	n := 0
	for _, f := range r.Files {
		if f.OK() {
			n++
		}
	}
	return n
}

// Missing returns the filenames that are absent or unreadable.
func (r Report) Missing() []string {
	var out []string
	for _, f := range r.Files {
		if !f.OK() {
			out = append(out, f.Filename)
		}
	}
	return out
}

func (r Report) OK() bool {
	return r.Found() == len(r.Files)
}

// Check looks for each filename in dir. WAV files are also decoded, so a truncated or corrupt
// file counts as missing.
func Check(dir string, filenames []string) Report {
	report := Report{Dir: dir, Files: make([]File, 0, len(filenames))}
	for _, name := range filenames {
		report.Files = append(report.Files, checkFile(filepath.Join(dir, name), name))
	}
	return report
}

func checkFile(path, name string) File {
	f := File{Filename: name}

	st, err := os.Stat(path)
	if err != nil {
		f.Err = err
		return f
	}
	f.Exists = true
	f.Size = st.Size()
	if st.IsDir() {
		f.Err = fmt.Errorf("%s is a directory", name)
		return f
	}

	if !strings.EqualFold(filepath.Ext(name), ".wav") {
		return f
	}
	info, err := pcm.Inspect(path)
	if err != nil {
		f.Err = err
		return f
	}
	f.Duration = info.Duration
	return f
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Checking %s\n", r.Dir)
	for _, f := range r.Files {
		switch {
		case f.OK():
			fmt.Fprintf(&b, "  ✓ %-40s %8d bytes", f.Filename, f.Size)
			if f.Duration > 0 {
				fmt.Fprintf(&b, "  %v", f.Duration)
			}
		case errors.Is(f.Err, fs.ErrNotExist):
			fmt.Fprintf(&b, "  ✗ %-40s missing", f.Filename)
		default:
			fmt.Fprintf(&b, "  ✗ %-40s %v", f.Filename, f.Err)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "%d/%d files present", r.Found(), len(r.Files))
	if missing := r.Missing(); len(missing) > 0 {
		// Pluralise
		noun := "files"
		if len(missing) == 1 {
			noun = "file"
		}
		fmt.Fprintf(&b, ", %d %s missing or invalid", len(missing), noun)
	}
	return b.String()
}
