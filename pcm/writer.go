package pcm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/QEStudios/ChiptuneSFX/synth"
)

// WriteError is returned when an output file cannot be created or written.
// Path is the destination the caller asked for, so the write can be retried.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteFile encodes buf and writes it to path. The file is first written to a temporary file in
// the same directory and renamed into place once complete, so path either holds a whole WAV file
// or is left untouched.
func WriteFile(path string, buf synth.Buffer) (*ClippingWarning, error) {
	// Invalid buffers fail before anything touches the disk.
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	closed := false
	committed := false
	defer func() {
		if !closed {
			tmp.Close()
		}
		if !committed {
			os.Remove(tmpName)
		}
	}()

	warn, err := EncodeTo(tmp, buf)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	// Data must be on disk before the rename. go-audio's Close only syncs when it sees an *os.File.
	if err := tmp.Sync(); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	committed = true

	return warn, nil
}
