package pcm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/QEStudios/ChiptuneSFX/synth"
	"github.com/go-audio/wav"
)

// ErrInvalidWAV is returned for files that are not readable WAV audio, including truncated ones.
var ErrInvalidWAV = errors.New("not a valid WAV file")

// Summary of a WAV file on disk.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Samples    int // Frames per channel.
	Duration   time.Duration
	Size       int64 // File size in bytes.
}

// Decode reads a mono 16-bit WAV file back into a buffer, scaling samples by 1/32767.
func Decode(r io.ReadSeeker) (synth.Buffer, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return synth.Buffer{}, ErrInvalidWAV
	}
	if d.NumChans != Channels || d.BitDepth != BitDepth {
		return synth.Buffer{}, fmt.Errorf("unsupported layout: %d channels, %d bits", d.NumChans, d.BitDepth)
	}

	pcmBuf, err := d.FullPCMBuffer()
	if err != nil {
		return synth.Buffer{}, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}

	buf := synth.NewBuffer(len(pcmBuf.Data), int(d.SampleRate))
	for i, v := range pcmBuf.Data {
		buf.Samples[i] = float64(v) / maxAmplitude
	}
	return buf, nil
}

// Inspect reads the header and sample data of a WAV file and reports its format and length.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Info{}, err
	}

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return Info{Size: st.Size()}, ErrInvalidWAV
	}
	pcmBuf, err := d.FullPCMBuffer()
	if err != nil {
		return Info{Size: st.Size()}, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
	}

	info := Info{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Size:       st.Size(),
	}
	if info.Channels > 0 {
		info.Samples = len(pcmBuf.Data) / info.Channels
	}
	if info.SampleRate > 0 {
		info.Duration = time.Duration(info.Samples) * time.Second / time.Duration(info.SampleRate)
	}
	return info, nil
}
