// Package pcm converts synthesized buffers to 16-bit mono PCM WAV files and reads them back.
package pcm

import (
	"fmt"
	"io"
	"math"

	"github.com/QEStudios/ChiptuneSFX/synth"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/orcaman/writerseeker"
)

const (
	BitDepth     = 16
	Channels     = 1
	wavFormatPCM = 1

	// Full scale for a clipped sample. -32768 is never produced.
	maxAmplitude = 32767
)

// Non-fatal report that samples outside [-1, 1] were hard-clipped during encoding.
// Clipping is audible but tolerated; no rescaling is ever done to avoid it.
type ClippingWarning struct {
	Clipped int     // Number of samples that were clipped.
	Total   int     // Number of samples encoded.
	Peak    float64 // Largest absolute value seen before clipping.
}

func (w ClippingWarning) String() string {
	return fmt.Sprintf("%d of %d samples clipped (peak %.3f)", w.Clipped, w.Total, w.Peak)
}

// An encoded WAV file held in memory.
type EncodedFile struct {
	Data       []byte
	SampleRate int
	Samples    int
	Clipping   *ClippingWarning // nil when nothing was clipped.
}

// Quantize clips every sample to [-1, 1] and converts it to a signed 16-bit value with round(s*32767).
// NaN samples are encoded as silence and counted as clipped.
func Quantize(buf synth.Buffer) ([]int, *ClippingWarning) {
	out := make([]int, buf.Len())
	var warn ClippingWarning
	for i, s := range buf.Samples {
		switch {
		case math.IsNaN(s):
			warn.Clipped++
			s = 0
		case s > 1 || s < -1:
			warn.Clipped++
			warn.Peak = max(warn.Peak, math.Abs(s))
			s = min(max(s, -1), 1)
		}
		out[i] = int(math.Round(s * maxAmplitude))
	}
	if warn.Clipped == 0 {
		return out, nil
	}
	warn.Total = buf.Len()
	return out, &warn
}

func checkBuffer(buf synth.Buffer) error {
	if buf.SampleRate <= 0 || buf.SampleRate > math.MaxUint32/(BitDepth/8) {
		return fmt.Errorf("%w: cannot encode sample rate %d", synth.ErrInvalidParameter, buf.SampleRate)
	}
	return nil
}

// EncodeTo writes buf as a WAV file to w: a canonical 44-byte RIFF header (PCM, mono, 16-bit)
// followed by little-endian samples.
func EncodeTo(w io.WriteSeeker, buf synth.Buffer) (*ClippingWarning, error) {
	if err := checkBuffer(buf); err != nil {
		return nil, err
	}
	data, warn := Quantize(buf)

	enc := wav.NewEncoder(w, buf.SampleRate, BitDepth, Channels, wavFormatPCM)
	err := enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: Channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           data,
		SourceBitDepth: BitDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("error writing samples: %w", err)
	}
	// Close rewrites the RIFF and data chunk sizes in the header.
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("error finalising WAV header: %w", err)
	}
	return warn, nil
}

// Encode returns the complete WAV file for buf.
func Encode(buf synth.Buffer) (*EncodedFile, error) {
	// The encoder seeks back to patch the chunk sizes, so it needs more than a bytes.Buffer.
	var ws writerseeker.WriterSeeker
	warn, err := EncodeTo(&ws, buf)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, err
	}
	return &EncodedFile{
		Data:       data,
		SampleRate: buf.SampleRate,
		Samples:    buf.Len(),
		Clipping:   warn,
	}, nil
}
