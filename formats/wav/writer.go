// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/hoapbx/audio"
	"github.com/ik5/hoapbx/utils"
)

// Writer encodes interleaved float32 frames as integer PCM WAV.
type Writer struct {
	enc      *wav.Encoder
	channels int
	bitDepth int
	frames   int
	buf      *goaudio.IntBuffer
}

func NewWriter(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*Writer, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, channels)
	}

	return &Writer{
		enc:      wav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM),
		channels: channels,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Write appends interleaved samples. len(samples) must be a multiple of the
// channel count.
func (w *Writer) Write(samples []float32) error {
	if len(samples)%w.channels != 0 {
		return audio.ErrInvalidDstSize
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, v := range samples {
		w.buf.Data[i] = utils.FloatToPCM(v, w.bitDepth)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav encode: %w", err)
	}
	w.frames += len(samples) / w.channels
	return nil
}

// Frames is the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// Close finalises the headers. The underlying writer stays open.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav close: %w", err)
	}
	return nil
}
