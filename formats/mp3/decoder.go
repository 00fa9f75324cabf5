// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/hoapbx/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels      = 2
	bytesPerFrame = 2 * channels
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// pending holds a partial frame left over from the previous read.
	pending []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 2048 * channels }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	have := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	// keep reading until at least one whole frame is buffered
	n, err := have, error(nil)
	for n < bytesPerFrame && err == nil {
		var m int
		m, err = s.dec.Read(s.buf[n:])
		n += m
	}

	whole := n - n%bytesPerFrame
	s.pending = append(s.pending, s.buf[whole:n]...)

	for i := range whole / 2 {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}

	switch {
	case errors.Is(err, io.EOF):
		return whole / 2, io.EOF
	case err != nil:
		return whole / 2, fmt.Errorf("mp3: %w", err)
	}
	return whole / 2, nil
}

// Decoder reads MPEG-1/2 Layer III streams. MP3 has no ambisonic layout,
// so sources are always stereo and only suit direct playback.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3Stream, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
	}, nil
}
