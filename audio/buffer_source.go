// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// BufferSource plays a Buffer as an interleaved Source, optionally looping.
type BufferSource struct {
	buf  *Buffer
	pos  int
	loop bool
}

func NewBufferSource(b *Buffer, loop bool) *BufferSource {
	return &BufferSource{buf: b, loop: loop}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.Channels() }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

// Position is the next frame to be read.
func (s *BufferSource) Position() int { return s.pos }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	total := s.buf.Frames()
	want := len(dst) / channels
	written := 0

	for written < want {
		if s.pos >= total {
			if !s.loop || total == 0 {
				break
			}
			s.pos = 0
		}

		n := min(want-written, total-s.pos)
		for f := range n {
			base := (written + f) * channels
			for c, ch := range s.buf.Data {
				dst[base+c] = ch[s.pos+f]
			}
		}
		written += n
		s.pos += n
	}

	if written < want {
		if written == 0 {
			return 0, io.EOF
		}
		return written * channels, io.EOF
	}
	return written * channels, nil
}
