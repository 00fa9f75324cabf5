// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"

	"github.com/ik5/hoapbx/audio"
)

// pcmReader turns an audio.Source into the float32 little-endian byte
// stream oto pulls. The source is swapped atomically so Read never locks;
// with no source, or after the source ends, it plays silence.
type pcmReader struct {
	src      atomic.Pointer[audio.Source]
	channels int
	buf      []float32
	frames   atomic.Int64
	err      atomic.Pointer[error]
}

func newPCMReader(channels int) *pcmReader {
	return &pcmReader{channels: channels, buf: make([]float32, 1024*channels)}
}

func (r *pcmReader) setSource(src audio.Source) {
	if src == nil {
		r.src.Store(nil)
		return
	}
	r.src.Store(&src)
}

// Frames is the number of frames read from the source so far.
func (r *pcmReader) Frames() int64 { return r.frames.Load() }

// Err reports the error that ended the source, other than io.EOF.
func (r *pcmReader) Err() error {
	if p := r.err.Load(); p != nil {
		return *p
	}
	return nil
}

func (r *pcmReader) Read(p []byte) (int, error) {
	clear(p)

	sp := r.src.Load()
	if sp == nil {
		return len(p), nil
	}
	src := *sp

	frameBytes := 4 * r.channels
	want := len(p) / frameBytes * r.channels
	if len(r.buf) < want {
		r.buf = make([]float32, want)
	}

	for off := 0; off < want; {
		n, err := src.ReadSamples(r.buf[off:want])
		for i, v := range r.buf[off : off+n] {
			binary.LittleEndian.PutUint32(p[4*(off+i):], math.Float32bits(v))
		}
		off += n
		r.frames.Add(int64(n / r.channels))

		if err != nil {
			if err != io.EOF {
				r.err.Store(&err)
			}
			r.src.CompareAndSwap(sp, nil)
			break
		}
		if n == 0 {
			break
		}
	}

	return len(p), nil
}
