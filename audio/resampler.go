// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/hoapbx/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count, so it can sit
// between an ambisonic renderer and a destination running at another rate.
// A one-pole low-pass runs on the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// history for cubic interpolation: t-1, t0, t+1, t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	pos float64

	// chunked reads from src
	chunk    []float32
	chunkLen int
	chunkPos int
	eof      bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	size := max(src.BufSize(), channels)
	size -= size % channels

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		chunk:       make([]float32, size),
		useFilter:   ratio > 1,
		filterState: make([]float32, channels),
	}
	if r.useFilter {
		// cutoff follows the destination Nyquist
		r.filterAlpha = float32(1 / ratio)
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for r.chunkPos >= r.chunkLen {
		if r.eof {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.chunk)
		r.chunkLen = n - n%r.channels
		r.chunkPos = 0
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		} else if n == 0 {
			return false, nil
		}
	}

	copy(dst, r.chunk[r.chunkPos:r.chunkPos+r.channels])
	r.chunkPos += r.channels

	if r.useFilter {
		for c := range dst {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}
	return true, nil
}

// advance shifts the history by one frame.
func (r *Resampler) advance() error {
	first := r.frames[0]
	copy(r.frames[:], r.frames[1:])
	copy(r.hasFrame[:], r.hasFrame[1:])
	r.frames[3] = first

	ok, err := r.nextFrame(r.frames[3])
	if err != nil {
		return err
	}
	r.hasFrame[3] = ok
	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.nextFrame(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	if r.useFilter {
		// restart the filter on the first frame to avoid a fade-in
		copy(r.filterState, r.frames[1])
	}
	r.hasFrame[1] = true

	for i := 2; i < 4; i++ {
		if r.hasFrame[i], err = r.nextFrame(r.frames[i]); err != nil {
			return err
		}
	}
	r.primed = true
	return nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		y1 := r.frames[1]
		y0 := y1
		if r.hasFrame[0] {
			y0 = r.frames[0]
		}
		y2 := y1
		if r.hasFrame[2] {
			y2 = r.frames[2]
		}
		y3 := y2
		if r.hasFrame[3] {
			y3 = r.frames[3]
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(y0[c], y1[c], y2[c], y3[c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
