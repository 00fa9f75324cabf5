// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is fully decoded PCM, planar: Data[channel][frame].
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return &Buffer{SampleRate: sampleRate, Data: data}
}

func (b *Buffer) Channels() int { return len(b.Data) }

func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// ReadBuffer drains src into a Buffer and closes it. bufSize is the
// interleaved read size; zero uses src.BufSize().
func ReadBuffer(src Source, bufSize int) (*Buffer, error) {
	defer src.Close()

	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: source reports %d channels", ErrInvalidDstSize, channels)
	}
	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	bufSize = max(bufSize-bufSize%channels, channels)

	out := &Buffer{SampleRate: src.SampleRate(), Data: make([][]float32, channels)}
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		frames := n / channels
		for f := range frames {
			for c := range channels {
				out.Data[c] = append(out.Data[c], buf[f*channels+c])
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		if n == 0 {
			// a source that returns nothing without EOF would spin
			break
		}
	}

	return out, nil
}

// ConcatChannels stacks the channels of bufs in order. Shorter buffers are
// padded with silence to the longest one.
func ConcatChannels(bufs ...*Buffer) (*Buffer, error) {
	if len(bufs) == 0 {
		return nil, ErrEmptyBuffer
	}

	rate := bufs[0].SampleRate
	frames := 0
	channels := 0
	for i, b := range bufs {
		if b.SampleRate != rate {
			return nil, fmt.Errorf("%w: buffer %d is %d Hz, buffer 0 is %d Hz", ErrSampleRateMismatch, i, b.SampleRate, rate)
		}
		frames = max(frames, b.Frames())
		channels += b.Channels()
	}

	out := &Buffer{SampleRate: rate, Data: make([][]float32, 0, channels)}
	for _, b := range bufs {
		for _, ch := range b.Data {
			if len(ch) == frames {
				out.Data = append(out.Data, ch)
				continue
			}
			padded := make([]float32, frames)
			copy(padded, ch)
			out.Data = append(out.Data, padded)
		}
	}

	return out, nil
}
