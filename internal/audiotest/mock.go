// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test sources shared by the packages of this
// module. It does not import audio, so audio's own tests can use it.
package audiotest

import (
	"io"
	"math"
	"sync/atomic"
)

// Waveform returns the value of channel ch at frame n.
type Waveform func(n, ch int) float32

// MockSource generates frames from a Waveform. A negative total makes the
// source endless.
type MockSource struct {
	sampleRate int
	channels   int
	total      int
	generated  int
	waveform   Waveform
	bufSize    int

	closed atomic.Bool
}

func NewMockSource(sampleRate, channels, total int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		total:      total,
		waveform:   waveform,
		bufSize:    4096,
	}
}

func NewSilentSource(sampleRate, channels, total int) *MockSource {
	return NewMockSource(sampleRate, channels, total, func(int, int) float32 { return 0 })
}

// NewSineSource puts the same sine on every channel.
func NewSineSource(sampleRate, channels, total int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, total, func(n, _ int) float32 {
		t := float64(n) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, total int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, total, func(int, int) float32 { return value })
}

// NewEncodedSource plays a sine whose channel ch is scaled by gains[ch],
// typically the spherical harmonics of a direction.
func NewEncodedSource(sampleRate, total int, frequency float64, gains []float64) *MockSource {
	return NewMockSource(sampleRate, len(gains), total, func(n, ch int) float32 {
		t := float64(n) / float64(sampleRate)
		return float32(gains[ch] * math.Sin(2*math.Pi*frequency*t))
	})
}

// WithBufSize overrides the reported BufSize.
func (m *MockSource) WithBufSize(n int) *MockSource {
	m.bufSize = n
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return m.bufSize }

func (m *MockSource) Close() error {
	m.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed.Load() }

// Generated is the number of frames produced so far.
func (m *MockSource) Generated() int { return m.generated }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.total >= 0 && m.generated >= m.total {
		return 0, io.EOF
	}

	frames := len(dst) / m.channels
	if m.total >= 0 {
		frames = min(frames, m.total-m.generated)
	}

	for f := range frames {
		n := m.generated + f
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(n, ch)
		}
	}
	m.generated += frames

	if m.total >= 0 && m.generated >= m.total {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}
