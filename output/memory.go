// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/ik5/hoapbx/audio"
)

// Memory captures rendered frames in planar form. Nothing is pulled until
// Render is called, which makes it deterministic in tests.
type Memory struct {
	channels

	sampleRate int

	mutex  sync.Mutex
	src    audio.Source
	data   [][]float32
	buf    []float32
	closed bool
}

func NewMemory(sampleRate, maxChannels int) *Memory {
	return &Memory{channels: channels{limit: maxChannels}, sampleRate: sampleRate}
}

func (m *Memory) SampleRate() int { return m.sampleRate }

func (m *Memory) Start(src audio.Source) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.src != nil {
		return ErrStarted
	}
	if err := m.check(src); err != nil {
		return err
	}

	m.src = src
	m.data = make([][]float32, m.declared)
	return nil
}

// Started reports whether a source has been attached.
func (m *Memory) Started() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.src != nil
}

// Render pulls up to frames frames from the source and appends them to
// the capture. It returns the number of frames read; io.EOF once the
// source is exhausted.
func (m *Memory) Render(frames int) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return 0, ErrClosed
	}
	if m.src == nil {
		return 0, ErrNoChannelCount
	}

	ch := m.declared
	if len(m.buf) < frames*ch {
		m.buf = make([]float32, frames*ch)
	}

	read := 0
	for read < frames {
		n, err := m.src.ReadSamples(m.buf[:(frames-read)*ch])
		for f := range n / ch {
			for c := range ch {
				m.data[c] = append(m.data[c], m.buf[f*ch+c])
			}
		}
		read += n / ch

		if err == io.EOF {
			return read, io.EOF
		}
		if err != nil {
			return read, fmt.Errorf("render: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return read, nil
}

// Data returns a copy of the captured channels.
func (m *Memory) Data() [][]float32 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	out := make([][]float32, len(m.data))
	for c, d := range m.data {
		out[c] = append([]float32(nil), d...)
	}
	return out
}

func (m *Memory) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.closed = true
	return nil
}
