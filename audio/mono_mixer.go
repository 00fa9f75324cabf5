// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer downmixes src by averaging its channels. With Select set to a
// channel index it passes that channel through instead, which for an
// ambisonic source with Select(0) yields the omnidirectional W signal.
type MonoMixer struct {
	src    Source
	tmp    []float32
	single int
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src:    src,
		tmp:    make([]float32, 4096),
		single: -1,
	}
}

// Select makes the mixer pass channel ch through unchanged. A negative ch
// restores averaging.
func (m *MonoMixer) Select(ch int) *MonoMixer {
	if ch >= m.src.Channels() {
		ch = -1
	}
	m.single = ch
	return m
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	switch {
	case m.single >= 0:
		for f := range frames {
			dst[f] = m.tmp[f*channels+m.single]
		}
	case channels == 2:
		for f := range frames {
			dst[f] = (m.tmp[2*f] + m.tmp[2*f+1]) * 0.5
		}
	default:
		inv := 1 / float32(channels)
		for f := range frames {
			var sum float32
			for _, v := range m.tmp[f*channels : (f+1)*channels] {
				sum += v
			}
			dst[f] = sum * inv
		}
	}

	return frames, err
}
