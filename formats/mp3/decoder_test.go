// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/hoapbx/audio"
)

// mockMP3Reader returns PCM bytes at most step at a time, splitting frames
// on purpose when step is not a multiple of four.
type mockMP3Reader struct {
	data []byte
	step int
}

func (m *mockMP3Reader) SampleRate() int { return 44100 }

func (m *mockMP3Reader) Read(p []byte) (int, error) {
	if len(m.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), m.step)], m.data)
	m.data = m.data[n:]
	return n, nil
}

func pcm16(values ...int16) []byte {
	out := make([]byte, 0, 2*len(values))
	for _, v := range values {
		out = binary.LittleEndian.AppendUint16(out, uint16(v))
	}
	return out
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not an mp3 at all")))
	if !errors.Is(err, ErrNotMP3Stream) {
		t.Errorf("Decode() error = %v, want ErrNotMP3Stream", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		step int
	}{
		{"whole frames", 8},
		{"split frames", 3},
		{"single bytes", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values := []int16{16384, -16384, 8192, -8192, 0, 32767, -32768, 1}
			src := &source{dec: &mockMP3Reader{data: pcm16(values...), step: tt.step}, sampleRate: 44100}

			buf, err := audio.ReadBuffer(src, 4)
			if err != nil {
				t.Fatalf("ReadBuffer() error = %v", err)
			}
			if buf.Frames() != 4 {
				t.Fatalf("Frames() = %d, want 4", buf.Frames())
			}
			for i, v := range values {
				want := float32(v) / 32768
				if got := buf.Data[i%2][i/2]; got != want {
					t.Errorf("sample %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestSource_InvalidDst(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockMP3Reader{data: pcm16(1, 2), step: 4}}
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("error = %v, want ErrInvalidDstSize", err)
	}
}
