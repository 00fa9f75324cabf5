// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/hoapbx/audio"
)

// encode writes frames through Writer into a temp file and returns its bytes.
func encode(t *testing.T, sampleRate, channels, bitDepth int, samples []float32) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	w, err := NewWriter(f, sampleRate, channels, bitDepth)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(samples); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// header builds a canonical 44-byte header with the given format tag.
func header(format uint16, channels, bits int, dataSize uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVEfmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, format)
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(48000))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(48000*channels*bits/8))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels*bits/8))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bits))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func ramp(frames, channels int) []float32 {
	s := make([]float32, frames*channels)
	for f := range frames {
		for c := range channels {
			s[f*channels+c] = float32(math.Sin(float64(f)*0.05+float64(c))) * 0.8
		}
	}
	return s
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		bitDepth int
		tol      float64
	}{
		{"mono 16-bit", 1, 16, 1e-4},
		{"first order 16-bit", 4, 16, 1e-4},
		{"third order 24-bit", 16, 24, 1e-6},
		{"first order 32-bit", 4, 32, 1e-6},
		{"stereo 8-bit", 2, 8, 2e-2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			want := ramp(300, tc.channels)
			data := encode(t, 48000, tc.channels, tc.bitDepth, want)

			src, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatal(err)
			}
			if src.Channels() != tc.channels || src.SampleRate() != 48000 {
				t.Fatalf("decoded %d ch at %d Hz", src.Channels(), src.SampleRate())
			}

			buf, err := audio.ReadBuffer(src, 64*tc.channels)
			if err != nil {
				t.Fatal(err)
			}
			if buf.Frames() != 300 {
				t.Fatalf("decoded %d frames, want 300", buf.Frames())
			}
			for f := range 300 {
				for c := range tc.channels {
					if d := math.Abs(float64(buf.Data[c][f] - want[f*tc.channels+c])); d > tc.tol {
						t.Fatalf("frame %d ch %d off by %v", f, c, d)
					}
				}
			}
		})
	}
}

func TestDecoder_NotSeekable(t *testing.T) {
	t.Parallel()

	data := encode(t, 44100, 2, 16, ramp(10, 2))
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatal(err)
	}
	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d", src.SampleRate())
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"garbage", []byte("this is not a riff file at all, not even close"), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"ieee float", header(3, 2, 32, 64), ErrUnsupportedWavLayout},
		{"12-bit", header(1, 1, 12, 60), ErrUnsupportedBitDepth},
	}

	for _, tc := range tests {
		_, err := Decoder{}.Decode(bytes.NewReader(tc.data))
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: error = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestDecoder_Extensible(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(header(formatExtensible, 4, 16, 64)))
	if err != nil {
		t.Fatal(err)
	}
	if src.Channels() != 4 {
		t.Errorf("Channels() = %d, want 4", src.Channels())
	}
}

type stubPCM struct {
	values []int
	err    error
}

func (s *stubPCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n := copy(buf.Data, s.values)
	s.values = s.values[n:]
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &stubPCM{values: []int{16384, -16384, 0, 32767, 5}},
		sampleRate: 8000,
		channels:   2,
		bitDepth:   16,
	}

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples = %d, %v; want 4 (trailing partial frame dropped)", n, err)
	}
	if dst[0] != 0.5 || dst[1] != -0.5 {
		t.Errorf("dst = %v", dst[:n])
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("exhausted read = %d, %v; want 0, EOF", n, err)
	}
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("odd dst error = %v", err)
	}
}

func TestSource_PropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	src := &source{dec: &stubPCM{err: boom}, channels: 1, bitDepth: 16}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestNewWriter_Errors(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := NewWriter(f, 48000, 2, 20); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("20-bit error = %v", err)
	}
	w, err := NewWriter(f, 48000, 2, 16)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("odd write error = %v", err)
	}
}
