// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/ik5/hoapbx/internal/audiotest"
)

func float32At(p []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(p[4*i:]))
}

func TestPCMReader_Read(t *testing.T) {
	t.Parallel()

	r := newPCMReader(2)
	p := make([]byte, 4*2*4)

	// no source yet: silence
	if n, err := r.Read(p); n != len(p) || err != nil {
		t.Fatalf("Read() = (%d, %v), want (%d, nil)", n, err, len(p))
	}

	r.setSource(audiotest.NewConstantSource(48000, 2, 3, 0.5))
	for i := range p {
		p[i] = 0xff
	}
	if _, err := r.Read(p); err != nil {
		t.Fatal(err)
	}

	for i := range 8 {
		want := float32(0.5)
		if i >= 6 {
			want = 0
		}
		if got := float32At(p, i); got != want {
			t.Errorf("sample %d = %v, want %v", i, got, want)
		}
	}
	if got := r.Frames(); got != 3 {
		t.Errorf("Frames() = %d, want 3", got)
	}

	// the exhausted source was dropped
	if _, err := r.Read(p); err != nil {
		t.Fatal(err)
	}
	if got := float32At(p, 0); got != 0 {
		t.Errorf("after EOF sample = %v, want 0", got)
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err() = %v, want nil after io.EOF", err)
	}
}

func TestPCMReader_SourceError(t *testing.T) {
	t.Parallel()

	r := newPCMReader(1)
	r.setSource(audiotest.NewFailingSource(48000, 1, 2))

	p := make([]byte, 4*8)
	if n, err := r.Read(p); n != len(p) || err != nil {
		t.Fatalf("Read() = (%d, %v), want silence padded block", n, err)
	}
	if got := r.Frames(); got != 2 {
		t.Errorf("Frames() = %d, want 2", got)
	}
	if !errors.Is(r.Err(), audiotest.ErrBroken) {
		t.Errorf("Err() = %v, want ErrBroken", r.Err())
	}
}
