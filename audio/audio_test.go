// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/ik5/hoapbx/internal/audiotest"
)

type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 4, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}
	registry.Register("WAV", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}

	if _, ok := registry.Get("flac"); ok {
		t.Error("Registry.Get() returned ok=true for non-existent format")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, f := range []string{"ogg", "wav", "aiff"} {
		registry.Register(f, &mockDecoder{name: f})
	}

	got := registry.Formats()
	want := []string{"aiff", "ogg", "wav"}
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	ogg := &mockDecoder{name: "ogg"}
	registry.Register("ogg", ogg)

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"scene/foa.ogg", false},
		{"https://example.com/hoa_01-08ch.OGG?token=1", false},
		{"file:///tmp/a.ogg#t=3", false},
		{"noext", true},
		{"sample.wav", true},
	}

	for _, tc := range tests {
		d, err := registry.ForPath(tc.path)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnknownFormat", tc.path, err)
			}
			continue
		}
		if err != nil || d != ogg {
			t.Errorf("ForPath(%q) = %v, %v", tc.path, d, err)
		}
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register(string(rune('a'+i)), &mockDecoder{})
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Get(string(rune('a' + i)))
		}()
	}
	wg.Wait()

	if n := len(registry.Formats()); n != 10 {
		t.Errorf("len(Formats()) = %d, want 10", n)
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	b.ResetTimer()
	for b.Loop() {
		_, _ = registry.Get("wav")
	}
}
