// SPDX-License-Identifier: EPL-2.0

package orientation

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
)

const eps = 1e-3

func rad(deg float64) float64 { return deg * math.Pi / 180 }

type recorder struct {
	mu    sync.Mutex
	calls [][2]float64
}

func (r *recorder) SetOrientation(yaw, pitch float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]float64{yaw, pitch})
}

func TestUpdateSameDirectionIsZero(t *testing.T) {
	t.Parallel()

	for _, v := range []Vec3{{1, 0, 0}, {0, 0, -1}, {0.3, 0.4, -0.8}, {-2, 1, 5}} {
		tr := NewTracker()
		if err := tr.CaptureReference(v); err != nil {
			t.Fatal(err)
		}
		yaw, pitch, err := tr.Update(v)
		if err != nil {
			t.Fatal(err)
		}
		if yaw != 0 || pitch != 0 {
			t.Errorf("Update(%v) against itself = (%v, %v), want (0, 0)", v, yaw, pitch)
		}
	}
}

func TestUpdateSameRandomDirectionIsZero(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		v := Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		if v.Len() == 0 {
			continue
		}
		tr := NewTracker()
		if err := tr.CaptureReference(v); err != nil {
			t.Fatal(err)
		}
		yaw, pitch, err := tr.Update(v)
		if err != nil {
			t.Fatal(err)
		}
		if yaw != 0 || pitch != 0 {
			t.Fatalf("Update(%v) against itself = (%v, %v), want (0, 0)", v, yaw, pitch)
		}
	}
}

func TestUpdateRejectsZeroDirection(t *testing.T) {
	t.Parallel()

	sink := &recorder{}
	tr := NewTracker(WithSink(sink))
	if err := tr.CaptureReference(Vec3{0, 0, -1}); err != nil {
		t.Fatal(err)
	}
	for _, v := range []Vec3{{}, {math.NaN(), 0, 0}, {math.Inf(1), 0, 0}} {
		if _, _, err := tr.Update(v); !errors.Is(err, ErrZeroDirection) {
			t.Errorf("Update(%v) error = %v, want ErrZeroDirection", v, err)
		}
	}
	if st := tr.State(); st.Updates != 0 {
		t.Errorf("Updates = %d after rejected directions, want 0", st.Updates)
	}
	if len(sink.calls) != 0 {
		t.Errorf("sink got %d calls, want 0", len(sink.calls))
	}
}

func TestYawSign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dir  Vec3
		want float64
	}{
		// +X is right and -Z forward: turning from +X toward -Z is a left
		// turn, compensated by a positive yaw.
		{"left toward -Z", Vec3{math.Cos(rad(30)), 0, -math.Sin(rad(30))}, 30},
		{"right toward +Z", Vec3{math.Cos(rad(30)), 0, math.Sin(rad(30))}, -30},
		{"quarter turn", Vec3{0, 0, -1}, 90},
		{"half turn", Vec3{-1, 0, 0}, 180},
		{"elevation ignored", Vec3{math.Cos(rad(30)), 0.7, -math.Sin(rad(30))}, 30},
	}

	for _, tc := range tests {
		tr := NewTracker()
		if err := tr.CaptureReference(Vec3{1, 0, 0}); err != nil {
			t.Fatal(err)
		}
		yaw, _, err := tr.Update(tc.dir)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(yaw-tc.want) > eps {
			t.Errorf("%s: yaw = %v, want %v", tc.name, yaw, tc.want)
		}
	}
}

func TestYawIsAntisymmetric(t *testing.T) {
	t.Parallel()

	for _, deg := range []float64{5, 45, 90, 135, 170} {
		tr := NewTracker()
		_ = tr.CaptureReference(Vec3{0, 0, -1})

		left, _, _ := tr.Update(Vec3{-math.Sin(rad(deg)), 0, -math.Cos(rad(deg))})
		right, _, _ := tr.Update(Vec3{math.Sin(rad(deg)), 0, -math.Cos(rad(deg))})

		if math.Abs(left+right) > eps || math.Abs(math.Abs(left)-deg) > eps {
			t.Errorf("%v degrees: left %v, right %v", deg, left, right)
		}
	}
}

func TestPitch(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	_ = tr.CaptureReference(Vec3{1, 0, 0})

	tests := []struct {
		name string
		dir  Vec3
		want float64
	}{
		{"look up", Vec3{math.Cos(rad(20)), math.Sin(rad(20)), 0}, -20},
		{"look down", Vec3{math.Cos(rad(20)), -math.Sin(rad(20)), 0}, 20},
		{"folded past vertical", Vec3{-math.Cos(rad(60)), math.Sin(rad(60)), 0}, -60},
		{"straight up", Vec3{0, 1, 0}, -90},
	}

	for _, tc := range tests {
		_, pitch, err := tr.Update(tc.dir)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(pitch-tc.want) > eps {
			t.Errorf("%s: pitch = %v, want %v", tc.name, pitch, tc.want)
		}
	}
}

func TestDegenerateProjections(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	_ = tr.CaptureReference(Vec3{1, 0, 0})

	// straight up has no horizontal component
	yaw, _, err := tr.Update(Vec3{0, 1, 0})
	if err != nil || yaw != 0 {
		t.Errorf("yaw looking straight up = %v, %v; want 0", yaw, err)
	}

	// along the depth axis there is no vertical-plane component
	_, pitch, err := tr.Update(Vec3{0, 0, -1})
	if err != nil || pitch != 0 {
		t.Errorf("pitch along depth axis = %v, %v; want 0", pitch, err)
	}
}

func TestCaptureReferenceErrors(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	if _, _, err := tr.Update(Vec3{1, 0, 0}); !errors.Is(err, ErrNoReference) {
		t.Errorf("Update before capture error = %v, want ErrNoReference", err)
	}
	if err := tr.CaptureReference(Vec3{}); !errors.Is(err, ErrZeroDirection) {
		t.Errorf("zero reference error = %v, want ErrZeroDirection", err)
	}
	if err := tr.CaptureReference(Vec3{0, 0, -3}); err != nil {
		t.Fatal(err)
	}
	if err := tr.CaptureReference(Vec3{1, 0, 0}); !errors.Is(err, ErrReferenceCaptured) {
		t.Errorf("second capture error = %v, want ErrReferenceCaptured", err)
	}

	st := tr.State()
	if !st.Captured || st.Reference != (Vec3{0, 0, -1}) {
		t.Errorf("State() = %+v", st)
	}
}

func TestUpdateFeedsSink(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	tr := NewTracker(WithSink(rec))
	_ = tr.CaptureReference(Vec3{0, 0, -1})

	yaw, pitch, _ := tr.Update(Vec3{-1, 0, -1})
	if len(rec.calls) != 1 || rec.calls[0] != [2]float64{yaw, pitch} {
		t.Fatalf("sink calls = %v, want one call with (%v, %v)", rec.calls, yaw, pitch)
	}
	if math.Abs(yaw-45) > eps {
		t.Errorf("yaw = %v, want 45", yaw)
	}

	st := tr.State()
	if st.Updates != 1 || st.Yaw != yaw || st.Pitch != pitch {
		t.Errorf("State() = %+v", st)
	}
}

func TestWithAxes(t *testing.T) {
	t.Parallel()

	// z-up frame: yaw is measured around Z
	tr := NewTracker(WithAxes(Vec3{0, 0, 1}, Vec3{0, 1, 0}))
	_ = tr.CaptureReference(Vec3{1, 0, 0})

	yaw, _, _ := tr.Update(Vec3{math.Cos(rad(30)), math.Sin(rad(30)), 0})
	if math.Abs(math.Abs(yaw)-30) > eps {
		t.Errorf("yaw = %v, want magnitude 30", yaw)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	t.Parallel()

	tr := NewTracker(WithSink(&recorder{}))
	_ = tr.CaptureReference(Vec3{0, 0, -1})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				a := rad(float64(i*100 + j))
				_, _, _ = tr.Update(Vec3{math.Sin(a), 0, -math.Cos(a)})
			}
		}()
	}
	wg.Wait()

	if got := tr.State().Updates; got != 800 {
		t.Errorf("Updates = %d, want 800", got)
	}
}
