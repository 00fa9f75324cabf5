// SPDX-License-Identifier: EPL-2.0

// Package orientation converts look directions into the yaw and pitch that
// counter-rotate the soundfield.
//
// The world frame is +Y up, -Z forward and +X right. Angles are returned
// in degrees relative to a reference direction captured once per session.
package orientation

import (
	"fmt"
	"math"
	"sync"
)

// Sink receives every computed angle pair. *ambisonic.Rotator satisfies it.
type Sink interface {
	SetOrientation(yaw, pitch float64)
}

// State is a snapshot of a Tracker.
type State struct {
	Reference Vec3    `json:"reference"`
	Captured  bool    `json:"captured"`
	Yaw       float64 `json:"yaw"`
	Pitch     float64 `json:"pitch"`
	Updates   uint64  `json:"updates"`
}

type Tracker struct {
	mu sync.Mutex

	sink  Sink
	up    Vec3
	depth Vec3

	ref      Vec3
	captured bool
	yaw      float64
	pitch    float64
	updates  uint64
}

type Option func(*Tracker)

// WithSink forwards every Update to s.
func WithSink(s Sink) Option {
	return func(t *Tracker) { t.sink = s }
}

// WithAxes replaces the default up (+Y) and depth (+Z) axes.
func WithAxes(up, depth Vec3) Option {
	return func(t *Tracker) {
		t.up = up
		t.depth = depth
	}
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{up: Up, depth: Depth}
	for _, o := range opts {
		o(t)
	}
	return t
}

// CaptureReference stores the reference direction. It can be called once.
func (t *Tracker) CaptureReference(v Vec3) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.captured {
		return ErrReferenceCaptured
	}
	ref, err := unit(v)
	if err != nil {
		return err
	}

	t.ref = ref
	t.captured = true
	return nil
}

// Update computes yaw and pitch of v against the reference and passes them
// to the sink, if any. A zero-length v is rejected.
func (t *Tracker) Update(v Vec3) (yaw, pitch float64, err error) {
	v, err = unit(v)
	if err != nil {
		return 0, 0, err
	}

	t.mu.Lock()
	if !t.captured {
		t.mu.Unlock()
		return 0, 0, ErrNoReference
	}

	yaw = t.azimuth(v)
	pitch = t.elevation(v)
	t.yaw, t.pitch = yaw, pitch
	t.updates++
	sink := t.sink
	t.mu.Unlock()

	if sink != nil {
		sink.SetOrientation(yaw, pitch)
	}
	return yaw, pitch, nil
}

// unit scales v to length one. Reference and updates go through the same
// arithmetic, so equal inputs give bit-identical projections.
func unit(v Vec3) (Vec3, error) {
	n := v.Len()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Vec3{}, ErrZeroDirection
	}
	return Vec3{v.X / n, v.Y / n, v.Z / n}, nil
}

func (t *Tracker) azimuth(v Vec3) float64 {
	cur := v.ProjectOnPlane(t.up)
	ref := t.ref.ProjectOnPlane(t.up)

	m := cur.AngleTo(ref)
	sign := -1.0
	if cur.Cross(ref).Dot(t.up) > 0 {
		sign = 1
	}

	return degrees(-sign * m)
}

func (t *Tracker) elevation(v Vec3) float64 {
	cur := v.ProjectOnPlane(t.depth)
	ref := t.ref.ProjectOnPlane(t.depth)

	m := cur.AngleTo(ref)
	if m > math.Pi/2 {
		m = math.Pi - m
	}
	sign := -1.0
	if cur.Cross(ref).Dot(t.depth) > 0 {
		sign = 1
	}

	return degrees(sign * m)
}

// degrees converts and maps -0 to 0.
func degrees(rad float64) float64 {
	d := rad * 180 / math.Pi
	if d == 0 {
		return 0
	}
	return d
}

// State returns the current snapshot.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return State{
		Reference: t.ref,
		Captured:  t.captured,
		Yaw:       t.yaw,
		Pitch:     t.pitch,
		Updates:   t.updates,
	}
}

func (s State) String() string {
	return fmt.Sprintf("yaw=%.2f pitch=%.2f", s.Yaw, s.Pitch)
}
