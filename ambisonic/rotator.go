// SPDX-License-Identifier: EPL-2.0

package ambisonic

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/ik5/hoapbx/internal/block"
)

// rotation is one published set of coefficients. It is never modified after
// it has been stored in Rotator.current.
type rotation struct {
	yaw, pitch float64
	identity   bool
	bands      [][][]float64
}

// Rotator is the soundfield rotation stage.
//
// SetOrientation may be called from any goroutine. Apply and ProcessBlock
// belong to the audio goroutine: they load the published rotation once per
// block and never lock or allocate.
type Rotator struct {
	order    int
	channels int
	maxBlock int

	current atomic.Pointer[rotation]
	mu      sync.Mutex // serialises writers only

	scratch []float64
}

// NewRotator returns a rotator for an order-N signal with blocks of at most
// maxBlock frames. It starts at the identity.
func NewRotator(order, maxBlock int) (*Rotator, error) {
	channels, err := ChannelCount(order)
	if err != nil {
		return nil, err
	}
	if maxBlock < 1 {
		maxBlock = 1
	}

	r := &Rotator{
		order:    order,
		channels: channels,
		maxBlock: maxBlock,
		scratch:  make([]float64, maxBlock),
	}
	r.current.Store(&rotation{identity: true, bands: shBands(cartesian(0, 0), order)})

	return r, nil
}

func (r *Rotator) Order() int   { return r.order }
func (r *Rotator) Inputs() int  { return r.channels }
func (r *Rotator) Outputs() int { return r.channels }

// SetOrientation publishes the rotation for yaw then pitch, in degrees.
// Calling it again with the same angles is a no-op.
func (r *Rotator) SetOrientation(yaw, pitch float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.current.Load()
	if cur.yaw == yaw && cur.pitch == pitch {
		return
	}

	next := &rotation{
		yaw:      yaw,
		pitch:    pitch,
		identity: yaw == 0 && pitch == 0,
	}
	next.bands = shBands(cartesian(yaw*math.Pi/180, pitch*math.Pi/180), r.order)
	r.current.Store(next)
}

// Orientation returns the published yaw and pitch in degrees.
func (r *Rotator) Orientation() (yaw, pitch float64) {
	cur := r.current.Load()
	return cur.yaw, cur.pitch
}

// Matrix returns a dense copy of the published ACN rotation matrix.
func (r *Rotator) Matrix() [][]float64 {
	cur := r.current.Load()

	m := make([][]float64, r.channels)
	for i := range m {
		m[i] = make([]float64, r.channels)
	}
	for l, b := range cur.bands {
		base := l * l
		for i, row := range b {
			copy(m[base+i][base:], row)
		}
	}

	return m
}

// Apply computes dst = R*src for one planar block. dst and src must hold
// Inputs() channels of equal length and must not share backing arrays.
func (r *Rotator) Apply(dst, src [][]float64) {
	cur := r.current.Load()

	if cur.identity {
		for c := range r.channels {
			copy(dst[c], src[c])
		}
		return
	}

	for l, b := range cur.bands {
		base := l * l
		for i, row := range b {
			out := dst[base+i]
			block.Zero(out)
			for j, g := range row {
				if g == 0 {
					continue
				}
				block.MulAcc(out, src[base+j], r.scratch, g)
			}
		}
	}
}

func (r *Rotator) ProcessBlock(dst, src [][]float64) { r.Apply(dst, src) }
