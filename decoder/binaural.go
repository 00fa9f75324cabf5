// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"github.com/ik5/hoapbx/ambisonic"
	"github.com/ik5/hoapbx/internal/block"
)

// Ear azimuths in degrees, counter-clockwise from the front.
const (
	LeftEar  = 90.0
	RightEar = -90.0
)

// BinauralDecoder renders two virtual microphones pointing at the ears. The
// pattern uses in-phase weighting per degree and is scaled so a source on a
// microphone axis passes at unity gain.
type BinauralDecoder struct {
	order    int
	channels int
	state    State

	coef    [2][]float64
	scratch []float64
}

func NewBinauralDecoder(order, maxBlock int) (*BinauralDecoder, error) {
	channels, err := ambisonic.ChannelCount(order)
	if err != nil {
		return nil, err
	}

	d := &BinauralDecoder{
		order:    order,
		channels: channels,
		state:    Configured,
		scratch:  make([]float64, max(maxBlock, 1)),
	}

	weights := inPhaseWeights(order)
	var norm float64
	for _, w := range weights {
		norm += w
	}

	for ear, az := range [2]float64{LeftEar, RightEar} {
		c := make([]float64, channels)
		if err := ambisonic.Encode(c, az, 0); err != nil {
			return nil, err
		}
		for i := range c {
			l, _ := ambisonic.Degree(i)
			c[i] *= weights[l] / norm
		}
		d.coef[ear] = c
	}

	return d, nil
}

// inPhaseWeights returns N!(N+1)!/((N+l+1)!(N-l)!) for l = 0..N.
func inPhaseWeights(order int) []float64 {
	w := make([]float64, order+1)
	w[0] = 1
	for l := 1; l <= order; l++ {
		// ratio of consecutive terms: (N-l+1)/(N+l+1)
		w[l] = w[l-1] * float64(order-l+1) / float64(order+l+1)
	}
	return w
}

func (d *BinauralDecoder) Kind() Kind        { return Binaural }
func (d *BinauralDecoder) State() State      { return d.state }
func (d *BinauralDecoder) SpeakerCount() int { return 2 }
func (d *BinauralDecoder) Inputs() int       { return d.channels }
func (d *BinauralDecoder) Outputs() int      { return 2 }

// Coefficients returns the per-channel gains of the left (0) or right (1)
// ear.
func (d *BinauralDecoder) Coefficients(ear int) []float64 {
	return append([]float64(nil), d.coef[ear]...)
}

// Load ignores doc; the coefficients are built in.
func (d *BinauralDecoder) Load([]byte) (int, error) { return 2, nil }

func (d *BinauralDecoder) Build(dest Capacity) error {
	if err := checkCapacity(dest, 2); err != nil {
		return err
	}
	d.state = Built
	return nil
}

func (d *BinauralDecoder) Reset() { d.state = Configured }

func (d *BinauralDecoder) ProcessBlock(dst, src [][]float64) {
	for ear := range 2 {
		block.Zero(dst[ear])
		for c, g := range d.coef[ear] {
			if g == 0 {
				continue
			}
			block.MulAcc(dst[ear], src[c], d.scratch, g)
		}
	}
}
