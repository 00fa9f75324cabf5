// SPDX-License-Identifier: EPL-2.0

package ambisonic

import (
	"github.com/ik5/hoapbx/internal/block"
)

// Converter is the block form of Convert. Output channel i is input channel
// perm[i] scaled by weight[i].
type Converter struct {
	from, to Convention
	perm     []int
	weight   []float64
}

// NewConverter prepares a converter for an order-N signal.
func NewConverter(order int, from, to Convention) (*Converter, error) {
	channels, err := ChannelCount(order)
	if err != nil {
		return nil, err
	}
	if err := checkConvention(from, order); err != nil {
		return nil, err
	}
	if err := checkConvention(to, order); err != nil {
		return nil, err
	}

	c := &Converter{
		from:   from,
		to:     to,
		perm:   make([]int, channels),
		weight: make([]float64, channels),
	}

	for i := range channels {
		switch {
		case from == to:
			c.perm[i], c.weight[i] = i, 1
		case from == FuMa:
			a := fumaToACN[i]
			c.perm[a], c.weight[a] = i, fumaWeight[i]
		default:
			c.perm[i], c.weight[i] = fumaToACN[i], 1/fumaWeight[i]
		}
	}

	return c, nil
}

func (c *Converter) From() Convention { return c.from }
func (c *Converter) To() Convention   { return c.to }
func (c *Converter) Inputs() int      { return len(c.perm) }
func (c *Converter) Outputs() int     { return len(c.perm) }

// ProcessBlock converts planar block src into dst. dst and src must be
// distinct channel sets.
func (c *Converter) ProcessBlock(dst, src [][]float64) {
	for i, p := range c.perm {
		block.Scale(dst[i], src[p], c.weight[i])
	}
}
