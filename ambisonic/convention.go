// SPDX-License-Identifier: EPL-2.0

package ambisonic

import (
	"fmt"
	"math"
	"strings"
)

// Convention is the channel ordering and normalisation of a signal.
type Convention int

const (
	// ACN is ACN ordering with SN3D normalisation (ambiX).
	ACN Convention = iota
	// FuMa is Furse-Malham ordering with maxN weights, orders 0..3 only.
	FuMa
)

// MaxFuMaOrder is the highest order FuMa defines.
const MaxFuMaOrder = 3

func (c Convention) String() string {
	switch c {
	case ACN:
		return "acn"
	case FuMa:
		return "fuma"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention accepts "acn", "ambix" and "fuma" in any case. An empty
// string selects ACN.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "acn", "ambix", "sn3d":
		return ACN, nil
	case "fuma", "furse-malham":
		return FuMa, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownConvention, s)
	}
}

// fumaToACN maps the FuMa channel letter order W X Y Z R S T U V K L M N O
// P Q to ACN channel numbers.
var fumaToACN = [16]int{0, 3, 1, 2, 6, 7, 5, 8, 4, 12, 13, 11, 14, 10, 15, 9}

// fumaWeight scales a FuMa channel to SN3D.
var fumaWeight = [16]float64{
	math.Sqrt2,
	1, 1, 1,
	1, 2 / math.Sqrt(3), 2 / math.Sqrt(3), 2 / math.Sqrt(3), 2 / math.Sqrt(3),
	1, math.Sqrt(45.0 / 32), math.Sqrt(45.0 / 32), 3 / math.Sqrt(5), 3 / math.Sqrt(5), math.Sqrt(8.0 / 5), math.Sqrt(8.0 / 5),
}

// Convert converts one frame from convention from to convention to.
// len(src) must be a valid channel count and dst must hold at least as many
// values. dst and src must not overlap unless from == to.
func Convert(dst, src []float64, from, to Convention) error {
	order, err := OrderFromChannels(len(src))
	if err != nil {
		return err
	}
	if len(dst) < len(src) {
		return fmt.Errorf("%w: dst holds %d of %d channels", ErrChannelMismatch, len(dst), len(src))
	}
	if err := checkConvention(from, order); err != nil {
		return err
	}
	if err := checkConvention(to, order); err != nil {
		return err
	}

	switch {
	case from == to:
		copy(dst, src)
	case from == FuMa:
		for f := range src {
			dst[fumaToACN[f]] = src[f] * fumaWeight[f]
		}
	default:
		for f := range src {
			dst[f] = src[fumaToACN[f]] / fumaWeight[f]
		}
	}

	return nil
}

func checkConvention(c Convention, order int) error {
	switch c {
	case ACN:
		return nil
	case FuMa:
		if order > MaxFuMaOrder {
			return fmt.Errorf("%w: FuMa is defined up to order %d, got %d", ErrUnsupportedOrder, MaxFuMaOrder, order)
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnknownConvention, c)
	}
}
