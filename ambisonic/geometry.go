// SPDX-License-Identifier: EPL-2.0

package ambisonic

import (
	"fmt"
	"math"
)

// MaxOrder is the highest order accepted by this package.
const MaxOrder = 15

// ChannelCount returns (order+1)^2.
func ChannelCount(order int) (int, error) {
	if order < 0 || order > MaxOrder {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedOrder, order)
	}

	return (order + 1) * (order + 1), nil
}

// OrderFromChannels is the inverse of ChannelCount. channels must be a
// perfect square.
func OrderFromChannels(channels int) (int, error) {
	if channels < 1 {
		return 0, fmt.Errorf("%w: %d channels", ErrChannelMismatch, channels)
	}

	n := int(math.Sqrt(float64(channels)))
	for n*n > channels {
		n--
	}
	for (n+1)*(n+1) <= channels {
		n++
	}
	if n*n != channels || n-1 > MaxOrder {
		return 0, fmt.Errorf("%w: %d channels", ErrChannelMismatch, channels)
	}

	return n - 1, nil
}

// Degree returns the spherical-harmonic degree l and index m of ACN channel
// acn.
func Degree(acn int) (l, m int) {
	l = int(math.Sqrt(float64(acn)))
	for l*l > acn {
		l--
	}
	for (l+1)*(l+1) <= acn {
		l++
	}

	return l, acn - l*l - l
}

// Index returns the ACN channel number of degree l, index m.
func Index(l, m int) int {
	return l*l + l + m
}
