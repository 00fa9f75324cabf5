// SPDX-License-Identifier: EPL-2.0

package ambisonic

import "errors"

var (
	ErrUnsupportedOrder  = errors.New("unsupported ambisonic order")
	ErrUnknownConvention = errors.New("unknown channel convention")
	ErrChannelMismatch   = errors.New("channel count does not match order")
	ErrZeroVector        = errors.New("zero-length direction")
)
