// SPDX-License-Identifier: EPL-2.0

package decoder

import "errors"

var (
	ErrSchema            = errors.New("decode document does not match schema")
	ErrDimensionMismatch = errors.New("decode matrix row length does not match channel count")
	ErrCapacity          = errors.New("destination cannot take all speaker channels")
	ErrNotConfigured     = errors.New("decoder has no matrix loaded")
)
