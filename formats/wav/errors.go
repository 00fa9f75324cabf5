// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a valid wav file")
	ErrUnsupportedWavLayout = errors.New("wav sample format is not integer PCM")
	ErrUnsupportedBitDepth  = errors.New("wav bit depth must be 8, 16, 24 or 32")
	ErrUnsupportedWavChunks = errors.New("wav file has no data chunk")
)
