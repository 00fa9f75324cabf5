// SPDX-License-Identifier: EPL-2.0

package utils

import goaudio "github.com/go-audio/audio"

// FloatToPCM scales x in [-1, 1] to an integer sample of bitDepth bits.
// Values outside the range are clamped. 8-bit PCM is unsigned.
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	v := int(x * float32(goaudio.IntMaxSignedValue(bitDepth)))
	if bitDepth == 8 {
		v += 128
	}
	return v
}

// PCMToFloat is the inverse of FloatToPCM, mapping full scale to [-1, 1).
func PCMToFloat(v, bitDepth int) float32 {
	if bitDepth == 8 {
		return float32(v-128) / 128
	}

	full := goaudio.IntMaxSignedValue(bitDepth) + 1
	if full <= 1 {
		return 0
	}
	return float32(float64(v) / float64(full))
}

func Float32ToInt16(x float32) int16 {
	return int16(FloatToPCM(x, 16))
}
