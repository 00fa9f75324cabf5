// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		x        float32
		bitDepth int
		want     int
	}{
		{"16-bit full scale", 1, 16, 32767},
		{"16-bit negative full scale", -1, 16, -32767},
		{"16-bit clamps", 2, 16, 32767},
		{"16-bit half", 0.5, 16, 16383},
		{"8-bit silence", 0, 8, 128},
		{"8-bit full scale", 1, 8, 255},
		{"24-bit full scale", 1, 24, 8388607},
		{"32-bit silence", 0, 32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FloatToPCM(tt.x, tt.bitDepth); got != tt.want {
				t.Errorf("FloatToPCM(%v, %d) = %d, want %d", tt.x, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestPCMRoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{8, 16, 24, 32} {
		for _, x := range []float32{-0.75, -0.1, 0, 0.3, 0.9} {
			got := PCMToFloat(FloatToPCM(x, depth), depth)
			tol := 2.0 / float64(int(1)<<(depth-1))
			if math.Abs(float64(got-x)) > tol+1e-6 {
				t.Errorf("%d-bit round trip of %v = %v", depth, x, got)
			}
		}
	}
}

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	if got := Float32ToInt16(-3); got != -32767 {
		t.Errorf("Float32ToInt16(-3) = %d, want -32767", got)
	}
	if got := Float32ToInt16(0); got != 0 {
		t.Errorf("Float32ToInt16(0) = %d, want 0", got)
	}
}
