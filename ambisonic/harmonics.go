// SPDX-License-Identifier: EPL-2.0

package ambisonic

import "math"

// Encode writes the SN3D real spherical harmonics of the direction
// (azimuth, elevation), in degrees, into dst. The order is taken from
// len(dst). Azimuth is counter-clockwise from the front, elevation is up
// from the horizontal plane. There is no Condon-Shortley phase, so ACN 1, 2
// and 3 carry y, z and x of the unit vector.
func Encode(dst []float64, azimuth, elevation float64) error {
	order, err := OrderFromChannels(len(dst))
	if err != nil {
		return err
	}

	az := azimuth * math.Pi / 180
	el := elevation * math.Pi / 180
	sinEl := math.Sin(el)
	cosEl := math.Cos(el)

	for l := 0; l <= order; l++ {
		for m := 0; m <= l; m++ {
			p := legendre(l, m, sinEl, cosEl) * sn3d(l, m)
			if m == 0 {
				dst[Index(l, 0)] = p
				continue
			}
			fm := float64(m)
			dst[Index(l, m)] = p * math.Cos(fm*az)
			dst[Index(l, -m)] = p * math.Sin(fm*az)
		}
	}

	return nil
}

// EncodeVector is Encode for a Cartesian direction in the ambisonic frame
// (x front, y left, z up). v need not be normalised.
func EncodeVector(dst []float64, x, y, z float64) error {
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return ErrZeroVector
	}

	az := math.Atan2(y, x) * 180 / math.Pi
	el := math.Asin(z/r) * 180 / math.Pi

	return Encode(dst, az, el)
}

// legendre evaluates the associated Legendre function P_l^m at x = sin(el)
// without the Condon-Shortley phase. s is sqrt(1-x^2) = cos(el).
func legendre(l, m int, x, s float64) float64 {
	pmm := 1.0
	for i := 1; i <= m; i++ {
		pmm *= float64(2*i-1) * s
	}
	if l == m {
		return pmm
	}

	pm1 := x * float64(2*m+1) * pmm
	if l == m+1 {
		return pm1
	}

	var pl float64
	for ll := m + 2; ll <= l; ll++ {
		pl = (float64(2*ll-1)*x*pm1 - float64(ll+m-1)*pmm) / float64(ll-m)
		pmm, pm1 = pm1, pl
	}

	return pl
}

// sn3d is sqrt((2-delta_m0) (l-m)!/(l+m)!).
func sn3d(l, m int) float64 {
	ratio := 1.0
	for k := l - m + 1; k <= l+m; k++ {
		ratio /= float64(k)
	}
	if m != 0 {
		ratio *= 2
	}

	return math.Sqrt(ratio)
}
