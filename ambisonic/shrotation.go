// SPDX-License-Identifier: EPL-2.0

package ambisonic

import "math"

// cartesian returns the 3x3 rotation for yaw then pitch, in radians, rows and
// columns ordered x, y, z. Roll is fixed at zero.
func cartesian(yaw, pitch float64) [3][3]float64 {
	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)

	return [3][3]float64{
		{cp * cy, cp * sy, -sp},
		{-sy, cy, 0},
		{sp * cy, sp * sy, cp},
	}
}

// shBands expands a Cartesian rotation to real spherical-harmonic rotation
// blocks for bands 0..order with the Ivanic-Ruedenberg recurrence.
// bands[l] is (2l+1)x(2l+1), indexed [m+l][n+l].
func shBands(r [3][3]float64, order int) [][][]float64 {
	bands := make([][][]float64, order+1)
	bands[0] = [][]float64{{1}}
	if order == 0 {
		return bands
	}

	const x, y, z = 0, 1, 2
	// band 1 in ACN order y, z, x
	bands[1] = [][]float64{
		{r[y][y], r[y][z], r[y][x]},
		{r[z][y], r[z][z], r[z][x]},
		{r[x][y], r[x][z], r[x][x]},
	}

	for l := 2; l <= order; l++ {
		b := make([][]float64, 2*l+1)
		for m := -l; m <= l; m++ {
			row := make([]float64, 2*l+1)
			for n := -l; n <= l; n++ {
				row[n+l] = recurrence(bands[1], bands[l-1], l, m, n)
			}
			b[m+l] = row
		}
		bands[l] = b
	}

	return bands
}

func recurrence(r1, prev [][]float64, l, m, n int) float64 {
	d := 0
	if m == 0 {
		d = 1
	}
	am := abs(m)

	denom := (l + n) * (l - n)
	if abs(n) == l {
		denom = 2 * l * (2*l - 1)
	}
	fd := float64(denom)

	u := math.Sqrt(float64((l+m)*(l-m)) / fd)
	v := 0.5 * math.Sqrt(float64((1+d)*(l+am-1)*(l+am))/fd) * float64(1-2*d)
	w := -0.5 * math.Sqrt(float64((l-am-1)*(l-am))/fd) * float64(1-d)

	var sum float64
	if u != 0 {
		sum += u * termP(r1, prev, 0, l, m, n)
	}
	if v != 0 {
		sum += v * termV(r1, prev, l, m, n)
	}
	if w != 0 {
		sum += w * termW(r1, prev, l, m, n)
	}

	return sum
}

func termP(r1, prev [][]float64, i, l, a, b int) float64 {
	ri1 := r1[i+1][2]
	rim1 := r1[i+1][0]
	ri0 := r1[i+1][1]

	switch b {
	case -l:
		return ri1*prev[a+l-1][0] + rim1*prev[a+l-1][2*l-2]
	case l:
		return ri1*prev[a+l-1][2*l-2] - rim1*prev[a+l-1][0]
	default:
		return ri0 * prev[a+l-1][b+l-1]
	}
}

func termV(r1, prev [][]float64, l, m, n int) float64 {
	switch {
	case m == 0:
		return termP(r1, prev, 1, l, 1, n) + termP(r1, prev, -1, l, -1, n)
	case m > 0:
		if m == 1 {
			return termP(r1, prev, 1, l, 0, n) * math.Sqrt2
		}
		return termP(r1, prev, 1, l, m-1, n) - termP(r1, prev, -1, l, -m+1, n)
	default:
		if m == -1 {
			return termP(r1, prev, -1, l, 0, n) * math.Sqrt2
		}
		return termP(r1, prev, 1, l, m+1, n) + termP(r1, prev, -1, l, -m-1, n)
	}
}

func termW(r1, prev [][]float64, l, m, n int) float64 {
	if m > 0 {
		return termP(r1, prev, 1, l, m+1, n) + termP(r1, prev, -1, l, -m-1, n)
	}

	return termP(r1, prev, 1, l, m-1, n) - termP(r1, prev, -1, l, -m+1, n)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
