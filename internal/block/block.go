// SPDX-License-Identifier: EPL-2.0

// Package block holds the planar block helpers shared by the processing
// stages. None of them allocate.
package block

import (
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Zero clears buf.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// MulAcc adds gain*src to dst. scratch is used as the temporary product
// buffer; blocks longer than scratch are processed in scratch-sized chunks.
func MulAcc(dst, src, scratch []float64, gain float64) {
	n := min(len(dst), len(src))
	if len(scratch) == 0 {
		for i := range n {
			dst[i] += gain * src[i]
		}
		return
	}

	for off := 0; off < n; off += len(scratch) {
		end := min(off+len(scratch), n)
		tmp := scratch[:end-off]
		vecmath.ScaleBlock(tmp, src[off:end], gain)
		vecmath.AddBlockInPlace(dst[off:end], tmp)
	}
}

// Scale sets dst = gain*src.
func Scale(dst, src []float64, gain float64) {
	n := min(len(dst), len(src))
	vecmath.ScaleBlock(dst[:n], src[:n], gain)
}

// View re-slices every channel of bufs to frames samples and returns the
// first width channels. views must have capacity for width entries; it is
// reused so the call does not allocate.
func View(views, bufs [][]float64, width, frames int) [][]float64 {
	v := views[:width]
	for i := range v {
		v[i] = bufs[i][:frames]
	}
	return v
}

// Planar allocates channels buffers of frames samples each.
func Planar(channels, frames int) [][]float64 {
	bufs := make([][]float64, channels)
	for i := range bufs {
		bufs[i] = make([]float64, frames)
	}
	return bufs
}
