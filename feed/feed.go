// SPDX-License-Identifier: EPL-2.0

// Package feed produces look directions for a running session: a
// synthetic sweep for demos and offline renders, and a Redis pub/sub
// subscriber for external head trackers.
package feed

import (
	"context"
	"math"

	"github.com/ik5/hoapbx/orientation"
)

// Target receives look directions. *session.Controller satisfies it.
type Target interface {
	UpdateOrientation(dir orientation.Vec3) error
}

// Feed runs until ctx is done or its input ends.
type Feed interface {
	Run(ctx context.Context, target Target) error
}

var (
	_ Feed = (*Sweep)(nil)
	_ Feed = (*Redis)(nil)
)

// Direction returns the horizontal look direction turned by azimuth
// degrees from -Z. Positive azimuth turns left, toward -X.
func Direction(azimuth float64) orientation.Vec3 {
	s, c := math.Sincos(azimuth * math.Pi / 180)
	return orientation.Vec3{X: -s, Y: 0, Z: -c}
}
