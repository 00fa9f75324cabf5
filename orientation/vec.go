// SPDX-License-Identifier: EPL-2.0

package orientation

import "math"

// Vec3 is a world-space vector.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

var (
	Up    = Vec3{0, 1, 0}
	Depth = Vec3{0, 0, 1}
)

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Len() float64         { return math.Sqrt(a.Dot(a)) }

// ProjectOnPlane removes the component of a along the plane normal n.
func (a Vec3) ProjectOnPlane(n Vec3) Vec3 {
	nn := n.Dot(n)
	if nn == 0 {
		return a
	}
	return a.Sub(n.Scale(a.Dot(n) / nn))
}

// AngleTo returns the unsigned angle between a and b in radians, in
// [0, pi]. It is 0 when either vector has zero length.
func (a Vec3) AngleTo(b Vec3) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return 0
	}
	return math.Atan2(a.Cross(b).Len(), a.Dot(b))
}
