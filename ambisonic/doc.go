// SPDX-License-Identifier: EPL-2.0

// Package ambisonic implements the channel-level math of higher-order
// ambisonics (HOA): channel geometry, ACN/FuMa conversion, SN3D spherical
// harmonics and the soundfield rotation stage.
//
// # Channel layout
//
// Channels are indexed with ACN (Ambisonic Channel Number). For degree l and
// index m (-l <= m <= l) the channel is l*l + l + m, so an order N signal
// carries (N+1)^2 channels:
//
//	n, err := ambisonic.ChannelCount(3) // 16
//
// Normalisation is SN3D ("ambiX"). Legacy Furse-Malham (FuMa) material is
// converted with Convert or a Converter before it reaches the rotator.
//
// # Rotation
//
// A Rotator counter-rotates the soundfield against the listener's yaw and
// pitch. Angles are in degrees. The control side publishes a new matrix with
// SetOrientation; the audio side calls Apply once per block and never
// blocks:
//
//	rot, _ := ambisonic.NewRotator(1, 512)
//	rot.SetOrientation(30, 0)
//	rot.Apply(dst, src)
//
// Planar blocks are [][]float64 indexed [channel][frame].
package ambisonic
