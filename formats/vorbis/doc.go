// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// The decoder keeps every channel of the stream, so a four channel Vorbis
// file decodes as first-order ambisonics. Samples come out in the order
// they were stored; no Vorbis channel mapping is applied.
package vorbis
