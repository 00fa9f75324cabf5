// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams through github.com/hajimehoshi/go-mp3.
//
// go-mp3 upmixes every stream to 16-bit stereo, so the decoder always
// reports two channels. That is enough for direct playback and for
// positional sources, not for ambisonic content.
package mp3
