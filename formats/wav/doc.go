// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files through
// github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts 8, 16, 24 and 32-bit integer PCM with any number of
// channels, in the plain or WAVE_FORMAT_EXTENSIBLE layout. Ambisonic WAV
// files (ambiX) keep every channel:
//
//	src, err := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadBuffer(src, 0)
//
// Readers that cannot seek are buffered in memory first.
//
// # Encoding
//
// Writer streams interleaved float32 frames into a file:
//
//	w, err := wav.NewWriter(file, 48000, 2, 16)
//	err = w.Write(frames)
//	err = w.Close()
//
// Close rewrites the header sizes, so the target must be an io.WriteSeeker.
package wav
