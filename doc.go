// SPDX-License-Identifier: EPL-2.0

// Package hoapbx renders higher-order ambisonic (HOA) soundfields for a
// listener who can turn their head.
//
// A soundfield of order N is carried in (N+1)² channels, ACN ordered and
// SN3D normalised. Playback rotates the field against the listener's yaw
// and pitch, then decodes it either to binaural stereo or to a
// loudspeaker layout described by a decode matrix.
//
// # Quick Start
//
// For a fixed head orientation, RenderBinaural16 does the whole chain in
// one call:
//
//	f, _ := os.Open("scene.wav") // 4, 9, 16... channels
//	src, _ := wav.Decoder{}.Decode(f)
//	pcm16, rate, err := hoapbx.RenderBinaural16(src, 30, 0, 48000, 4096)
//
// # Sessions
//
// A listener that moves is handled by session.Controller, which loads
// the sample, wires rotator, decoder and output gain into a graph and
// accepts orientation updates while it plays:
//
//	ctrl, _ := session.NewController(session.Session{
//		Destination: output.NewSpeaker(48000, 50*time.Millisecond),
//		Fetcher:     fetch.Default{},
//		Codecs:      formats.NewRegistry(),
//	})
//	_ = ctrl.Setup(session.Config{Order: 3, Src: "media/scene.ogg", Gain: 1,
//		Direction: orientation.Vec3{Z: -1}})
//	_ = ctrl.Start(ctx)
//	_ = ctrl.UpdateOrientation(orientation.Vec3{X: -1})
//
// Orientation can also come from a feed (feed.Sweep, feed.Redis) or over
// HTTP (package server). The hoapbx command wires all of these from a
// YAML or JSON file.
//
// # Packages
//
//   - ambisonic: channel geometry, spherical harmonics, conventions, rotation
//   - decoder: binaural and matrix decoders
//   - audio, formats: decoding WAV, MP3, Ogg Vorbis and AIFF samples
//   - output: speaker, WAV file, memory and null destinations
//   - session: the controller and the block renderer
package hoapbx
