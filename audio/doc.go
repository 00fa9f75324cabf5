// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM building blocks the renderer is made of.
//
// # Source Interface
//
// Source is the pull contract every stage implements:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 in [-1, 1]. An ambisonic source of order N
// carries (N+1)^2 channels in ACN order.
//
// # Decoded samples
//
// Scene samples are decoded completely before playback. ReadBuffer drains a
// Source into a planar Buffer, ConcatChannels stacks the buffers of a
// multi-file HOA sample, and BufferSource plays a Buffer back, looping:
//
//	buf, err := audio.ReadBuffer(src, 0)
//	loop := audio.NewBufferSource(buf, true)
//
// # Resampling
//
// The Resampler changes the sample rate using cubic interpolation, reading
// its source in blocks:
//
//	r := audio.NewResampler(renderer, 48000)
//
// # Channel Mixing
//
// MonoMixer averages all channels, or passes a single one through with
// Select. Positional playback uses Select(0) to keep only W.
//
// # Format Registry
//
// Decoders are registered by extension and picked by path:
//
//	reg := audio.NewRegistry()
//	reg.Register("ogg", vorbis.Decoder{})
//	dec, err := reg.ForPath("scene/foa.ogg")
//
// # Error Handling
//
// ReadSamples returns io.EOF at the end of the stream, possibly together
// with the last samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
