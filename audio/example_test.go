// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/hoapbx/audio"
	"github.com/ik5/hoapbx/internal/audiotest"
)

// A decoded sample is played in a loop, the way a session feeds its
// renderer.
func ExampleBufferSource() {
	buf := audio.NewBuffer(48000, 1, 3)
	copy(buf.Data[0], []float32{0.1, 0.2, 0.3})

	src := audio.NewBufferSource(buf, true)
	out := make([]float32, 7)
	n, _ := src.ReadSamples(out)

	fmt.Println(n, out)
	// Output:
	// 7 [0.1 0.2 0.3 0.1 0.2 0.3 0.1]
}

// Multi-file HOA samples are stacked channel-wise after decoding.
func ExampleConcatChannels() {
	first := audio.NewBuffer(48000, 8, 480)
	second := audio.NewBuffer(48000, 8, 480)

	hoa, err := audio.ConcatChannels(first, second)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d channels, %v\n", hoa.Channels(), hoa.Duration())
	// Output:
	// 16 channels, 10ms
}

// In positional mode only the omnidirectional channel of an ambisonic
// sample is played.
func ExampleMonoMixer_Select() {
	src := audiotest.NewMockSource(48000, 4, 4, func(_, ch int) float32 {
		return float32(ch + 1)
	})

	omni := audio.NewMonoMixer(src).Select(0)
	out := make([]float32, 4)
	n, _ := omni.ReadSamples(out)

	fmt.Println(n, out)
	// Output:
	// 4 [1 1 1 1]
}

func ExampleResampler() {
	src := audiotest.NewConstantSource(24000, 4, 2400, 0.5)
	r := audio.NewResampler(src, 48000)

	buf, err := audio.ReadBuffer(r, 4*256)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d Hz, %d channels, first sample %.2f\n", buf.SampleRate, buf.Channels(), buf.Data[0][0])
	// Output:
	// 48000 Hz, 4 channels, first sample 0.50
}
