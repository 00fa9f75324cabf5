// SPDX-License-Identifier: EPL-2.0

package hoapbx

import (
	"fmt"
	"io"

	"github.com/ik5/hoapbx/ambisonic"
	"github.com/ik5/hoapbx/audio"
	"github.com/ik5/hoapbx/decoder"
	"github.com/ik5/hoapbx/graph"
	"github.com/ik5/hoapbx/session"
	"github.com/ik5/hoapbx/utils"
)

// RenderBinaural16 rotates an ACN/SN3D ambisonic source by yaw and pitch
// degrees, decodes it to binaural stereo and returns the whole result as
// interleaved 16-bit PCM at targetRate. The order is taken from the
// source's channel count.
//
// It is the offline shortcut for a fixed head orientation; for a moving
// listener use a session.Controller.
//
//	src, _ := wav.Decoder{}.Decode(f)
//	pcm16, rate, err := hoapbx.RenderBinaural16(src, 30, 0, 48000, 4096)
func RenderBinaural16(src audio.Source, yaw, pitch float64, targetRate, bufferSize int) ([]int16, int, error) {
	order, err := ambisonic.OrderFromChannels(src.Channels())
	if err != nil {
		return nil, targetRate, fmt.Errorf("render: %w", err)
	}

	const blockSize = 512
	rot, err := ambisonic.NewRotator(order, blockSize)
	if err != nil {
		return nil, targetRate, err
	}
	rot.SetOrientation(yaw, pitch)

	dec, err := decoder.NewBinauralDecoder(order, blockSize)
	if err != nil {
		return nil, targetRate, err
	}

	r, err := session.NewRenderer(src, []graph.Processor{rot, dec}, 1, blockSize, nil)
	if err != nil {
		return nil, targetRate, err
	}

	var out audio.Source = r
	if src.SampleRate() != targetRate {
		out = audio.NewResampler(r, targetRate)
	}

	bufferSize = max(bufferSize-bufferSize%2, 2)
	buf := make([]float32, bufferSize)
	pcm16 := make([]int16, 0, targetRate*2)

	for {
		n, err := out.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(v))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("render: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return pcm16, targetRate, nil
}
