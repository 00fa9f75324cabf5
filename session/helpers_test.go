// SPDX-License-Identifier: EPL-2.0

package session

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/hoapbx/ambisonic"
	"github.com/ik5/hoapbx/audio"
	"github.com/ik5/hoapbx/fetch"
	"github.com/ik5/hoapbx/formats"
	"github.com/ik5/hoapbx/formats/wav"
	"github.com/ik5/hoapbx/internal/logging"
	"github.com/ik5/hoapbx/output"
	"github.com/stretchr/testify/require"
)

const testRate = 48000

// wavBytes encodes frames of a channels-wide signal as 16-bit WAV.
func wavBytes(t *testing.T, channels, frames int, value func(n, ch int) float64) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	w, err := wav.NewWriter(f, testRate, channels, 16)
	require.NoError(t, err)

	samples := make([]float32, channels*frames)
	for n := range frames {
		for ch := range channels {
			samples[n*channels+ch] = float32(value(n, ch))
		}
	}
	require.NoError(t, w.Write(samples))
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// encodedTone is a 1 kHz sine of amplitude 0.5 placed at azimuth az on
// the horizontal plane. 4800 frames hold exactly 100 periods, so it loops
// without a click.
func encodedTone(t *testing.T, order int, az float64) []byte {
	t.Helper()

	channels, err := ambisonic.ChannelCount(order)
	require.NoError(t, err)
	gains := make([]float64, channels)
	require.NoError(t, ambisonic.Encode(gains, az, 0))

	return wavBytes(t, channels, 4800, func(n, ch int) float64 {
		return 0.5 * gains[ch] * math.Sin(2*math.Pi*1000*float64(n)/testRate)
	})
}

func constant(values ...float64) func(int, int) float64 {
	return func(_, ch int) float64 { return values[ch] }
}

func newTestSession(files fetch.Fetcher, dest output.Destination) Session {
	return Session{
		Destination: dest,
		Fetcher:     files,
		Codecs:      formats.NewRegistry(),
		Logger:      logging.NewNop(),
		BlockSize:   256,
	}
}

func newTestController(t *testing.T, files fetch.Fetcher, dest output.Destination) *Controller {
	t.Helper()

	c, err := NewController(newTestSession(files, dest))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Stop() })
	return c
}

// rms returns the RMS of every channel of the last frames captured.
func rms(data [][]float32, frames int) []float64 {
	out := make([]float64, len(data))
	for c, ch := range data {
		tail := ch[len(ch)-frames:]
		var sum float64
		for _, v := range tail {
			sum += float64(v) * float64(v)
		}
		out[c] = math.Sqrt(sum / float64(frames))
	}
	return out
}

// blockingFetcher waits for ctx before failing, like a slow network.
type blockingFetcher struct {
	started chan struct{}
}

func (b blockingFetcher) Fetch(ctx context.Context, _ string) (io.ReadCloser, error) {
	close(b.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

// busyDestination refuses to start, like a device held by another process.
type busyDestination struct {
	*output.Memory
}

var errDeviceBusy = errors.New("device busy")

func (busyDestination) Start(audio.Source) error { return errDeviceBusy }
