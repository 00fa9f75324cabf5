// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"

	"github.com/ik5/hoapbx/ambisonic"
	"github.com/ik5/hoapbx/audio"
)

// event is an asynchronous completion applied by dispatch.
type event interface {
	// loadID is the load the event belongs to.
	loadID() uint64
}

type sampleLoaded struct {
	load uint64
	buf  *audio.Buffer
}

type sampleFailed struct {
	load uint64
	err  error
}

func (e sampleLoaded) loadID() uint64 { return e.load }
func (e sampleFailed) loadID() uint64 { return e.load }

// dispatch applies ev if the controller is still in SampleLoading for the
// same load. Anything else, such as a completion after Stop, is dropped.
func (c *Controller) dispatch(ev event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != SampleLoading || ev.loadID() != c.loads {
		c.log.Debug("dropping stale load event", "state", c.state, "load", ev.loadID())
		return
	}

	switch e := ev.(type) {
	case sampleFailed:
		c.failLoad(e.err)
	case sampleLoaded:
		if err := c.play(e.buf); err != nil {
			c.failLoad(err)
			return
		}
		c.transition(Playing)
	}
}

// failLoad records a sample error. There is no retry; the controller stays
// in SampleLoading until stopped. Must be called with mu held.
func (c *Controller) failLoad(err error) {
	c.err = fmt.Errorf("%w: %s: %w", ErrSampleLoad, c.cfg.Src, err)
	c.sess.Metrics.LoadFailure("sample")
	c.log.Error("sample load failed", "src", c.cfg.Src, "error", err)
	c.notify()
}

// play connects a looping source for buf at the graph entry and starts
// the destination. Must be called with mu held.
func (c *Controller) play(buf *audio.Buffer) (err error) {
	var src audio.Source = audio.NewBufferSource(buf, true)
	defer func() {
		if err != nil {
			_ = src.Close()
		}
	}()

	if c.cfg.Mode == Positional {
		mix := audio.NewMonoMixer(src)
		if isAmbisonic(buf.Channels()) {
			// omnidirectional W only
			mix.Select(0)
		}
		src = mix
	}

	node := c.graph.AddSource("sample", src.Channels())
	defer func() {
		if err != nil {
			_ = c.graph.Remove(node)
		}
	}()
	if err := c.graph.Connect(node, 0, c.entry, 0); err != nil {
		return err
	}

	stages, gain, err := Chain(c.graph, node)
	if err != nil {
		return err
	}
	r, err := NewRenderer(src, stages, gain, c.sess.BlockSize, c.sess.Metrics)
	if err != nil {
		return err
	}

	var out audio.Source = r
	if rate := c.sess.Destination.SampleRate(); rate != buf.SampleRate {
		c.log.Info("resampling", "from", buf.SampleRate, "to", rate)
		out = audio.NewResampler(r, rate)
	}

	if err := c.sess.Destination.Start(out); err != nil {
		return fmt.Errorf("start destination: %w", err)
	}

	c.loaded = buf
	c.source = out
	c.log.Info("playing", "src", c.cfg.Src, "channels", buf.Channels(),
		"frames", buf.Frames(), "duration", buf.Duration())
	return nil
}

// isAmbisonic reports whether a channel count is (N+1)^2 for some N > 0.
func isAmbisonic(channels int) bool {
	_, err := ambisonic.OrderFromChannels(channels)
	return err == nil && channels > 1
}
