// SPDX-License-Identifier: EPL-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ik5/hoapbx/ambisonic"
	"github.com/ik5/hoapbx/audio"
	"github.com/ik5/hoapbx/decoder"
	"github.com/ik5/hoapbx/fetch"
	"github.com/ik5/hoapbx/graph"
	"github.com/ik5/hoapbx/orientation"
)

// Controller drives one session through Idle, GraphWired, SampleLoading
// and Playing. Stop moves it to Stopped from any state.
//
// All methods are safe for concurrent use. Sample loading runs in its own
// goroutine and reports back through events, which are applied only if
// the controller is still waiting for them.
type Controller struct {
	sess Session
	log  *slog.Logger

	mu      sync.Mutex
	state   State
	cfg     Config
	changed chan struct{}

	graph    *graph.Graph
	entry    graph.NodeID
	tail     graph.NodeID
	outNodes []graph.NodeID
	channels int

	converter *ambisonic.Converter
	rotator   *ambisonic.Rotator
	decoder   decoder.Decoder
	tracker   *orientation.Tracker

	loads    uint64
	starting bool
	cancel   context.CancelFunc
	loaded   *audio.Buffer
	source   audio.Source
	err      error
	wg       sync.WaitGroup
}

// NewController validates the session collaborators.
func NewController(s Session) (*Controller, error) {
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return &Controller{
		sess:    s,
		log:     s.Logger,
		changed: make(chan struct{}),
		graph:   graph.New(),
	}, nil
}

// transition must be called with mu held.
func (c *Controller) transition(to State) {
	c.log.Info("state transition", "from", c.state, "to", to)
	c.state = to
	c.sess.Metrics.Transition(to.String())
	c.notify()
}

// notify wakes every Wait. Must be called with mu held.
func (c *Controller) notify() {
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Controller) require(want State) error {
	switch c.state {
	case want:
		return nil
	case Stopped:
		return ErrStopped
	default:
		return fmt.Errorf("%w: %s, want %s", ErrInvalidTransition, c.state, want)
	}
}

// Setup builds the processing stages and the source side of the graph and
// captures cfg.Direction as the reference direction.
func (c *Controller) Setup(cfg Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(Idle); err != nil {
		return err
	}
	if cfg.Order == 0 {
		cfg.Order = 1
	}

	if err := c.setup(cfg); err != nil {
		c.teardown()
		return err
	}

	c.cfg = cfg
	c.transition(GraphWired)
	return nil
}

func (c *Controller) setup(cfg Config) error {
	tracker := orientation.NewTracker()

	if cfg.Mode == Positional {
		c.channels = 1
		c.entry = c.graph.AddGain("input", 1, 1)
		c.tail = c.entry
	} else {
		channels, err := ambisonic.ChannelCount(cfg.Order)
		if err != nil {
			return err
		}
		c.channels = channels

		if c.rotator, err = ambisonic.NewRotator(cfg.Order, c.sess.BlockSize); err != nil {
			return err
		}
		rot := c.graph.AddStage("rotator", c.rotator)
		c.entry = rot

		if cfg.Convention == ambisonic.FuMa {
			if c.converter, err = ambisonic.NewConverter(cfg.Order, ambisonic.FuMa, ambisonic.ACN); err != nil {
				return err
			}
			conv := c.graph.AddStage("fuma-to-acn", c.converter)
			if err := c.graph.Connect(conv, 0, rot, 0); err != nil {
				return err
			}
			c.entry = conv
		}
		c.tail = rot

		if cfg.MultichannelOut {
			c.decoder, err = decoder.NewMatrixDecoder(cfg.Order, c.sess.BlockSize)
		} else {
			c.decoder, err = decoder.NewBinauralDecoder(cfg.Order, c.sess.BlockSize)
		}
		if err != nil {
			return err
		}

		tracker = orientation.NewTracker(orientation.WithSink(c.rotator))
	}

	if err := tracker.CaptureReference(cfg.Direction); err != nil {
		return err
	}
	c.tracker = tracker

	c.log.Info("graph wired", "mode", cfg.Mode, "order", cfg.Order, "convention", cfg.Convention,
		"channels", c.channels, "nodes", c.graph.Len())
	return nil
}

// teardown drops everything Setup built. Must be called with mu held.
func (c *Controller) teardown() {
	c.graph.Release()
	c.outNodes = nil
	c.converter = nil
	c.rotator = nil
	if c.decoder != nil {
		c.decoder.Reset()
	}
	c.decoder = nil
	c.tracker = nil
}

// Start prepares the decoder and the destination and begins loading the
// sample in the background. A decoder that cannot be loaded or built is
// rolled back and the controller stays GraphWired.
//
// The decode document is fetched without holding the controller lock, so
// Stop, State and UpdateOrientation stay responsive and Stop cancels the
// fetch.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if err := c.require(GraphWired); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.starting {
		c.mu.Unlock()
		return fmt.Errorf("%w: start already in progress", ErrInvalidTransition)
	}

	loadCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loads++
	id := c.loads
	c.starting = true
	_, matrix := c.decoder.(*decoder.MatrixDecoder)
	file := c.cfg.DecoderFile
	c.mu.Unlock()

	var (
		doc []byte
		err error
	)
	if matrix {
		if doc, err = fetch.ReadAll(loadCtx, c.sess.Fetcher, file); err != nil {
			err = fmt.Errorf("decode matrix %s: %w", file, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.starting = false

	if c.state != GraphWired || c.loads != id {
		// stopped while the document was in flight
		cancel()
		if c.state == Stopped {
			return ErrStopped
		}
		return fmt.Errorf("%w: %s, want %s", ErrInvalidTransition, c.state, GraphWired)
	}

	if err == nil {
		err = c.wireOutput(doc)
	}
	if err != nil {
		cancel()
		c.cancel = nil
		c.rollbackOutput()
		c.sess.Metrics.LoadFailure("decoder")
		c.log.Error("decoder setup failed", "error", err)
		return err
	}

	c.err = nil
	c.transition(SampleLoading)

	c.wg.Add(1)
	go c.load(loadCtx, id, c.cfg)

	return nil
}

// wireOutput loads doc into a matrix decoder and builds the decoder, then
// connects the decoder, output gain and destination nodes. Must be called
// with mu held.
func (c *Controller) wireOutput(doc []byte) error {
	dest := c.sess.Destination
	width := c.channels
	from := c.tail

	if c.decoder != nil {
		if md, ok := c.decoder.(*decoder.MatrixDecoder); ok {
			speakers, err := md.Load(doc)
			if err != nil {
				return fmt.Errorf("decode matrix %s: %w", c.cfg.DecoderFile, err)
			}
			c.log.Info("decode matrix loaded", "file", c.cfg.DecoderFile, "speakers", speakers)
		}

		if err := c.decoder.Build(dest); err != nil {
			return err
		}

		dec := c.graph.AddStage("decoder", c.decoder)
		c.outNodes = append(c.outNodes, dec)
		if err := c.graph.Connect(from, 0, dec, 0); err != nil {
			return err
		}
		from, width = dec, c.decoder.Outputs()
	} else if err := dest.SetChannelCount(width); err != nil {
		return fmt.Errorf("%w: %w", decoder.ErrCapacity, err)
	}

	c.log.Info("destination channels declared", "channels", width, "max", dest.MaxChannelCount())

	gain := c.graph.AddGain("output-gain", width, c.cfg.Gain)
	out := c.graph.AddDestination("destination", width)
	c.outNodes = append(c.outNodes, gain, out)

	return c.graph.ConnectAll([]graph.Edge{
		{From: from, Output: 0, To: gain, Input: 0},
		{From: gain, Output: 0, To: out, Input: 0},
	})
}

// rollbackOutput removes whatever wireOutput added.
func (c *Controller) rollbackOutput() {
	for _, id := range c.outNodes {
		_ = c.graph.Remove(id)
	}
	c.outNodes = nil
	if c.decoder != nil {
		c.decoder.Reset()
	}
}

// load runs in its own goroutine and reports back as an event.
func (c *Controller) load(ctx context.Context, id uint64, cfg Config) {
	defer c.wg.Done()

	l := loader{fetcher: c.sess.Fetcher, codecs: c.sess.Codecs}
	buf, err := l.load(ctx, cfg, c.expectedChannels(cfg))
	if err != nil {
		c.dispatch(sampleFailed{load: id, err: err})
		return
	}
	c.dispatch(sampleLoaded{load: id, buf: buf})
}

func (c *Controller) expectedChannels(cfg Config) int {
	if cfg.Mode == Positional {
		return 0
	}
	n, _ := ambisonic.ChannelCount(cfg.Order)
	return n
}

// Stop cancels any outstanding load, closes the destination and releases
// the graph. Stopping twice is a no-op.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state == Stopped {
		c.mu.Unlock()
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	prev := c.state
	c.transition(Stopped)
	c.mu.Unlock()

	// a load still running sees Stopped and drops its result
	c.wg.Wait()

	var err error
	if prev >= SampleLoading {
		err = c.sess.Destination.Close()
	}

	// the destination no longer pulls, so the stages can go
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardown()
	if c.source != nil {
		err = errors.Join(err, c.source.Close())
		c.source = nil
	}
	c.loaded = nil
	return err
}

// Wait blocks until the controller is Playing or Stopped, or the sample
// failed to load, in which case the load error is returned.
func (c *Controller) Wait(ctx context.Context) (State, error) {
	for {
		c.mu.Lock()
		state, err, ch := c.state, c.err, c.changed
		c.mu.Unlock()

		switch {
		case err != nil:
			return state, err
		case state == Playing || state == Stopped:
			return state, nil
		case state == Idle:
			return state, fmt.Errorf("%w: not started", ErrInvalidTransition)
		}

		select {
		case <-ch:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

// UpdateOrientation applies a new look direction. It is accepted from
// GraphWired on.
func (c *Controller) UpdateOrientation(dir orientation.Vec3) error {
	c.mu.Lock()
	state, tracker := c.state, c.tracker
	c.mu.Unlock()

	switch state {
	case Stopped:
		return ErrStopped
	case Idle:
		return fmt.Errorf("%w: no reference direction yet", ErrInvalidTransition)
	}

	yaw, pitch, err := tracker.Update(dir)
	if err != nil {
		return err
	}
	c.sess.Metrics.Orientation(yaw, pitch)
	c.log.Debug("orientation", "yaw", yaw, "pitch", pitch)
	return nil
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status is a snapshot for monitoring.
type Status struct {
	State    State  `json:"state"`
	Mode     string `json:"mode"`
	Order    int    `json:"order"`
	Decoder  string `json:"decoder,omitempty"`
	Speakers int    `json:"speakers"`
	Nodes    int    `json:"nodes"`

	// SampleFrames is the length of the loaded sample, once Playing.
	SampleFrames int               `json:"sample_frames,omitempty"`
	Orientation  orientation.State `json:"orientation"`
	Error        string            `json:"error,omitempty"`
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		State:    c.state,
		Mode:     c.cfg.Mode.String(),
		Order:    c.cfg.Order,
		Speakers: c.sess.Destination.ChannelCount(),
		Nodes:    c.graph.Len(),
	}
	if c.decoder != nil {
		st.Decoder = c.decoder.Kind().String()
	}
	if c.loaded != nil {
		st.SampleFrames = c.loaded.Frames()
	}
	if c.tracker != nil {
		st.Orientation = c.tracker.State()
	}
	if c.err != nil {
		st.Error = c.err.Error()
	}
	return st
}

// Graph returns the top-level signal graph. It must not be modified.
func (c *Controller) Graph() *graph.Graph {
	return c.graph
}
