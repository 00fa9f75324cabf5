// SPDX-License-Identifier: EPL-2.0

// Package output holds the destinations a rendered soundfield is played
// into: the system speaker (oto), a WAV file, an in-memory capture or a
// paced sink that drops everything.
//
// A destination first advertises how many channels it can take. The
// decoder declares the channel count it will produce with
// SetChannelCount, then Start hands over the rendered source, which the
// destination pulls from its own goroutine.
package output

import (
	"fmt"

	"github.com/ik5/hoapbx/audio"
)

type Destination interface {
	// MaxChannelCount is the largest channel count SetChannelCount accepts.
	MaxChannelCount() int
	SetChannelCount(n int) error
	// ChannelCount is the declared count, or zero before SetChannelCount.
	ChannelCount() int
	SampleRate() int
	// Start begins pulling from src. src.Channels() must match the
	// declared channel count.
	Start(src audio.Source) error
	// Close stops pulling and releases the device or file.
	Close() error
}

var (
	_ Destination = (*Speaker)(nil)
	_ Destination = (*WAVFile)(nil)
	_ Destination = (*Memory)(nil)
	_ Destination = (*Null)(nil)
)

// channels is the channel negotiation shared by every destination.
type channels struct {
	limit    int
	declared int
}

func (c *channels) MaxChannelCount() int { return c.limit }
func (c *channels) ChannelCount() int    { return c.declared }

func (c *channels) SetChannelCount(n int) error {
	if n < 1 || n > c.limit {
		return fmt.Errorf("%w: %d requested, %d available", ErrChannelCount, n, c.limit)
	}
	c.declared = n
	return nil
}

func (c *channels) check(src audio.Source) error {
	if c.declared == 0 {
		return ErrNoChannelCount
	}
	if src.Channels() != c.declared {
		return fmt.Errorf("%w: source has %d channels, %d declared", ErrChannelCount, src.Channels(), c.declared)
	}
	return nil
}
