// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"math"

	"github.com/ik5/hoapbx/ambisonic"
	"github.com/ik5/hoapbx/internal/logging"
)

// Validate normalises cfg in place and reports the first invalid value.
// An order of zero is read as first order.
func (c *Config) Validate() error {
	a := &c.Audio

	switch a.Type {
	case TypeAmbisonic, TypePositional:
	default:
		return fmt.Errorf("%w: audio.type %q", ErrUnknownType, a.Type)
	}

	if a.Order == 0 {
		a.Order = 1
	}
	if _, err := ambisonic.ChannelCount(a.Order); err != nil {
		return fmt.Errorf("audio.order: %w", err)
	}

	conv, err := ambisonic.ParseConvention(a.ChannelOrder)
	if err != nil {
		return fmt.Errorf("audio.channel_order: %w", err)
	}
	if conv == ambisonic.FuMa && a.Order > ambisonic.MaxFuMaOrder {
		return fmt.Errorf("audio.channel_order: %w: fuma at order %d", ambisonic.ErrUnsupportedOrder, a.Order)
	}

	if a.Src == "" {
		return ErrMissingSource
	}
	if a.Type == TypeAmbisonic && a.MultichannelOut && a.DecoderFile == "" {
		return ErrMissingDecoderFile
	}
	if a.Gain < 0 || math.IsNaN(a.Gain) {
		return fmt.Errorf("%w: audio.gain %v", ErrInvalidValue, a.Gain)
	}

	if c.Camera.Direction == [3]float64{} {
		return fmt.Errorf("%w: camera.direction is the zero vector", ErrInvalidValue)
	}

	o := &c.Output
	switch o.Kind {
	case OutputSpeaker, OutputNull:
	case OutputWAV:
		if o.Path == "" {
			return fmt.Errorf("%w: output.path is required for wav output", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: output.kind %q", ErrUnknownType, o.Kind)
	}
	if o.SampleRate <= 0 || o.BlockSize <= 0 || o.MaxChannels <= 0 {
		return fmt.Errorf("%w: output sample_rate, block_size and max_channels must be positive", ErrInvalidValue)
	}

	switch c.Feed.Kind {
	case FeedNone, FeedSweep, FeedRedis:
	default:
		return fmt.Errorf("%w: feed.kind %q", ErrUnknownType, c.Feed.Kind)
	}
	if c.Feed.Kind != FeedNone && c.Feed.Interval <= 0 {
		return fmt.Errorf("%w: feed.interval must be positive", ErrInvalidValue)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	return nil
}
