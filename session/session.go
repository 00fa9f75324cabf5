// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"log/slog"

	"github.com/ik5/hoapbx/ambisonic"
	"github.com/ik5/hoapbx/audio"
	"github.com/ik5/hoapbx/config"
	"github.com/ik5/hoapbx/fetch"
	"github.com/ik5/hoapbx/internal/logging"
	"github.com/ik5/hoapbx/internal/metrics"
	"github.com/ik5/hoapbx/orientation"
	"github.com/ik5/hoapbx/output"
)

// DefaultBlockSize is used when Session.BlockSize is zero.
const DefaultBlockSize = 512

// Session carries the collaborators a Controller works with. Nothing in
// this package reaches for globals; everything comes through here.
type Session struct {
	Destination output.Destination
	Fetcher     fetch.Fetcher
	Codecs      *audio.Registry
	Logger      *slog.Logger
	// Metrics may be nil.
	Metrics *metrics.Metrics
	// BlockSize is the number of frames processed per block.
	BlockSize int
}

func (s *Session) normalize() error {
	if s.Destination == nil || s.Fetcher == nil || s.Codecs == nil {
		return fmt.Errorf("%w: destination, fetcher and codecs are required", ErrIncompleteSession)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.BlockSize <= 0 {
		s.BlockSize = DefaultBlockSize
	}
	return nil
}

// Mode selects how the sample is played.
type Mode int

const (
	// Ambisonic decodes and rotates the sample.
	Ambisonic Mode = iota
	// Positional plays the sample as a plain mono signal.
	Positional
)

func (m Mode) String() string {
	if m == Positional {
		return config.TypePositional
	}
	return config.TypeAmbisonic
}

// Config describes one rendering session.
type Config struct {
	Mode       Mode
	Order      int
	Convention ambisonic.Convention
	// MultichannelOut selects the loudspeaker matrix decoder loaded from
	// DecoderFile instead of the built-in binaural decoder.
	MultichannelOut bool
	DecoderFile     string
	Src             string
	Gain            float64
	// Direction is the initial look direction, captured as the reference.
	Direction orientation.Vec3
}

// ConfigFrom maps a validated file configuration onto a session Config.
func ConfigFrom(c config.Config) (Config, error) {
	conv, err := ambisonic.ParseConvention(c.Audio.ChannelOrder)
	if err != nil {
		return Config{}, err
	}

	mode := Ambisonic
	if c.Audio.Type == config.TypePositional {
		mode = Positional
	}

	d := c.Camera.Direction
	return Config{
		Mode:            mode,
		Order:           c.Audio.Order,
		Convention:      conv,
		MultichannelOut: c.Audio.MultichannelOut,
		DecoderFile:     c.Audio.DecoderFile,
		Src:             c.Audio.Src,
		Gain:            c.Audio.Gain,
		Direction:       orientation.Vec3{X: d[0], Y: d[1], Z: d[2]},
	}, nil
}
