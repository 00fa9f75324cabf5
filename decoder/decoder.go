// SPDX-License-Identifier: EPL-2.0

// Package decoder turns an ACN/SN3D ambisonic block into speaker feeds.
//
// Two variants implement Decoder: MatrixDecoder, driven by an external
// decode-matrix document, and BinauralDecoder, a fixed two-ear decoder used
// when no loudspeaker layout is configured.
package decoder

import "fmt"

// Kind selects the decoder variant.
type Kind int

const (
	Binaural Kind = iota
	Matrix
)

func (k Kind) String() string {
	switch k {
	case Binaural:
		return "binaural"
	case Matrix:
		return "matrix"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// State is the lifecycle of a decoder.
type State int

const (
	Unconfigured State = iota
	Configured
	Built
)

func (s State) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case Configured:
		return "configured"
	case Built:
		return "built"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Capacity is the part of a destination a decoder negotiates with.
type Capacity interface {
	MaxChannelCount() int
	SetChannelCount(n int) error
}

// Decoder is implemented by *MatrixDecoder and *BinauralDecoder.
type Decoder interface {
	Kind() Kind
	State() State

	// Load parses a decode document and returns the speaker count.
	Load(doc []byte) (speakers int, err error)
	// Build checks dest can take the speaker feeds and wires the decoder.
	Build(dest Capacity) error
	// Reset drops everything Build wired.
	Reset()

	SpeakerCount() int
	Inputs() int
	Outputs() int
	ProcessBlock(dst, src [][]float64)
}

var (
	_ Decoder = (*MatrixDecoder)(nil)
	_ Decoder = (*BinauralDecoder)(nil)
)

func checkCapacity(dest Capacity, speakers int) error {
	if limit := dest.MaxChannelCount(); limit < speakers {
		return fmt.Errorf("%w: %d speakers, destination takes %d channels", ErrCapacity, speakers, limit)
	}
	if err := dest.SetChannelCount(speakers); err != nil {
		return fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	return nil
}
