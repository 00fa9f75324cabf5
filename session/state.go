// SPDX-License-Identifier: EPL-2.0

package session

import "fmt"

// State is the playback state of a Controller.
type State int

const (
	Idle State = iota
	GraphWired
	SampleLoading
	Playing
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case GraphWired:
		return "GraphWired"
	case SampleLoading:
		return "SampleLoading"
	case Playing:
		return "Playing"
	case Stopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText lets State appear by name in JSON status documents.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
