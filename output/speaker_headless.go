// SPDX-License-Identifier: EPL-2.0

//go:build headless

package output

import "time"

// Speaker is a stereo Null in headless builds.
type Speaker struct {
	*Null
}

func NewSpeaker(sampleRate int, bufferSize time.Duration) *Speaker {
	return &Speaker{Null: NewNull(sampleRate, 2, bufferSize)}
}
