// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var (
	ErrChannelCount   = errors.New("channel count not supported by destination")
	ErrNoChannelCount = errors.New("channel count not declared")
	ErrStarted        = errors.New("destination already started")
	ErrClosed         = errors.New("destination closed")
)
