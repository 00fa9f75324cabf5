// SPDX-License-Identifier: EPL-2.0

package session

import "errors"

var (
	ErrSampleLoad         = errors.New("sample load failed")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrStopped            = errors.New("session stopped")
	ErrIncompleteSession  = errors.New("session is missing a collaborator")
	ErrUnexpectedChannels = errors.New("sample has an unexpected channel count")
)
