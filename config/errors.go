// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	ErrSyntax             = errors.New("malformed configuration")
	ErrMissingSource      = errors.New("audio.src is required")
	ErrMissingDecoderFile = errors.New("audio.decoder_file is required when multichannel_out is set")
	ErrUnknownType        = errors.New("unknown type")
	ErrInvalidValue       = errors.New("invalid configuration value")
)
