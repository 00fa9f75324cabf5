// SPDX-License-Identifier: EPL-2.0

package graph

import "errors"

var (
	ErrUnknownNode    = errors.New("unknown node")
	ErrPortOutOfRange = errors.New("port index out of range")
	ErrShapeMismatch  = errors.New("port channel widths differ")
)
