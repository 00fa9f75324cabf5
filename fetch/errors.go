// SPDX-License-Identifier: EPL-2.0

package fetch

import "errors"

var (
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	ErrStatus            = errors.New("unexpected HTTP status")
	ErrNotFound          = errors.New("resource not found")
)
