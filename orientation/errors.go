// SPDX-License-Identifier: EPL-2.0

package orientation

import "errors"

var (
	ErrNoReference       = errors.New("reference direction not captured")
	ErrReferenceCaptured = errors.New("reference direction already captured")
	ErrZeroDirection     = errors.New("direction has zero length")
)
