// SPDX-License-Identifier: EPL-2.0

// Package seekable adapts plain readers for the go-audio decoders, which
// need to seek.
package seekable

import (
	"bytes"
	"io"
)

// From returns r itself when it can seek and an in-memory copy otherwise.
func From(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
