// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrNotMP3Stream indicates go-mp3 found no decodable frame header
var ErrNotMP3Stream = errors.New("not an MP3 stream")
