// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
)

// ErrBroken is returned by FailingSource.
var ErrBroken = errors.New("audiotest: broken source")

// FailingSource yields good frames and then fails with ErrBroken.
type FailingSource struct {
	*MockSource
	after int
}

// NewFailingSource fails once after frames have been produced.
func NewFailingSource(sampleRate, channels, after int) *FailingSource {
	return &FailingSource{
		MockSource: NewConstantSource(sampleRate, channels, -1, 0.25),
		after:      after,
	}
}

func (f *FailingSource) ReadSamples(dst []float32) (int, error) {
	left := f.after - f.Generated()
	if left <= 0 {
		return 0, ErrBroken
	}
	channels := f.Channels()
	n := min(len(dst), left*channels)
	got, err := f.MockSource.ReadSamples(dst[:n])
	if err != nil && err != io.EOF {
		return got, err
	}
	return got, nil
}
