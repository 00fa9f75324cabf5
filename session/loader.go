// SPDX-License-Identifier: EPL-2.0

package session

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/ik5/hoapbx/audio"
	"github.com/ik5/hoapbx/fetch"
)

// filesPerGroup is the channel count of each file of a split HOA sample.
const filesPerGroup = 8

// HOAFileNames lists the files a split HOA sample of the given channel
// count is stored in: base_01-08ch.ext, base_09-16ch.ext and so on, the
// last one ending at the channel count.
func HOAFileNames(base, ext string, channels int) []string {
	ext = strings.TrimPrefix(ext, ".")

	var names []string
	for first := 1; first <= channels; first += filesPerGroup {
		last := min(first+filesPerGroup-1, channels)
		names = append(names, fmt.Sprintf("%s_%02d-%02dch.%s", base, first, last, ext))
	}
	return names
}

// splitURL separates the extension of u, ignoring any query or fragment,
// which is kept on every generated name.
func splitURL(u string) (base, ext, suffix string) {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u, suffix = u[:i], u[i:]
	}
	ext = path.Ext(u)
	return strings.TrimSuffix(u, ext), ext, suffix
}

// loader fetches and decodes samples.
type loader struct {
	fetcher fetch.Fetcher
	codecs  *audio.Registry
}

// single fetches and fully decodes one file.
func (l loader) single(ctx context.Context, url string) (*audio.Buffer, error) {
	dec, err := l.codecs.ForPath(url)
	if err != nil {
		return nil, err
	}

	rc, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	src, err := dec.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	buf, err := audio.ReadBuffer(src, 0)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	if buf.Frames() == 0 {
		return nil, fmt.Errorf("decode %s: %w", url, audio.ErrEmptyBuffer)
	}
	return buf, nil
}

// hoa loads a sample split over several files and stacks their channels.
func (l loader) hoa(ctx context.Context, url string, channels int) (*audio.Buffer, error) {
	base, ext, suffix := splitURL(url)
	names := HOAFileNames(base, ext, channels)

	parts := make([]*audio.Buffer, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := l.single(ctx, name+suffix)
		if err != nil {
			return nil, err
		}
		parts = append(parts, b)
	}
	return audio.ConcatChannels(parts...)
}

// load picks the single-file path for first order and the split loader for
// every other order. positional samples are always single files.
func (l loader) load(ctx context.Context, cfg Config, channels int) (*audio.Buffer, error) {
	if cfg.Mode == Positional {
		return l.single(ctx, cfg.Src)
	}

	var (
		buf *audio.Buffer
		err error
	)
	if cfg.Order == 1 {
		buf, err = l.single(ctx, cfg.Src)
	} else {
		buf, err = l.hoa(ctx, cfg.Src, channels)
	}
	if err != nil {
		return nil, err
	}

	if buf.Channels() != channels {
		return nil, fmt.Errorf("%w: %d channels, order %d needs %d", ErrUnexpectedChannels, buf.Channels(), cfg.Order, channels)
	}
	return buf, nil
}
