// SPDX-License-Identifier: EPL-2.0

// Package fetch resolves the URLs found in a session configuration (decode
// matrices, samples) to readers.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Fetcher opens the resource at rawURL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// Default serves plain paths, file:// and http(s):// URLs. Relative paths are
// resolved against Dir.
type Default struct {
	Client *http.Client
	Dir    string
}

func (d Default) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil || len(u.Scheme) <= 1 {
		// no scheme, or a Windows drive letter
		return d.open(rawURL)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return d.open(u.Path)
	case "http", "https":
		return d.get(ctx, rawURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (d Default) open(path string) (io.ReadCloser, error) {
	if d.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(d.Dir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func (d Default) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", rawURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %s", ErrStatus, rawURL, resp.Status)
	}

	return resp.Body, nil
}

// ReadAll fetches rawURL and returns its full content.
func ReadAll(ctx context.Context, f Fetcher, rawURL string) ([]byte, error) {
	rc, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return data, nil
}

// Map serves in-memory documents keyed by URL.
type Map map[string][]byte

func (m Map) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := m[rawURL]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
