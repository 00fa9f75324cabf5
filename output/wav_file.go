// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ik5/hoapbx/audio"
	"github.com/ik5/hoapbx/formats/wav"
)

// WAVFile renders a fixed duration of the source into a 16-bit PCM WAV
// file, as fast as the source produces it.
type WAVFile struct {
	channels

	path       string
	sampleRate int
	frames     int
	blockSize  int

	mutex   sync.Mutex
	started bool
	stop    chan struct{}
	done    chan struct{}
	written int
	err     error
}

// NewWAVFile returns a file destination taking up to maxChannels channels
// that stops after d.
func NewWAVFile(path string, sampleRate, maxChannels int, d time.Duration) *WAVFile {
	return &WAVFile{
		channels:   channels{limit: maxChannels},
		path:       path,
		sampleRate: sampleRate,
		frames:     int(int64(d) * int64(sampleRate) / int64(time.Second)),
		blockSize:  1024,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (w *WAVFile) SampleRate() int { return w.sampleRate }
func (w *WAVFile) Path() string    { return w.path }

func (w *WAVFile) Start(src audio.Source) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.started {
		return ErrStarted
	}
	if err := w.check(src); err != nil {
		return err
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.path, err)
	}
	enc, err := wav.NewWriter(f, w.sampleRate, w.declared, 16)
	if err != nil {
		_ = f.Close()
		return err
	}

	w.started = true
	go w.render(src, f, enc)
	return nil
}

func (w *WAVFile) render(src audio.Source, f *os.File, enc *wav.Writer) {
	defer close(w.done)

	buf := make([]float32, w.blockSize*w.declared)
	written := 0
	var err error

loop:
	for written < w.frames {
		select {
		case <-w.stop:
			break loop
		default:
		}

		want := min(w.frames-written, w.blockSize) * w.declared
		n, rerr := src.ReadSamples(buf[:want])
		if n > 0 {
			if err = enc.Write(buf[:n]); err != nil {
				break
			}
			written += n / w.declared
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			err = fmt.Errorf("render: %w", rerr)
			break
		}
	}

	err = errors.Join(err, enc.Close(), f.Close())

	w.mutex.Lock()
	w.written = written
	w.err = err
	w.mutex.Unlock()
}

// Wait blocks until the file is complete or ctx ends.
func (w *WAVFile) Wait(ctx context.Context) error {
	w.mutex.Lock()
	started := w.started
	w.mutex.Unlock()
	if !started {
		return ErrNoChannelCount
	}

	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.err
}

// Frames is the number of frames written, known once rendering ends.
func (w *WAVFile) Frames() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.written
}

// Close stops rendering early and finalises the file.
func (w *WAVFile) Close() error {
	w.mutex.Lock()
	started := w.started
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	w.mutex.Unlock()

	if !started {
		return nil
	}
	<-w.done

	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.err
}
