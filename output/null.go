// SPDX-License-Identifier: EPL-2.0

package output

import (
	"io"
	"sync"
	"time"

	"github.com/ik5/hoapbx/audio"
)

// Null pulls its source at real-time pace and discards the samples. It
// stands in for a device on machines without one.
type Null struct {
	channels

	sampleRate int
	period     time.Duration

	mutex  sync.Mutex
	reader *pcmReader
	stop   chan struct{}
	done   chan struct{}
	closed bool
}

// NewNull pulls one period worth of frames per tick.
func NewNull(sampleRate, maxChannels int, period time.Duration) *Null {
	if period <= 0 {
		period = 20 * time.Millisecond
	}
	return &Null{
		channels:   channels{limit: maxChannels},
		sampleRate: sampleRate,
		period:     period,
	}
}

func (n *Null) SampleRate() int { return n.sampleRate }

func (n *Null) Start(src audio.Source) error {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return ErrClosed
	}
	if n.reader != nil {
		return ErrStarted
	}
	if err := n.check(src); err != nil {
		return err
	}

	n.reader = newPCMReader(n.declared)
	n.reader.setSource(src)
	n.stop = make(chan struct{})
	n.done = make(chan struct{})

	frames := max(int(int64(n.sampleRate)*int64(n.period)/int64(time.Second)), 1)
	go n.run(make([]byte, frames*4*n.declared))

	return nil
}

func (n *Null) run(buf []byte) {
	defer close(n.done)

	t := time.NewTicker(n.period)
	defer t.Stop()

	for {
		select {
		case <-n.stop:
			return
		case <-t.C:
			_, _ = io.ReadFull(n.reader, buf)
		}
	}
}

// Frames reports how many frames have been pulled and dropped.
func (n *Null) Frames() int64 {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.reader == nil {
		return 0
	}
	return n.reader.Frames()
}

func (n *Null) Close() error {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true

	if n.reader == nil {
		return nil
	}
	close(n.stop)
	<-n.done
	return n.reader.Err()
}
