// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/hoapbx/audio"
)

// Speaker plays through the system audio device. oto supports mono and
// stereo only, so a Speaker takes at most two channels.
type Speaker struct {
	channels

	sampleRate int
	bufferSize time.Duration

	mutex  sync.Mutex // only for setup/control operations
	ctx    *oto.Context
	player *oto.Player
	reader *pcmReader
	closed bool
}

// NewSpeaker prepares a speaker. The device is opened by Start, once the
// channel count is known.
func NewSpeaker(sampleRate int, bufferSize time.Duration) *Speaker {
	return &Speaker{
		channels:   channels{limit: 2},
		sampleRate: sampleRate,
		bufferSize: bufferSize,
	}
}

func (s *Speaker) SampleRate() int { return s.sampleRate }

func (s *Speaker) Start(src audio.Source) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.player != nil {
		return ErrStarted
	}
	if err := s.check(src); err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   s.sampleRate,
		ChannelCount: s.declared,
		Format:       oto.FormatFloat32LE,
		BufferSize:   s.bufferSize,
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	s.ctx = ctx
	s.reader = newPCMReader(s.declared)
	s.reader.setSource(src)
	s.player = ctx.NewPlayer(s.reader)
	s.player.Play()

	return nil
}

// Frames reports how many frames the device has pulled.
func (s *Speaker) Frames() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.reader == nil {
		return 0
	}
	return s.reader.Frames()
}

func (s *Speaker) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.player == nil {
		return nil
	}
	s.reader.setSource(nil)
	err := s.player.Close()
	s.player = nil
	if err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return s.reader.Err()
}
