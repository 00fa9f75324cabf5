// SPDX-License-Identifier: EPL-2.0

package feed

import (
	"context"
	"time"

	"github.com/ik5/hoapbx/orientation"
)

// Sweep turns the listener around the vertical axis at a constant rate.
type Sweep struct {
	// Rate in degrees per second.
	Rate float64
	// Interval between updates in Run.
	Interval time.Duration
	// Start is the azimuth at elapsed time zero.
	Start float64
}

// At returns the direction after elapsed time.
func (s Sweep) At(elapsed time.Duration) orientation.Vec3 {
	return Direction(s.Start + s.Rate*elapsed.Seconds())
}

// Run updates target every Interval with wall-clock time. It returns nil
// when ctx ends and the target's error if an update is rejected.
func (s Sweep) Run(ctx context.Context, target Target) error {
	interval := s.Interval
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	begin := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			if err := target.UpdateOrientation(s.At(now.Sub(begin))); err != nil {
				return err
			}
		}
	}
}
