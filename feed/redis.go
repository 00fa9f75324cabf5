// SPDX-License-Identifier: EPL-2.0

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ik5/hoapbx/internal/logging"
	"github.com/ik5/hoapbx/orientation"
	backend "github.com/redis/go-redis/v9"
)

// Redis subscribes to a pub/sub channel carrying JSON look directions,
// {"x": 0, "y": 0, "z": -1}. Malformed messages are logged and skipped.
type Redis struct {
	client  *backend.Client
	channel string
	log     *slog.Logger
}

type Option func(*Redis)

// WithLogger sets the logger for skipped messages.
func WithLogger(l *slog.Logger) Option {
	return func(r *Redis) { r.log = l }
}

// NewRedis connects to address.
func NewRedis(address, channel string, opts ...Option) *Redis {
	return NewRedisFromClient(backend.NewClient(&backend.Options{Addr: address}), channel, opts...)
}

// NewRedisFromClient uses an existing client.
func NewRedisFromClient(client *backend.Client, channel string, opts ...Option) *Redis {
	r := &Redis{client: client, channel: channel, log: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run subscribes and forwards every valid direction to target. It returns
// once ctx ends or the subscription closes. Errors from target are logged,
// so one bad frame does not stop the feed.
func (r *Redis) Run(ctx context.Context, target Target) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	// wait for the subscription to be confirmed
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			var dir orientation.Vec3
			if err := json.Unmarshal([]byte(msg.Payload), &dir); err != nil {
				r.log.Warn("skipping orientation message", "channel", msg.Channel, "error", err)
				continue
			}
			if err := target.UpdateOrientation(dir); err != nil {
				r.log.Warn("orientation rejected", "error", err)
			}
		}
	}
}

// Publish sends dir on channel, in the format Run expects.
func Publish(ctx context.Context, client *backend.Client, channel string, dir orientation.Vec3) error {
	payload, err := json.Marshal(dir)
	if err != nil {
		return err
	}
	return client.Publish(ctx, channel, payload).Err()
}

// Close releases the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
