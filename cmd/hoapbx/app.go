// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ik5/hoapbx/config"
	"github.com/ik5/hoapbx/feed"
	"github.com/ik5/hoapbx/fetch"
	"github.com/ik5/hoapbx/formats"
	"github.com/ik5/hoapbx/internal/metrics"
	"github.com/ik5/hoapbx/output"
	"github.com/ik5/hoapbx/server"
	"github.com/ik5/hoapbx/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// app holds what every session command shares.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	reg     *prometheus.Registry
	metrics *metrics.Metrics
}

func newApp(cfg config.Config) (*app, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: logger, reg: reg, metrics: m}, nil
}

// destination builds the output named by output.kind.
func (a *app) destination() output.Destination {
	o := a.cfg.Output
	switch o.Kind {
	case config.OutputWAV:
		return output.NewWAVFile(o.Path, o.SampleRate, o.MaxChannels, o.Duration)
	case config.OutputNull:
		return output.NewNull(o.SampleRate, o.MaxChannels, o.Latency)
	default:
		return output.NewSpeaker(o.SampleRate, o.Latency)
	}
}

// start wires a controller to dest and waits until it plays.
func (a *app) start(ctx context.Context, dest output.Destination) (*session.Controller, error) {
	ctrl, err := session.NewController(session.Session{
		Destination: dest,
		Fetcher:     fetch.Default{},
		Codecs:      formats.NewRegistry(),
		Logger:      a.log,
		Metrics:     a.metrics,
		BlockSize:   a.cfg.Output.BlockSize,
	})
	if err != nil {
		return nil, err
	}

	scfg, err := session.ConfigFrom(a.cfg)
	if err != nil {
		return nil, err
	}
	if err := ctrl.Setup(scfg); err != nil {
		return nil, errors.Join(err, ctrl.Stop())
	}
	if err := ctrl.Start(ctx); err != nil {
		return nil, errors.Join(err, ctrl.Stop())
	}
	if _, err := ctrl.Wait(ctx); err != nil {
		return nil, errors.Join(err, ctrl.Stop())
	}
	return ctrl, nil
}

// feed returns the orientation feed named by feed.kind, or nil.
func (a *app) feed() feed.Feed {
	f := a.cfg.Feed
	switch f.Kind {
	case config.FeedSweep:
		return feed.Sweep{Rate: f.Rate, Interval: f.Interval}
	case config.FeedRedis:
		return feed.NewRedis(f.RedisAddr, f.RedisChannel, feed.WithLogger(a.log))
	default:
		return nil
	}
}

// serve runs the HTTP server until ctx ends.
func (a *app) serve(ctx context.Context, ctrl *session.Controller) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           server.NewHandler(ctrl, a.reg, a.log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(err, srv.Close())
	}
	return nil
}
