// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/hoapbx/output"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session through the configured output",
	Long: `Loads the sample, decodes it to the configured output and keeps the
soundfield aligned with the orientation feed until interrupted. A wav
output stops on its own after output.duration.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSession(cmd, false)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Play a session and accept orientation over HTTP",
	Long: `Like play, and also serves POST /orientation, GET /state and
GET /metrics on server.addr.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSession(cmd, true)
	},
}

func init() {
	for _, c := range []*cobra.Command{playCmd, serveCmd} {
		addAudioFlags(c)
		addOutputFlags(c)
		addFeedFlags(c)
		rootCmd.AddCommand(c)
	}
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
}

func runSession(cmd *cobra.Command, withServer bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dest := a.destination()
	ctrl, err := a.start(ctx, dest)
	if err != nil {
		return err
	}
	a.log.Info("playing", "src", cfg.Audio.Src, "output", cfg.Output.Kind, "status", ctrl.Status())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if f := a.feed(); f != nil {
		g.Go(func() error { return f.Run(gctx, ctrl) })
		if c, ok := f.(io.Closer); ok {
			defer c.Close()
		}
	}
	if withServer {
		g.Go(func() error { return a.serve(gctx, ctrl) })
	}
	if w, ok := dest.(*output.WAVFile); ok {
		g.Go(func() error {
			if err := w.Wait(gctx); err != nil {
				return err
			}
			a.log.Info("file written", "path", w.Path(), "frames", w.Frames())
			// a finished file ends the session
			return errDone
		})
	}

	err = g.Wait()
	if errors.Is(err, errDone) || errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(err, ctrl.Stop())
}

var errDone = errors.New("done")
