// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ik5/hoapbx/feed"
	"github.com/ik5/hoapbx/formats/wav"
	"github.com/ik5/hoapbx/output"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a session offline to a WAV file",
	Long: `Renders output.duration of the session block by block while sweeping
the look direction at feed.rate degrees per second, and writes the
result to --out as 16-bit PCM.`,
	RunE: runRender,
}

func init() {
	addAudioFlags(renderCmd)
	addOutputFlags(renderCmd)
	renderCmd.Flags().Float64("rate", 0, "sweep speed in degrees per second")
	renderCmd.Flags().Float64("start", 0, "azimuth at the first frame, in degrees")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Output.Path == "" {
		return errors.New("render needs --out or output.path")
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	startAz, _ := cmd.Flags().GetFloat64("start")

	o := cfg.Output
	dest := output.NewMemory(o.SampleRate, o.MaxChannels)
	ctrl, err := a.start(cmd.Context(), dest)
	if err != nil {
		return err
	}
	defer ctrl.Stop()

	sweep := feed.Sweep{Rate: cfg.Feed.Rate, Start: startAz}
	total := int(o.Duration.Seconds() * float64(o.SampleRate))
	for done := 0; done < total; {
		elapsed := time.Duration(float64(done) / float64(o.SampleRate) * float64(time.Second))
		if err := ctrl.UpdateOrientation(sweep.At(elapsed)); err != nil {
			return err
		}

		n, err := dest.Render(min(o.BlockSize, total-done))
		done += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	if err := writeWAV(o.Path, o.SampleRate, dest.Data()); err != nil {
		return err
	}
	a.log.Info("rendered", "path", o.Path, "channels", dest.ChannelCount(), "duration", o.Duration)
	return nil
}

func writeWAV(path string, sampleRate int, planar [][]float32) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	w, err := wav.NewWriter(f, sampleRate, len(planar), 16)
	if err != nil {
		return err
	}

	frames := 0
	if len(planar) > 0 {
		frames = len(planar[0])
	}
	const chunk = 4096
	buf := make([]float32, chunk*len(planar))
	for start := 0; start < frames; start += chunk {
		n := min(chunk, frames-start)
		for i := range n {
			for c, ch := range planar {
				buf[i*len(planar)+c] = ch[start+i]
			}
		}
		if err := w.Write(buf[:n*len(planar)]); err != nil {
			return err
		}
	}
	return w.Close()
}
