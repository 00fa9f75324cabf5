// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/ik5/hoapbx/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func addAudioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("src", "", "sample path or URL")
	f.String("type", "", "ambisonic or positional")
	f.Int("order", 0, "ambisonic order")
	f.String("channel-order", "", "acn or fuma")
	f.String("decoder-file", "", "loudspeaker decode matrix; enables multichannel output")
	f.Float64("gain", 1, "output gain")
	f.Int("sample-rate", 0, "output sample rate")
}

func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output", "o", "", "speaker, wav or null")
	f.String("out", "", "output file for wav output")
	f.Duration("duration", 0, "rendered length for file output")
}

func addFeedFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("feed", "", "none, sweep or redis")
	f.Float64("rate", 0, "sweep speed in degrees per second")
	f.String("redis-addr", "", "redis address for the redis feed")
	f.String("redis-channel", "", "redis channel carrying look directions")
}

// applyFlags copies every flag the user set onto cfg. Flags a command
// does not define are skipped.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		fs := cmd.Flags()
		switch f.Name {
		case "log-level":
			cfg.Log.Level, err = fs.GetString(f.Name)
		case "src":
			cfg.Audio.Src, err = fs.GetString(f.Name)
		case "type":
			cfg.Audio.Type, err = fs.GetString(f.Name)
		case "order":
			cfg.Audio.Order, err = fs.GetInt(f.Name)
		case "channel-order":
			cfg.Audio.ChannelOrder, err = fs.GetString(f.Name)
		case "decoder-file":
			cfg.Audio.DecoderFile, err = fs.GetString(f.Name)
			cfg.Audio.MultichannelOut = cfg.Audio.DecoderFile != ""
		case "gain":
			cfg.Audio.Gain, err = fs.GetFloat64(f.Name)
		case "sample-rate":
			cfg.Output.SampleRate, err = fs.GetInt(f.Name)
		case "output":
			cfg.Output.Kind, err = fs.GetString(f.Name)
		case "out":
			cfg.Output.Path, err = fs.GetString(f.Name)
		case "duration":
			cfg.Output.Duration, err = fs.GetDuration(f.Name)
		case "feed":
			cfg.Feed.Kind, err = fs.GetString(f.Name)
		case "rate":
			cfg.Feed.Rate, err = fs.GetFloat64(f.Name)
		case "redis-addr":
			cfg.Feed.RedisAddr, err = fs.GetString(f.Name)
		case "redis-channel":
			cfg.Feed.RedisChannel, err = fs.GetString(f.Name)
		case "addr":
			cfg.Server.Addr, err = fs.GetString(f.Name)
		}
	})
	return err
}
