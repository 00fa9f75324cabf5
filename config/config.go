// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML or JSON file describing a rendering
// session.
//
//	audio:
//	  type: ambisonic
//	  order: 3
//	  channel_order: acn
//	  multichannel_out: false
//	  src: media/hoa/scene.wav
//	camera:
//	  direction: [0, 0, -1]
//	output:
//	  kind: speaker
//
// Files are read into a generic map and decoded onto Defaults() with
// mapstructure, so absent keys keep their default and numbers written as
// strings are accepted.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	TypeAmbisonic  = "ambisonic"
	TypePositional = "positional"

	OutputSpeaker = "speaker"
	OutputWAV     = "wav"
	OutputNull    = "null"

	FeedNone  = "none"
	FeedSweep = "sweep"
	FeedRedis = "redis"
)

type Config struct {
	Audio  Audio  `yaml:"audio"`
	Camera Camera `yaml:"camera"`
	Output Output `yaml:"output"`
	Feed   Feed   `yaml:"feed"`
	Server Server `yaml:"server"`
	Log    Log    `yaml:"log"`
}

type Audio struct {
	Type            string     `yaml:"type"`
	Order           int        `yaml:"order"`
	ChannelOrder    string     `yaml:"channel_order"`
	MultichannelOut bool       `yaml:"multichannel_out"`
	DecoderFile     string     `yaml:"decoder_file"`
	Src             string     `yaml:"src"`
	Gain            float64    `yaml:"gain"`
	Position        [3]float64 `yaml:"position"`
}

type Camera struct {
	Direction [3]float64 `yaml:"direction"`
}

type Output struct {
	Kind        string        `yaml:"kind"`
	SampleRate  int           `yaml:"sample_rate"`
	BlockSize   int           `yaml:"block_size"`
	Path        string        `yaml:"path"`
	MaxChannels int           `yaml:"max_channels"`
	Duration    time.Duration `yaml:"duration"`
	Latency     time.Duration `yaml:"latency"`
}

// Feed selects where look directions come from besides the HTTP server.
type Feed struct {
	Kind string `yaml:"kind"`
	// Rate is the sweep speed in degrees per second.
	Rate         float64       `yaml:"rate"`
	Interval     time.Duration `yaml:"interval"`
	RedisAddr    string        `yaml:"redis_addr"`
	RedisChannel string        `yaml:"redis_channel"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Log struct {
	Level string `yaml:"level"`
}

func Defaults() Config {
	return Config{
		Audio: Audio{
			Type:         TypeAmbisonic,
			Order:        1,
			ChannelOrder: "acn",
			Gain:         1,
		},
		Camera: Camera{Direction: [3]float64{0, 0, -1}},
		Output: Output{
			Kind:        OutputSpeaker,
			SampleRate:  48000,
			BlockSize:   512,
			MaxChannels: 64,
			Duration:    10 * time.Second,
			Latency:     50 * time.Millisecond,
		},
		Feed: Feed{
			Kind:         FeedNone,
			Rate:         30,
			Interval:     20 * time.Millisecond,
			RedisAddr:    "localhost:6379",
			RedisChannel: "hoapbx:orientation",
		},
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "info"},
	}
}

// Load reads path, decodes it onto Defaults() and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return Parse(data, format)
}

// Parse decodes data, in "yaml" or "json", onto Defaults() and validates
// the result.
func Parse(data []byte, format string) (Config, error) {
	raw := map[string]any{}

	switch format {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: format %q", ErrSyntax, format)
	}

	cfg := Defaults()
	if err := Decode(raw, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode applies a generic map, as produced by yaml or json, onto cfg.
// Keys absent from raw keep the values already in cfg.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return nil
}
