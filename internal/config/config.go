// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/biquad"
)

// DefaultEnvFile is loaded when present.
const DefaultEnvFile = ".env"

var ErrInvalidConfig = errors.New("invalid configuration")

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// Config holds the CLI settings. Every field has an AUDFX_* variable and a
// flag; flags win.
type Config struct {
	LogLevel string

	// Input and output
	Input      string
	Output     string
	InputType  string // layout of raw .pcm input
	InputRate  int
	InputChans int
	FFmpeg     string
	Play       bool

	// Conversion before filtering
	Rate      int
	Mono      bool
	Nightcore bool
	Vaporwave bool
	Type      string

	// Filter chain
	Filter       string
	Cutoff       float64
	Q            float64
	FilterGain   float64
	Preset       string
	Bands        string // "band:gain,band:gain"
	Effects      string // comma separated
	PulsatorRate float64
	TremoloDepth float64
	TremoloFreq  float64
	VibratoDepth float64
	VibratoFreq  float64
	Volume       float64
	Bypass       bool

	// Opus output
	Bitrate int
}

// Load reads envFile when it exists, then builds a Config from the
// environment with defaults.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	return Config{
		LogLevel: envStr("AUDFX_LOG_LEVEL", "info"),

		Input:      envStr("AUDFX_INPUT", ""),
		Output:     envStr("AUDFX_OUTPUT", ""),
		InputType:  envStr("AUDFX_INPUT_TYPE", "s16le"),
		InputRate:  envInt("AUDFX_INPUT_RATE", 48000),
		InputChans: envInt("AUDFX_INPUT_CHANNELS", 2),
		FFmpeg:     envStr("AUDFX_FFMPEG", "ffmpeg"),
		Play:       envBool("AUDFX_PLAY", false),

		Rate:      envInt("AUDFX_RATE", 0),
		Mono:      envBool("AUDFX_MONO", false),
		Nightcore: envBool("AUDFX_NIGHTCORE", false),
		Vaporwave: envBool("AUDFX_VAPORWAVE", false),
		Type:      envStr("AUDFX_TYPE", ""),

		Filter:       envStr("AUDFX_FILTER", ""),
		Cutoff:       envFloat("AUDFX_CUTOFF", biquad.DefaultCutoff),
		Q:            envFloat("AUDFX_Q", biquad.DefaultQ),
		FilterGain:   envFloat("AUDFX_FILTER_GAIN", 0),
		Preset:       envStr("AUDFX_EQ", ""),
		Bands:        envStr("AUDFX_BANDS", ""),
		Effects:      envStr("AUDFX_EFFECTS", ""),
		PulsatorRate: envFloat("AUDFX_PULSATOR_RATE", 1),
		TremoloDepth: envFloat("AUDFX_TREMOLO_DEPTH", 0.5),
		TremoloFreq:  envFloat("AUDFX_TREMOLO_FREQ", 5),
		VibratoDepth: envFloat("AUDFX_VIBRATO_DEPTH", 0.5),
		VibratoFreq:  envFloat("AUDFX_VIBRATO_FREQ", 5),
		Volume:       envFloat("AUDFX_VOLUME", 100),
		Bypass:       envBool("AUDFX_BYPASS", false),

		Bitrate: envInt("AUDFX_BITRATE", 128000),
	}, nil
}

// RegisterFlags binds every field to fs, using the loaded values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")

	fs.StringVar(&c.Input, "in", c.Input, "input file, or - for stdin")
	fs.StringVar(&c.Output, "out", c.Output, "output file (.wav, .aiff, .dca, .pcm), or - for stdout")
	fs.StringVar(&c.InputType, "in-type", c.InputType, "layout of raw PCM input")
	fs.IntVar(&c.InputRate, "in-rate", c.InputRate, "sample rate of raw PCM input")
	fs.IntVar(&c.InputChans, "in-channels", c.InputChans, "channel count of raw PCM input")
	fs.StringVar(&c.FFmpeg, "ffmpeg", c.FFmpeg, "ffmpeg binary for formats without a native decoder")
	fs.BoolVar(&c.Play, "play", c.Play, "play the result on the default audio device")

	fs.IntVar(&c.Rate, "rate", c.Rate, "resample to this rate before filtering (0 keeps the input rate)")
	fs.BoolVar(&c.Mono, "mono", c.Mono, "downmix to mono before filtering")
	fs.BoolVar(&c.Nightcore, "nightcore", c.Nightcore, "speed up by 1.3x")
	fs.BoolVar(&c.Vaporwave, "vaporwave", c.Vaporwave, "slow down to 0.8x")
	fs.StringVar(&c.Type, "type", c.Type, "convert to this PCM layout before filtering, e.g. s32le")

	fs.StringVar(&c.Filter, "filter", c.Filter, "biquad shape (lowpass, highpass, bandpass, notch, allpass, peaking, lowshelf, highshelf)")
	fs.Float64Var(&c.Cutoff, "cutoff", c.Cutoff, "biquad cutoff in Hz")
	fs.Float64Var(&c.Q, "q", c.Q, "biquad Q")
	fs.Float64Var(&c.FilterGain, "filter-gain", c.FilterGain, "biquad gain in dB for peak and shelf shapes")
	fs.StringVar(&c.Preset, "eq", c.Preset, "equalizer preset")
	fs.StringVar(&c.Bands, "bands", c.Bands, "equalizer bands as band:gain pairs, e.g. 0:3,9:-2")
	fs.StringVar(&c.Effects, "effects", c.Effects, "comma separated effects (8D, Tremolo, Vibrato, BassBoost)")
	fs.Float64Var(&c.PulsatorRate, "pulsator", c.PulsatorRate, "8D rotation rate in Hz")
	fs.Float64Var(&c.TremoloDepth, "tremolo-depth", c.TremoloDepth, "tremolo depth in [0, 1]")
	fs.Float64Var(&c.TremoloFreq, "tremolo-freq", c.TremoloFreq, "tremolo rate in Hz")
	fs.Float64Var(&c.VibratoDepth, "vibrato-depth", c.VibratoDepth, "vibrato depth in [0, 1]")
	fs.Float64Var(&c.VibratoFreq, "vibrato-freq", c.VibratoFreq, "vibrato rate in Hz")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "volume in percent")
	fs.BoolVar(&c.Bypass, "bypass", c.Bypass, "start with the pipeline disabled")

	fs.IntVar(&c.Bitrate, "bitrate", c.Bitrate, "opus bitrate for .dca output")
}

// Validate checks values that flags cannot constrain.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: no input", ErrInvalidConfig)
	}
	if c.Output == "" && !c.Play {
		return fmt.Errorf("%w: need -out or -play", ErrInvalidConfig)
	}
	if c.Nightcore && c.Vaporwave {
		return fmt.Errorf("%w: -nightcore and -vaporwave are exclusive", ErrInvalidConfig)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Speed is the timescale factor implied by the switches.
func (c Config) Speed() float64 {
	switch {
	case c.Nightcore:
		return audio.NightcoreSpeed
	case c.Vaporwave:
		return audio.VaporwaveSpeed
	}
	return 1
}

// EffectList splits Effects on commas.
func (c Config) EffectList() []string {
	return splitList(c.Effects)
}

// BandGains parses Bands into band index to gain pairs.
func (c Config) BandGains() (map[int]float64, error) {
	out := make(map[int]float64)
	for _, pair := range splitList(c.Bands) {
		idx, gain, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("%w: band %q is not band:gain", ErrInvalidConfig, pair)
		}
		b, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil {
			return nil, fmt.Errorf("%w: band %q: %w", ErrInvalidConfig, pair, err)
		}
		g, err := strconv.ParseFloat(strings.TrimSpace(gain), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: band %q: %w", ErrInvalidConfig, pair, err)
		}
		out[b] = g
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
