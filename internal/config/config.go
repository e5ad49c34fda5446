// Package config provides configuration types and defaults for simon.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iburimskiy/simon/internal/board"
	"github.com/iburimskiy/simon/internal/tone"
)

const (
	WindowWidth  = 700
	WindowHeight = 550

	SampleRate = 44100
	// BufferSize matches the mixer buffer the game was tuned with.
	BufferSize = 1024
	Volume     = 0.1

	EnvPrefix = "SIMON"
)

// Config holds all configuration options for simon.
type Config struct {
	Window WindowConfig `mapstructure:"window"`
	Audio  AudioConfig  `mapstructure:"audio"`
	Game   GameConfig   `mapstructure:"game"`
	Timing TimingConfig `mapstructure:"timing"`
}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type AudioConfig struct {
	SampleRate int     `mapstructure:"sample_rate"`
	BufferSize int     `mapstructure:"buffer_size"`
	Format     string  `mapstructure:"format"` // "narrow" or "wide"
	Volume     float64 `mapstructure:"volume"`
	Mute       bool    `mapstructure:"mute"`
}

type GameConfig struct {
	// Seed makes every session replay the same sequence. 0 picks a new one.
	Seed uint64 `mapstructure:"seed"`
}

// TimingConfig mirrors board.Timing.
type TimingConfig struct {
	FlashOn    time.Duration   `mapstructure:"flash_on"`
	FlashOff   time.Duration   `mapstructure:"flash_off"`
	DemoOn     time.Duration   `mapstructure:"demo_on"`
	DemoOff    time.Duration   `mapstructure:"demo_off"`
	RapidOn    time.Duration   `mapstructure:"rapid_on"`
	RapidOff   time.Duration   `mapstructure:"rapid_off"`
	RapidCount int             `mapstructure:"rapid_count"`
	Fanfare    []time.Duration `mapstructure:"fanfare"`
	FanfareOff time.Duration   `mapstructure:"fanfare_off"`
	LoseTone   time.Duration   `mapstructure:"lose_tone"`
	StartDelay time.Duration   `mapstructure:"start_delay"`
	RoundDelay time.Duration   `mapstructure:"round_delay"`
}

// Defaults returns a Config with the values the game was designed around.
func Defaults() Config {
	t := board.DefaultTiming()
	return Config{
		Window: WindowConfig{Width: WindowWidth, Height: WindowHeight},
		Audio: AudioConfig{
			SampleRate: SampleRate,
			BufferSize: BufferSize,
			Format:     tone.Narrow.String(),
			Volume:     Volume,
		},
		Timing: TimingConfig{
			FlashOn:    t.Round.On,
			FlashOff:   t.Round.Off,
			DemoOn:     t.Demo.On,
			DemoOff:    t.Demo.Off,
			RapidOn:    t.Rapid.On,
			RapidOff:   t.Rapid.Off,
			RapidCount: t.RapidCount,
			Fanfare:    t.Fanfare,
			FanfareOff: t.FanfareOff,
			LoseTone:   t.LoseTone,
			StartDelay: t.StartDelay,
			RoundDelay: t.RoundDelay,
		},
	}
}

// Board converts the timing section for the round controller.
func (t TimingConfig) Board() board.Timing {
	return board.Timing{
		Round:      board.Flash{On: t.FlashOn, Off: t.FlashOff},
		Demo:       board.Flash{On: t.DemoOn, Off: t.DemoOff},
		Rapid:      board.Flash{On: t.RapidOn, Off: t.RapidOff},
		RapidCount: t.RapidCount,
		Fanfare:    append([]time.Duration(nil), t.Fanfare...),
		FanfareOff: t.FanfareOff,
		LoseTone:   t.LoseTone,
		StartDelay: t.StartDelay,
		RoundDelay: t.RoundDelay,
	}
}

// SampleFormat parses Audio.Format.
func (a AudioConfig) SampleFormat() (tone.Format, error) {
	return tone.ParseFormat(a.Format)
}

// Validate checks the config for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < 100 || c.Window.Height < 100 {
		errs = append(errs, fmt.Errorf("window: %dx%d is too small", c.Window.Width, c.Window.Height))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate: must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Audio.BufferSize < 0 {
		errs = append(errs, fmt.Errorf("audio.buffer_size: must not be negative, got %d", c.Audio.BufferSize))
	}
	if _, err := c.Audio.SampleFormat(); err != nil {
		errs = append(errs, fmt.Errorf("audio.format: %w", err))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume: must be within [0, 1], got %v", c.Audio.Volume))
	}

	t := c.Timing
	if t.DemoOn+t.DemoOff <= 0 {
		errs = append(errs, errors.New("timing: demo flash must take some time"))
	}
	if t.FlashOn <= 0 || t.RapidOn <= 0 {
		errs = append(errs, errors.New("timing: flash_on and rapid_on must be positive"))
	}
	if t.RapidCount < 0 {
		errs = append(errs, fmt.Errorf("timing.rapid_count: must not be negative, got %d", t.RapidCount))
	}
	for i, d := range t.Fanfare {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("timing.fanfare[%d]: must be positive, got %v", i, d))
		}
	}
	return errors.Join(errs...)
}

// Load reads path (if not empty) over the defaults, applies SIMON_*
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.buffer_size", d.Audio.BufferSize)
	v.SetDefault("audio.format", d.Audio.Format)
	v.SetDefault("audio.volume", d.Audio.Volume)
	v.SetDefault("audio.mute", d.Audio.Mute)
	v.SetDefault("game.seed", d.Game.Seed)
	v.SetDefault("timing.flash_on", d.Timing.FlashOn)
	v.SetDefault("timing.flash_off", d.Timing.FlashOff)
	v.SetDefault("timing.demo_on", d.Timing.DemoOn)
	v.SetDefault("timing.demo_off", d.Timing.DemoOff)
	v.SetDefault("timing.rapid_on", d.Timing.RapidOn)
	v.SetDefault("timing.rapid_off", d.Timing.RapidOff)
	v.SetDefault("timing.rapid_count", d.Timing.RapidCount)
	v.SetDefault("timing.fanfare", d.Timing.Fanfare)
	v.SetDefault("timing.fanfare_off", d.Timing.FanfareOff)
	v.SetDefault("timing.lose_tone", d.Timing.LoseTone)
	v.SetDefault("timing.start_delay", d.Timing.StartDelay)
	v.SetDefault("timing.round_delay", d.Timing.RoundDelay)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Simon configuration

window:
  width: 700
  height: 550

audio:
  sample_rate: 44100
  buffer_size: 1024
  # narrow synthesizes 8-bit samples and rescales them, wide uses 16 bits
  format: narrow
  volume: 0.1
  mute: false

game:
  # non-zero replays the same sequence every session
  seed: 0

timing:
  flash_on: 350ms
  flash_off: 150ms
  demo_on: 200ms
  demo_off: 50ms
  rapid_on: 100ms
  rapid_off: 100ms
  rapid_count: 10
  fanfare: [250ms, 250ms, 250ms, 500ms]
  fanfare_off: 50ms
  lose_tone: 1s
  start_delay: 400ms
  round_delay: 500ms
`
}
