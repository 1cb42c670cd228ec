// Package config holds the demo binary's settings. Values come from an
// optional TOML file and are then overridden by command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Display struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Format string `toml:"format"`
	FBDev  string `toml:"fbdev"`
	Scale  int    `toml:"scale"`
}

type Run struct {
	Headless bool   `toml:"headless"`
	Hz       int    `toml:"hz"`
	Ticks    uint64 `toml:"ticks"`
}

type Demo struct {
	Font    string `toml:"font"`
	Image   string `toml:"image"`
	Text    string `toml:"text"`
	Console bool   `toml:"console"`
	Sheet   bool   `toml:"sheet"`
}

type Log struct {
	Level string `toml:"level"`
}

// Config is the whole settings file.
type Config struct {
	Display Display `toml:"display"`
	Run     Run     `toml:"run"`
	Demo    Demo    `toml:"demo"`
	Log     Log     `toml:"log"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Display: Display{Width: 640, Height: 480, Format: "rgba8888", Scale: 1},
		Run:     Run{Hz: 60},
		Demo:    Demo{Text: "dazzle"},
		Log:     Log{Level: "info"},
	}
}

// Load reads path on top of Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", sme.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the demo cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Display.FBDev == "" && (c.Display.Width <= 0 || c.Display.Height <= 0) {
		errs = append(errs, fmt.Errorf("display size %dx%d", c.Display.Width, c.Display.Height))
	}
	if c.Display.Scale < 1 {
		errs = append(errs, fmt.Errorf("display scale %d", c.Display.Scale))
	}
	if c.Run.Hz <= 0 {
		errs = append(errs, fmt.Errorf("run hz %d", c.Run.Hz))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel parses Log.Level ("debug", "info", "warn", "error", or an
// offset such as "info+2").
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// Marshal encodes c as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
