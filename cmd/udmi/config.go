package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Config is the optional udmi.toml read by the CLI.
type Config struct {
	LogLevel         string `toml:"LogLevel" validate:"oneof=debug info warn error"`
	Indent           string `toml:"Indent" validate:"max=8,blankspace"`
	ValidateOnEncode bool   `toml:"ValidateOnEncode"`
	Metrics          bool   `toml:"Metrics"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

// LoadConfig reads and checks the TOML file at path. An empty path yields
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	tree, err := toml.LoadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "load config %s", path)
	}
	if err := tree.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultConfig().LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("blankspace", isBlank); err != nil {
		return err
	}
	return v.Struct(c)
}

// isBlank accepts strings made only of spaces and tabs.
func isBlank(fl validator.FieldLevel) bool {
	return strings.Trim(fl.Field().String(), " \t") == ""
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
