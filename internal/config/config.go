// Package config holds runtime configuration: defaults, config-file and
// environment loading, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
)

// DefaultPattern matches the common "S01E02" convention. The named groups
// season_number and episode_number are required in any override.
const DefaultPattern = `[Ss](?P<season_number>\d+)[Ee](?P<episode_number>\d+)`

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then optionally by [Config.LoadFile] and [Config.LoadEnv], and finally by
// CLI flags before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths.
	InputDir  string `yaml:"folder"`
	OutputDir string `yaml:"output_location" env:"TVAUDIO_OUTPUT"`

	// Tagging and naming.
	ShowName             string `yaml:"show" env:"TVAUDIO_SHOW"`
	SeasonEpisodePattern string `yaml:"season_episode_regex" env:"TVAUDIO_REGEX"`

	// External tools.
	Decoder       string `yaml:"decoder" env:"TVAUDIO_DECODER"` // Default: "mplayer".
	Encoder       string `yaml:"encoder" env:"TVAUDIO_ENCODER"` // Default: "lame".
	EncoderPreset string `yaml:"-"`                             // Fixed: "phone".

	// Behavior flags.
	DryRun       bool `yaml:"dry_run"`
	SkipExisting bool `yaml:"skip_existing"` // Default: false (original overwrites).
	RemoveWav    bool `yaml:"remove_wav"`    // Default: false (wav kept next to the video).

	// Display and logging.
	Verbose   bool      `yaml:"verbose"`
	ColorMode ColorMode `yaml:"color"`
	LogFile   string    `yaml:"log_file" env:"TVAUDIO_LOG"`
	CheckOnly bool      `yaml:"-"`
}

// DefaultConfig returns a Config with the defaults of the original
// to_tv_audio script. OutputDir is the current working directory.
func DefaultConfig() Config {
	out := "."
	if wd, err := os.Getwd(); err == nil {
		out = wd
	}
	return Config{
		OutputDir:            out,
		SeasonEpisodePattern: DefaultPattern,
		Decoder:              "mplayer",
		Encoder:              "lame",
		EncoderPreset:        "phone",
		ColorMode:            ColorAuto,
	}
}

// LoadFile reads a YAML config file into c. Keys absent from the file keep
// their current values; environment variables are applied afterwards by
// cleanenv, so they win over the file.
func (c *Config) LoadFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}
	if err := cleanenv.ReadConfig(expanded, c); err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}
	return nil
}

// LoadEnv applies TVAUDIO_* environment variables over c.
func (c *Config) LoadEnv() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// NormalizeDirArg expands a leading "~" and strips trailing slashes from a
// directory path. The filesystem root "/" is returned unchanged so we don't
// produce an empty string.
func NormalizeDirArg(path string) string {
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks the enum fields and the settings every run needs. When in
// CheckOnly mode the input folder and show name are not required.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if strings.TrimSpace(c.Decoder) == "" {
		return errors.New("decoder must not be empty")
	}
	if strings.TrimSpace(c.Encoder) == "" {
		return errors.New("encoder must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need exactly one input folder")
	}
	if strings.TrimSpace(c.ShowName) == "" {
		return errors.New("show name is required (-s/--show)")
	}
	if c.OutputDir == "" {
		return errors.New("output location must not be empty")
	}
	if c.SeasonEpisodePattern == "" {
		return errors.New("season/episode regex must not be empty")
	}
	return nil
}
