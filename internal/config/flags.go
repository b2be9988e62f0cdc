package config

// This file builds the cobra command and maps its flags onto Config.
// Flags are applied last, and only when set on the command line, so values
// loaded from a config file or the environment hold unless overridden.

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RunFunc receives the fully merged and validated Config.
type RunFunc func(cmd *cobra.Command, cfg *Config) error

// flagValues holds raw flag values until they are merged into Config.
type flagValues struct {
	configFile   string
	output       string
	show         string
	pattern      string
	decoder      string
	encoder      string
	logFile      string
	dryRun       bool
	skipExisting bool
	removeWav    bool
	verbose      bool
	check        bool
	forceColor   bool
	noColor      bool
}

// NewCommand returns the root command. On execution it builds a Config from
// defaults, the optional --config file, TVAUDIO_* environment variables and
// the command line (in that order), validates it, and calls run.
func NewCommand(version string, run RunFunc) *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "tvaudio [flags] <folder>",
		Short: "Rip TV episode audio to tagged MP3s",
		Long: `tvaudio finds .avi, .mp4 and .mkv files under <folder>, dumps each audio
track to a PCM wav with mplayer, encodes it with "lame --preset phone", and
writes <output>/S##E##.mp3 with standardized "TV Audio" ID3 tags. Season and
episode numbers are parsed from the filename, or from the folder path above it.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd.Flags(), &fv, args)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringVarP(&fv.show, "show", "s", "", "Show name, written as the artist tag (required)")
	fs.StringVarP(&fv.output, "output-location", "o", "", "Output directory (default: current directory)")
	fs.StringVarP(&fv.pattern, "season-episode-regex", "r", "",
		"Override the default season/episode regex (needs groups season_number and episode_number)")
	fs.StringVar(&fv.decoder, "decoder", "", "Decoder binary (default: mplayer)")
	fs.StringVar(&fv.encoder, "encoder", "", "Encoder binary (default: lame)")
	fs.BoolVarP(&fv.dryRun, "dry-run", "n", false, "Preview only; do not run the decoder or encoder")
	fs.BoolVar(&fv.skipExisting, "skip-existing", false, "Skip files whose mp3 already exists")
	fs.BoolVar(&fv.removeWav, "remove-wav", false, "Delete the intermediate wav after a successful encode")
	fs.BoolVarP(&fv.verbose, "verbose", "v", false, "Verbose output (commands and tool output)")
	fs.BoolVar(&fv.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&fv.noColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&fv.logFile, "log", "l", "", "Append logs to file")
	fs.BoolVarP(&fv.check, "check", "c", false, "Check that the decoder and encoder are installed and exit")
	fs.StringVar(&fv.configFile, "config", "", "YAML config file")

	return cmd
}

// buildConfig merges defaults, config file, environment and flags.
func buildConfig(fs *pflag.FlagSet, fv *flagValues, args []string) (*Config, error) {
	cfg := DefaultConfig()

	if fv.configFile != "" {
		if err := cfg.LoadFile(fv.configFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}

	applyFlags(fs, fv, &cfg)

	if err := parsePositionalArgs(args, &cfg); err != nil {
		return nil, err
	}

	if cfg.InputDir != "" {
		cfg.InputDir = absDir(NormalizeDirArg(cfg.InputDir))
	}
	if cfg.OutputDir != "" {
		cfg.OutputDir = absDir(NormalizeDirArg(cfg.OutputDir))
	}
	if cfg.LogFile != "" {
		cfg.LogFile = NormalizeDirArg(cfg.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// absDir resolves path against the working directory. Directory-name
// matching needs the folder's own name, which "." does not carry.
func absDir(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// applyFlags copies every flag the user actually passed into cfg.
func applyFlags(fs *pflag.FlagSet, fv *flagValues, cfg *Config) {
	if fs.Changed("show") {
		cfg.ShowName = fv.show
	}
	if fs.Changed("output-location") {
		cfg.OutputDir = fv.output
	}
	if fs.Changed("season-episode-regex") {
		cfg.SeasonEpisodePattern = fv.pattern
	}
	if fs.Changed("decoder") {
		cfg.Decoder = fv.decoder
	}
	if fs.Changed("encoder") {
		cfg.Encoder = fv.encoder
	}
	if fs.Changed("log") {
		cfg.LogFile = fv.logFile
	}
	if fs.Changed("dry-run") {
		cfg.DryRun = fv.dryRun
	}
	if fs.Changed("skip-existing") {
		cfg.SkipExisting = fv.skipExisting
	}
	if fs.Changed("remove-wav") {
		cfg.RemoveWav = fv.removeWav
	}
	if fs.Changed("verbose") {
		cfg.Verbose = fv.verbose
	}
	if fs.Changed("check") {
		cfg.CheckOnly = fv.check
	}
	if fv.noColor {
		cfg.ColorMode = ColorNever
	} else if fv.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir from the single positional arg. The
// folder may also come from the config file; CheckOnly needs neither.
func parsePositionalArgs(args []string, cfg *Config) error {
	if len(args) == 1 {
		cfg.InputDir = args[0]
		return nil
	}
	if cfg.CheckOnly || cfg.InputDir != "" {
		return nil
	}
	return errors.New("need exactly one input folder")
}

// Usage returns a short usage hint for error output.
func Usage(cmd *cobra.Command) string {
	return fmt.Sprintf("usage: %s (see --help)", cmd.UseLine())
}
