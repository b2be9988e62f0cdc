// Command tvaudio is the entrypoint for the TV audio ripper CLI.
// It builds the config from file, environment and flags, then either runs
// the system check (--check) or rips every episode under the input folder.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/tvaudio/internal/check"
	"github.com/backmassage/tvaudio/internal/config"
	"github.com/backmassage/tvaudio/internal/display"
	"github.com/backmassage/tvaudio/internal/logging"
	"github.com/backmassage/tvaudio/internal/pipeline"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// errReported marks a failure that was already logged.
var errReported = errors.New("reported")

func main() {
	os.Exit(run())
}

func run() int {
	cmd := config.NewCommand(fmt.Sprintf("%s (%s)", version, commit), ripFolder)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "tvaudio: %v\n", err)
			fmt.Fprintln(os.Stderr, config.Usage(cmd))
		}
		return 1
	}
	return 0
}

// ripFolder runs after the config is merged and validated. Per-file
// failures are counted in the summary and do not change the exit status.
func ripFolder(cmd *cobra.Command, cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner(cmd.OutOrStdout())

	// 1. System check only.
	if cfg.CheckOnly {
		if !check.RunCheck(cfg, log) {
			return errReported
		}
		return nil
	}

	// 2. Input must be a directory; output is created if needed.
	if fi, err := os.Stat(cfg.InputDir); err != nil || !fi.IsDir() {
		log.Error("Input folder not found: %s", cfg.InputDir)
		return errReported
	}
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("Cannot create output directory: %s", cfg.OutputDir)
			return errReported
		}
		// 3. Fail fast when mplayer or lame is missing.
		if err := check.CheckDeps(cfg); err != nil {
			log.Error("%v", err)
			log.Error("Run with --check for details")
			return errReported
		}
	}

	log.Info("=== tvaudio v%s ===", version)

	// 4. Ctrl-C stops after the current command finishes.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := pipeline.Run(ctx, cfg, log); err != nil {
		log.Error("%v", err)
		return errReported
	}
	return nil
}
