package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/tvaudio/internal/audio"
	"github.com/backmassage/tvaudio/internal/config"
	"github.com/backmassage/tvaudio/internal/display"
	"github.com/backmassage/tvaudio/internal/logging"
	"github.com/backmassage/tvaudio/internal/naming"
	"github.com/backmassage/tvaudio/internal/tagging"
)

// stderrTailLines is how much captured tool output is logged on failure.
const stderrTailLines = 5

// Runner processes a batch of videos sequentially with a fixed parser and
// executor.
type Runner struct {
	cfg      *config.Config
	log      *logging.Logger
	parser   *naming.Parser
	exec     audio.Executor
	resolver *naming.CollisionResolver
}

// NewRunner validates the season/episode pattern and returns a Runner. An
// invalid pattern, or one missing a required named group, is reported here
// before any file is touched.
func NewRunner(cfg *config.Config, log *logging.Logger, ex audio.Executor) (*Runner, error) {
	parser, err := naming.NewParser(cfg.SeasonEpisodePattern)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:      cfg,
		log:      log,
		parser:   parser,
		exec:     ex,
		resolver: naming.NewCollisionResolver(),
	}, nil
}

// Run is the top-level batch entry point using the os/exec executor.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	r, err := NewRunner(cfg, log, audio.NewExecutor(cfg.Verbose))
	if err != nil {
		return RunStats{}, err
	}
	return r.Run(ctx)
}

// Run discovers videos under the input folder and processes each one to
// completion before starting the next. Per-file failures are logged and
// counted; only a discovery failure is returned as an error.
func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats

	files, err := Discover(r.cfg.InputDir)
	if err != nil {
		return stats, fmt.Errorf("file discovery failed: %w", err)
	}

	stats.Total = len(files)
	r.logBatchHeader(&stats)

	for i, path := range files {
		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			break
		}
		stats.Current = i + 1
		r.processFile(ctx, path, &stats)
	}

	r.logSummary(&stats)
	return stats, nil
}

// processFile handles one video: parse → dump → encode → tag.
func (r *Runner) processFile(ctx context.Context, path string, stats *RunStats) {
	cfg, log := r.cfg, r.log

	ep, err := r.parser.Parse(path)
	if err != nil {
		log.Error("[%d/%d] %v", stats.Current, stats.Total, err)
		stats.Unparsed++
		return
	}

	wav := naming.WavPath(path, ep)
	mp3 := naming.MP3Path(cfg.OutputDir, ep)
	log.Info("[%d/%d] Will rip %s to %s", stats.Current, stats.Total, filepath.Base(path), mp3)

	if cfg.SkipExisting {
		if _, err := os.Stat(mp3); err == nil {
			log.Warn("  Skip (exists): %s", filepath.Base(mp3))
			stats.Skipped++
			return
		}
	}

	decodeArgs := audio.DecodeArgs(cfg, path, wav)
	encodeArgs := audio.EncodeArgs(cfg, wav, mp3)

	if cfg.DryRun {
		log.Info("  $ %s", audio.CommandLine(decodeArgs))
		log.Info("  $ %s", audio.CommandLine(encodeArgs))
		log.Success("  [DRY] Would tag %s as %q, %s", filepath.Base(mp3), cfg.ShowName, ep.Code())
		if prev := r.resolver.Claim(path, mp3); prev != "" {
			log.Warn("  [DRY] Would overwrite %s written from %s this run", filepath.Base(mp3), prev)
		}
		stats.Planned++
		return
	}

	start := time.Now()

	log.Debug("  $ %s", audio.CommandLine(decodeArgs))
	if err := audio.Decode(ctx, r.exec, cfg, path, wav); err != nil {
		log.Error("Could not dump %s", path)
		r.logStageError(err)
		stats.DecodeFailed++
		return
	}

	log.Debug("  $ %s", audio.CommandLine(encodeArgs))
	if err := audio.Encode(ctx, r.exec, cfg, wav, mp3); err != nil {
		log.Error("Could not encode %s", wav)
		r.logStageError(err)
		stats.EncodeFailed++
		return
	}

	if prev := r.resolver.Claim(path, mp3); prev != "" {
		log.Warn("  Overwrote %s written from %s this run", filepath.Base(mp3), prev)
	}

	if cfg.RemoveWav {
		if err := os.Remove(wav); err != nil {
			log.Warn("  Could not remove %s: %v", wav, err)
		}
	}

	if err := tagging.Tag(mp3, tagging.NewFields(cfg.ShowName, ep)); err != nil {
		log.Error("Could not tag %s", mp3)
		log.Error("  %v", err)
		stats.TagFailed++
		return
	}

	var size int64
	if fi, err := os.Stat(mp3); err == nil {
		size = fi.Size()
	}
	stats.TotalOutputBytes += size
	stats.Ripped++
	log.Success("Success. (%s in %s)", display.FormatBytes(size), display.FormatDuration(time.Since(start)))
}

// logStageError logs the tail of the failed tool's stderr. In verbose mode
// the output was already streamed, so only the exit error is repeated.
func (r *Runner) logStageError(err error) {
	var se *audio.StageError
	if !errors.As(err, &se) {
		r.log.Error("  %v", err)
		return
	}
	r.log.Error("  %v", se.Err)
	if r.log.Verbose() {
		return
	}
	for _, l := range se.TailStderr(stderrTailLines) {
		r.log.Error("  | %s", l)
	}
}

// --- Logging helpers ---

func (r *Runner) logBatchHeader(stats *RunStats) {
	cfg := r.cfg
	r.log.Info("Found %d video files in %s", stats.Total, cfg.InputDir)
	r.log.Info("Show: %s", cfg.ShowName)
	r.log.Info("Output: %s", cfg.OutputDir)
	r.log.Info("Season/episode regex: %s", r.parser.Pattern())
	r.log.Info("Decoder: %s, encoder: %s --preset %s", cfg.Decoder, cfg.Encoder, cfg.EncoderPreset)
	if cfg.SkipExisting {
		r.log.Info("Existing mp3s: skip")
	}
	if cfg.RemoveWav {
		r.log.Info("Intermediate wavs: remove after encode")
	}
	if cfg.DryRun {
		r.log.Warn("DRY RUN: nothing will be decoded, encoded or tagged")
	}
}

func (r *Runner) logSummary(stats *RunStats) {
	r.log.Info("==============================")
	if r.cfg.DryRun {
		r.log.Info("Done (dry run): %d would be ripped, %d skipped, %d failed", stats.Planned, stats.Skipped, stats.Failed())
	} else {
		r.log.Info("Done: %d ripped, %d skipped, %d failed", stats.Ripped, stats.Skipped, stats.Failed())
	}
	if stats.Failed() > 0 {
		r.log.Info("  Unparseable names: %d", stats.Unparsed)
		r.log.Info("  Dump failures:     %d", stats.DecodeFailed)
		r.log.Info("  Encode failures:   %d", stats.EncodeFailed)
		r.log.Info("  Tag failures:      %d", stats.TagFailed)
	}
	if !r.cfg.DryRun && stats.Ripped > 0 {
		r.log.Success("  Total output: %s", display.FormatBytes(stats.TotalOutputBytes))
	}
}
