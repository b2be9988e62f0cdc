// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for the decoder and encoder binaries.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/tvaudio/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrDecoderNotFound = errors.New("decoder not found on PATH")
	ErrEncoderNotFound = errors.New("encoder not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the --check flow: reports the location and version line of
// the decoder and encoder. Returns false when either is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, "Decoder", cfg.Decoder)
	if !checkTool(log, "Encoder", cfg.Encoder, "--version") {
		ok = false
	}
	return ok
}

// checkTool verifies name is on PATH and logs the first line it prints.
// mplayer has no version flag; run bare, it prints its banner before usage.
func checkTool(log Logger, label, name string, versionArgs ...string) bool {
	path, err := exec.LookPath(name)
	if err != nil {
		log.Error("%s not found: %s", label, name)
		return false
	}
	log.Success("%s: %s", label, path)

	out, _ := exec.Command(path, versionArgs...).CombinedOutput()
	if line := firstLine(string(out)); line != "" {
		log.Info("  %s", line)
	} else {
		log.Warn("  %s printed no version information", name)
	}
	return true
}

// CheckDeps is the pre-pipeline validation: it verifies that the decoder
// and encoder are on PATH. Returns a wrapped sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.Decoder); err != nil {
		return fmt.Errorf("%w: %s", ErrDecoderNotFound, cfg.Decoder)
	}
	if _, err := exec.LookPath(cfg.Encoder); err != nil {
		return fmt.Errorf("%w: %s", ErrEncoderNotFound, cfg.Encoder)
	}
	return nil
}

// firstLine returns the first non-empty trimmed line of s.
func firstLine(s string) string {
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}
