package audio

import (
	"errors"
	"fmt"
	"strings"
)

// Stage identifies which external command failed.
type Stage string

const (
	StageDecode Stage = "decode"
	StageEncode Stage = "encode"
)

// Sentinel errors wrapped by StageError, one per stage.
var (
	ErrDecodeFailed = errors.New("audio dump failed")
	ErrEncodeFailed = errors.New("mp3 encode failed")
)

// StageError reports a non-zero exit (or start failure) of one stage.
type StageError struct {
	Stage  Stage
	Path   string // The file the stage was reading: video for decode, wav for encode.
	Stderr string
	Err    error // Underlying *exec.ExitError or start error.
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.sentinel(), e.Path, e.Err)
}

// Is matches the stage sentinel so callers can use errors.Is.
func (e *StageError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *StageError) Unwrap() error { return e.Err }

func (e *StageError) sentinel() error {
	if e.Stage == StageEncode {
		return ErrEncodeFailed
	}
	return ErrDecodeFailed
}

// TailStderr returns at most the last n non-empty lines of captured stderr.
func (e *StageError) TailStderr(n int) []string {
	trimmed := strings.TrimSpace(e.Stderr)
	if trimmed == "" {
		return nil
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
