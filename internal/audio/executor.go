package audio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
)

// ExecResult holds the outcome of a single external command.
type ExecResult struct {
	Stderr string
	Err    error
}

// Executor runs one external command given as an argument list whose first
// element is the program.
type Executor interface {
	Execute(ctx context.Context, args []string) ExecResult
}

// CommandExecutor runs commands with os/exec. When Tee is non-nil, the
// child's stdout and stderr are also copied to it in real time; otherwise
// output is captured silently. Stdin is the null device, so an interactive
// decoder cannot block on the terminal.
type CommandExecutor struct {
	Tee io.Writer
}

// NewExecutor returns a CommandExecutor that tees tool output to os.Stderr
// when verbose is set.
func NewExecutor(verbose bool) *CommandExecutor {
	if verbose {
		return &CommandExecutor{Tee: os.Stderr}
	}
	return &CommandExecutor{}
}

// Execute runs args[0] with args[1:] and waits for it to exit. The command
// is not bound to ctx: a started decode or encode always runs to completion.
// ctx is only checked before starting, so an interrupted batch stops cleanly
// between commands.
func (e *CommandExecutor) Execute(ctx context.Context, args []string) ExecResult {
	if len(args) == 0 {
		return ExecResult{Err: errors.New("empty command")}
	}
	if err := ctx.Err(); err != nil {
		return ExecResult{Err: err}
	}

	cmd := exec.Command(args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if e.Tee != nil {
		tee := &lockedWriter{w: e.Tee}
		cmd.Stdout = tee
		cmd.Stderr = io.MultiWriter(&stderrBuf, tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// lockedWriter serializes writes from the stdout and stderr copy goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
