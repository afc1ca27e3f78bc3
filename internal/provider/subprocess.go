package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Subprocess runs the integration artifact as a child process, passing the
// question as its sole argument. The API key and model travel through the
// child's environment so they never appear in process listings.
type Subprocess struct {
	path    string
	apiKey  string
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewSubprocess(path, apiKey, model string, timeout time.Duration, logger *zap.Logger) *Subprocess {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subprocess{
		path:    path,
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Invoke spawns one child per call and blocks until it exits or the timeout
// lapses. Stdout is parsed for the marker-framed result; stderr is captured
// for diagnostics only.
func (s *Subprocess) Invoke(ctx context.Context, question string) (Result, time.Duration, error) {
	if _, err := os.Stat(s.path); err != nil {
		return Result{}, 0, fmt.Errorf("%w at %q: build it with `go build -o %s ./cmd/tandem-reasoner`",
			ErrIntegrationMissing, s.path, s.path)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, s.path, question)
	cmd.Env = append(os.Environ(),
		"OPENROUTER_API_KEY="+s.apiKey,
		"TANDEM_REASONER_MODEL="+s.model,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	s.logger.Debug("integration exited",
		zap.Duration("elapsed", elapsed),
		zap.Int("exit_code", exitCode(runErr)),
		zap.Int("stdout_bytes", stdout.Len()),
		zap.Int("stderr_bytes", stderr.Len()),
	)

	if runErr != nil {
		if ctx.Err() != nil {
			return Result{}, elapsed, fmt.Errorf("%w: %v after %s", ErrChildProcessFailed, ctx.Err(), elapsed.Round(time.Millisecond))
		}
		return Result{}, elapsed, fmt.Errorf("%w: exit code %d (stderr: %s)",
			ErrChildProcessFailed, exitCode(runErr), strings.TrimSpace(stderr.String()))
	}

	res, err := Extract(stdout.String())
	if err != nil {
		return Result{}, elapsed, err
	}
	return res, elapsed, nil
}

// exitCode unwraps the exit status from an error returned by Cmd.Run.
// Returns -1 when the process never ran or was killed by a signal.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
