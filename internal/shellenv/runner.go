package shellenv

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// RunResult captures one finished subprocess.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes one command and waits for it. Implementations must kill
// the process when ctx expires.
type Runner interface {
	Run(ctx context.Context, stdin, name string, args ...string) (RunResult, error)
}

// ExecRunner runs commands through os/exec. A non-zero exit is reported in
// RunResult.ExitCode with a nil error; errors are reserved for processes
// that could not start or were killed by the context deadline.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, stdin, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, nil
	}
	return res, err
}
