// Package shellenv recovers environment state from the user's login shell.
// Quick Action processes launch outside any shell profile, so PATH entries
// and exported keys from the user's dotfiles are invisible to them unless
// re-sourced this way.
package shellenv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Kind identifies a shell family. Families differ in how PATH is printed
// and where their users typically install tools.
type Kind string

const (
	KindSh   Kind = "sh"
	KindBash Kind = "bash"
	KindZsh  Kind = "zsh"
	KindFish Kind = "fish"
)

// DefaultShellPath is used when $SHELL is unset.
const DefaultShellPath = "/bin/sh"

const defaultProbeTimeout = 3 * time.Second

// DetectKind classifies a shell by the basename of its path. Unknown shells
// are treated as plain sh.
func DetectKind(shellPath string) Kind {
	switch filepath.Base(strings.TrimSpace(shellPath)) {
	case "fish":
		return KindFish
	case "zsh":
		return KindZsh
	case "bash":
		return KindBash
	default:
		return KindSh
	}
}

// Probe queries one login shell for environment state. Every query is
// bounded by the probe timeout so a broken shell profile cannot hang the
// invocation.
type Probe struct {
	shellPath string
	kind      Kind
	timeout   time.Duration
	runner    Runner
}

func NewProbe(shellPath string, timeout time.Duration, runner Runner) *Probe {
	path := strings.TrimSpace(shellPath)
	if path == "" {
		path = DefaultShellPath
	}
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Probe{
		shellPath: path,
		kind:      DetectKind(path),
		timeout:   timeout,
		runner:    runner,
	}
}

func (p *Probe) Kind() Kind {
	return p.kind
}

func (p *Probe) ShellPath() string {
	return p.shellPath
}

// LookupVar echoes $name through a login shell and returns the trimmed
// value; "" means the variable is unset in the user's profile too.
func (p *Probe) LookupVar(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.runner.Run(ctx, "", p.shellPath, "-l", "-c", fmt.Sprintf("echo $%s", name))
	if err != nil {
		return "", fmt.Errorf("login shell lookup of %s: %w", name, err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("login shell lookup of %s: exit code %d", name, res.ExitCode)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// LoginPATH returns the PATH entries visible in the user's login shell.
// fish needs an interactive invocation to read its config and prints one
// entry per line; POSIX shells print a single colon-joined line.
func (p *Probe) LoginPATH(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var (
		res RunResult
		err error
	)
	if p.kind == KindFish {
		res, err = p.runner.Run(ctx, "", p.shellPath, "-l", "-i", "-c", `printf "%s\n" $PATH`)
	} else {
		res, err = p.runner.Run(ctx, "", p.shellPath, "-l", "-c", `echo "$PATH"`)
	}
	if err != nil {
		return nil, fmt.Errorf("login shell PATH query: %w", err)
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("login shell PATH query: exit code %d", res.ExitCode)
	}

	output := strings.TrimSpace(res.Stdout)
	if output == "" {
		return nil, fmt.Errorf("login shell PATH query: empty output")
	}

	separator := ":"
	if p.kind == KindFish {
		separator = "\n"
	}

	parts := strings.Split(output, separator)
	dirs := make([]string, 0, len(parts))
	for _, part := range parts {
		if dir := strings.TrimSpace(part); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("login shell PATH query: no entries")
	}
	return dirs, nil
}
