package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/honyaku/internal/shellenv"
)

// DefaultPlamoTimeout bounds one local model run.
const DefaultPlamoTimeout = 60 * time.Second

// localExecResolver is the seam PlamoBackend uses to find its binary.
type localExecResolver interface {
	Resolve(ctx context.Context) (ResolvedExecutable, error)
}

// PlamoBackend translates through the plamo-translate CLI. No network is
// involved; failures come from resolution, the process exit status, or the
// run deadline.
type PlamoBackend struct {
	resolver localExecResolver
	runner   shellenv.Runner
	timeout  time.Duration
	log      zerolog.Logger
}

func NewPlamoBackend(resolver *ExecutableResolver, runner shellenv.Runner, timeout time.Duration, log zerolog.Logger) *PlamoBackend {
	if runner == nil {
		runner = shellenv.ExecRunner{}
	}
	if timeout <= 0 {
		timeout = DefaultPlamoTimeout
	}
	return &PlamoBackend{resolver: resolver, runner: runner, timeout: timeout, log: log}
}

func (b *PlamoBackend) Name() string {
	return "plamo"
}

func (b *PlamoBackend) Translate(ctx context.Context, req Request) (string, error) {
	resolved, err := b.resolver.Resolve(ctx)
	if err != nil {
		return "", err
	}

	b.log.Debug().Str("path", resolved.Path).Str("found_in", resolved.Source.String()).Msg("running plamo-translate")

	runCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	res, err := b.runner.Run(runCtx, "", resolved.Path, "--input", req.Text, "--to", req.Direction().TargetCode())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &Error{Kind: ErrProcessTimeout, Detail: fmt.Sprintf("plamo-translate did not finish within %s", b.timeout)}
		}
		return "", &Error{Kind: ErrProcessFailure, ExitCode: -1, cause: err}
	}
	if res.ExitCode != 0 {
		return "", &Error{Kind: ErrProcessFailure, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	out := strings.TrimSpace(res.Stdout)
	if out == "" {
		return "", &Error{Kind: ErrMalformedResponse, Detail: "plamo-translate produced no output"}
	}
	return out, nil
}
