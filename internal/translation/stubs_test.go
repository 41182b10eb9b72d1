package translation

import (
	"context"

	"horse.fit/honyaku/internal/shellenv"
)

type stubCall struct {
	stdin       string
	name        string
	args        []string
	hadDeadline bool
}

// stubRunner records every invocation and replies with a fixed result, or
// with respond when set.
type stubRunner struct {
	calls   []stubCall
	res     shellenv.RunResult
	err     error
	respond func(name string, args []string) (shellenv.RunResult, error)
}

func (s *stubRunner) Run(ctx context.Context, stdin, name string, args ...string) (shellenv.RunResult, error) {
	_, hadDeadline := ctx.Deadline()
	s.calls = append(s.calls, stubCall{stdin: stdin, name: name, args: args, hadDeadline: hadDeadline})
	if s.respond != nil {
		return s.respond(name, args)
	}
	return s.res, s.err
}

type stubBackend struct {
	calls []Request
	text  string
	err   error
}

func (s *stubBackend) Translate(ctx context.Context, req Request) (string, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubBackend) Name() string {
	return "stub"
}
