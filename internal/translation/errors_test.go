package translation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "bare kind",
			err:  &Error{Kind: ErrEmptyInput},
			want: "empty_input",
		},
		{
			name: "auth failure carries status",
			err:  &Error{Kind: ErrAuthFailure, StatusCode: 401, Detail: "Invalid API key"},
			want: "auth_failure: status 401: Invalid API key",
		},
		{
			name: "process failure carries exit code and stderr",
			err:  &Error{Kind: ErrProcessFailure, ExitCode: 2, Stderr: "model not loaded\n"},
			want: "process_failure: exit code 2: model not loaded",
		},
		{
			name: "cause is appended",
			err:  &Error{Kind: ErrNetworkFailure, cause: errors.New("dial tcp: timeout")},
			want: "network_failure: dial tcp: timeout",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("unexpected message: %q", got)
			}
		})
	}
}

func TestUserMessageTemplates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: ErrEmptyInput}, "No text selected"},
		{&Error{Kind: ErrMissingCredential}, "API key not configured"},
		{&Error{Kind: ErrNetworkFailure}, "Translation service could not be reached"},
		{&Error{Kind: ErrAuthFailure, StatusCode: 403}, "Translation service rejected the API key (status 403)"},
		{&Error{Kind: ErrMalformedResponse}, "Translation service returned an unusable response"},
		{&Error{Kind: ErrExecutableNotFound}, "plamo-translate not found"},
		{&Error{Kind: ErrProcessTimeout}, "Translation timed out"},
		{&Error{Kind: ErrProcessFailure, ExitCode: 1}, "Translation command failed (exit code 1)"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.err.Kind.String(), func(t *testing.T) {
			t.Parallel()
			if got := tc.err.UserMessage(); got != tc.want {
				t.Fatalf("unexpected user message: %q", got)
			}
		})
	}
}

func TestUserMessageAppendsDiagnostics(t *testing.T) {
	t.Parallel()

	err := &Error{Kind: ErrMissingCredential, Detail: "OPENAI_API_KEY is not set"}
	got := err.UserMessage()
	if !strings.HasPrefix(got, "API key not configured\n\n") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "OPENAI_API_KEY is not set") {
		t.Fatalf("detail missing from message: %q", got)
	}

	perr := &Error{Kind: ErrProcessFailure, ExitCode: 3, Stderr: "boom\n"}
	if got := perr.UserMessage(); !strings.HasSuffix(got, "\n\nboom") {
		t.Fatalf("stderr missing from message: %q", got)
	}
}

func TestCoerce(t *testing.T) {
	t.Parallel()

	tagged := &Error{Kind: ErrAuthFailure, StatusCode: 401}
	if got := Coerce(fmt.Errorf("invoke: %w", tagged), ErrNetworkFailure); got != tagged {
		t.Fatalf("expected wrapped taxonomy error to pass through, got %+v", got)
	}

	plain := errors.New("boom")
	got := Coerce(plain, ErrNetworkFailure)
	if got.Kind != ErrNetworkFailure {
		t.Fatalf("unexpected kind: %v", got.Kind)
	}
	if !errors.Is(got, plain) {
		t.Fatalf("expected cause to be preserved")
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	if got := KindOf(&Error{Kind: ErrProcessTimeout}); got != ErrProcessTimeout {
		t.Fatalf("unexpected kind: %v", got)
	}
	if got := KindOf(errors.New("boom")); got != 0 {
		t.Fatalf("expected zero kind for untagged error, got %v", got)
	}
}
