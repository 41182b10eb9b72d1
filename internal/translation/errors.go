package translation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind enumerates every failure class a translation run can surface.
// Exactly one kind describes each failure.
type ErrorKind int

const (
	ErrEmptyInput ErrorKind = iota + 1
	ErrMissingCredential
	ErrNetworkFailure
	ErrAuthFailure
	ErrMalformedResponse
	ErrExecutableNotFound
	ErrProcessTimeout
	ErrProcessFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyInput:
		return "empty_input"
	case ErrMissingCredential:
		return "missing_credential"
	case ErrNetworkFailure:
		return "network_failure"
	case ErrAuthFailure:
		return "auth_failure"
	case ErrMalformedResponse:
		return "malformed_response"
	case ErrExecutableNotFound:
		return "executable_not_found"
	case ErrProcessTimeout:
		return "process_timeout"
	case ErrProcessFailure:
		return "process_failure"
	default:
		return "unknown"
	}
}

// Error is the single error type crossing the translation boundary. The
// zero values of StatusCode, ExitCode and Stderr are meaningful only for
// the kinds that carry them.
type Error struct {
	Kind       ErrorKind
	StatusCode int    // ErrAuthFailure
	ExitCode   int    // ErrProcessFailure
	Stderr     string // ErrProcessFailure, captured verbatim
	Detail     string // optional diagnostics shown under the user message
	cause      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(e.Kind.String())
	switch e.Kind {
	case ErrAuthFailure:
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	case ErrProcessFailure:
		fmt.Fprintf(&b, ": exit code %d", e.ExitCode)
		if s := strings.TrimSpace(e.Stderr); s != "" {
			b.WriteString(": ")
			b.WriteString(s)
		}
	}
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		b.WriteString(": ")
		b.WriteString(detail)
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// UserMessage renders the fixed dialog message for the error's kind, with
// diagnostics appended when present.
func (e *Error) UserMessage() string {
	if e == nil {
		return "Translation failed"
	}

	var msg string
	switch e.Kind {
	case ErrEmptyInput:
		msg = "No text selected"
	case ErrMissingCredential:
		msg = "API key not configured"
	case ErrNetworkFailure:
		msg = "Translation service could not be reached"
	case ErrAuthFailure:
		msg = fmt.Sprintf("Translation service rejected the API key (status %d)", e.StatusCode)
	case ErrMalformedResponse:
		msg = "Translation service returned an unusable response"
	case ErrExecutableNotFound:
		msg = "plamo-translate not found"
	case ErrProcessTimeout:
		msg = "Translation timed out"
	case ErrProcessFailure:
		msg = fmt.Sprintf("Translation command failed (exit code %d)", e.ExitCode)
	default:
		msg = "Translation failed"
	}

	if detail := strings.TrimSpace(e.Detail); detail != "" {
		msg += "\n\n" + detail
	}
	if e.Kind == ErrProcessFailure {
		if s := strings.TrimSpace(e.Stderr); s != "" {
			msg += "\n\n" + s
		}
	}
	return msg
}

// Coerce maps err into the taxonomy. Errors already carrying a kind pass
// through unchanged; anything else becomes the fallback kind with err as
// its cause.
func Coerce(err error, fallback ErrorKind) *Error {
	var terr *Error
	if errors.As(err, &terr) {
		return terr
	}
	return &Error{Kind: fallback, cause: err}
}

// KindOf extracts the taxonomy kind from err, or 0 when err has none.
func KindOf(err error) ErrorKind {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return 0
}
