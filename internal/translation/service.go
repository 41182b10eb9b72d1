package translation

import (
	"context"
	"time"

	"horse.fit/honyaku/internal/language"
)

// Backend performs one translation round-trip against a single engine.
// Implementations resolve their own invocation target (API credential or
// executable path) fresh on every call, and never retry: the first failure
// of any stage is final.
type Backend interface {
	// Translate returns the translated text for req. Failures are *Error
	// values carrying exactly one ErrorKind.
	Translate(ctx context.Context, req Request) (string, error)

	// Name returns the registry name of the backend.
	Name() string
}

// Request describes one translation invocation.
type Request struct {
	Text   string
	Source language.Language
}

// Direction returns the translation direction the source language selects.
func (r Request) Direction() language.Direction {
	return language.DirectionFor(r.Source)
}

// Result is the outcome of one successful translation.
type Result struct {
	TranslatedText string

	Source    language.Language
	SourceISO string // ISO 639-1 annotation, empty when undetermined
	Direction language.Direction

	// TranslateDuration covers the backend invocation, including the
	// backend's own target resolution; TotalDuration adds trimming and
	// detection on top.
	TranslateDuration time.Duration
	TotalDuration     time.Duration
}
