package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/honyaku/internal/langdetect"
	"horse.fit/honyaku/internal/language"
)

// Translator runs the whole pass for one input: trim, detect, invoke the
// backend, measure. It holds no state across invocations and never
// retries; each stage's first failure is final.
type Translator struct {
	backend Backend
	log     zerolog.Logger
}

func NewTranslator(backend Backend, log zerolog.Logger) (*Translator, error) {
	if backend == nil {
		return nil, fmt.Errorf("translation backend is required")
	}
	return &Translator{backend: backend, log: log}, nil
}

// Translate performs one blocking translation round-trip. Whitespace-only
// input fails with ErrEmptyInput before the backend is consulted, so no
// credential lookup, network call or process spawn happens for it.
func (t *Translator) Translate(ctx context.Context, text string) (*Result, error) {
	if t == nil || t.backend == nil {
		return nil, fmt.Errorf("translator is not initialized")
	}

	start := time.Now()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &Error{Kind: ErrEmptyInput}
	}

	source := langdetect.Detect(trimmed)
	direction := language.DirectionFor(source)
	sourceISO := langdetect.DetectISO6391(trimmed)

	t.log.Debug().
		Str("backend", t.backend.Name()).
		Str("source", source.String()).
		Str("source_iso", sourceISO).
		Str("direction", direction.String()).
		Int("chars", len(trimmed)).
		Msg("starting translation")

	invokeStart := time.Now()
	translated, err := t.backend.Translate(ctx, Request{Text: trimmed, Source: source})
	if err != nil {
		return nil, err
	}
	translateDuration := time.Since(invokeStart)

	translated = strings.TrimSpace(translated)
	if translated == "" {
		return nil, &Error{Kind: ErrMalformedResponse, Detail: "backend returned an empty translation"}
	}

	result := &Result{
		TranslatedText:    translated,
		Source:            source,
		SourceISO:         sourceISO,
		Direction:         direction,
		TranslateDuration: translateDuration,
		TotalDuration:     time.Since(start),
	}

	t.log.Info().
		Str("backend", t.backend.Name()).
		Str("direction", direction.String()).
		Dur("translate", result.TranslateDuration).
		Dur("total", result.TotalDuration).
		Msg("translation finished")

	return result, nil
}
