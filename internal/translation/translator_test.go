package translation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/honyaku/internal/language"
)

func TestTranslatorRequiresBackend(t *testing.T) {
	t.Parallel()

	if _, err := NewTranslator(nil, zerolog.Nop()); err == nil {
		t.Fatal("expected an error")
	}
}

func TestTranslateEmptyInputSkipsBackend(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{text: "unused"}
	tr, err := NewTranslator(backend, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, input := range []string{"", "   ", "\n\t  \n"} {
		_, err := tr.Translate(context.Background(), input)
		if KindOf(err) != ErrEmptyInput {
			t.Fatalf("unexpected error for %q: %+v", input, err)
		}
	}
	if len(backend.calls) != 0 {
		t.Fatalf("expected no backend calls for empty input, got %d", len(backend.calls))
	}
}

func TestTranslateJapaneseSource(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{text: "Hello"}
	tr, err := NewTranslator(backend, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := tr.Translate(context.Background(), "  こんにちは、世界。  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(backend.calls) != 1 {
		t.Fatalf("expected one backend call, got %d", len(backend.calls))
	}
	req := backend.calls[0]
	if req.Text != "こんにちは、世界。" {
		t.Fatalf("expected trimmed input, got %q", req.Text)
	}
	if req.Source != language.Japanese {
		t.Fatalf("unexpected source: %v", req.Source)
	}

	if res.TranslatedText != "Hello" {
		t.Fatalf("unexpected translation: %q", res.TranslatedText)
	}
	if res.Source != language.Japanese {
		t.Fatalf("unexpected source: %v", res.Source)
	}
	if res.Direction != language.JapaneseToEnglish {
		t.Fatalf("unexpected direction: %v", res.Direction)
	}
	if res.TotalDuration <= 0 {
		t.Fatalf("unexpected total duration: %v", res.TotalDuration)
	}
	if res.TotalDuration < res.TranslateDuration {
		t.Fatalf("total %v shorter than translate %v", res.TotalDuration, res.TranslateDuration)
	}
}

func TestTranslateOtherSource(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{text: "  こんにちは  "}
	tr, err := NewTranslator(backend, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := tr.Translate(context.Background(), "Hello, world. This is a longer English sentence.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Direction != language.OtherToJapanese {
		t.Fatalf("unexpected direction: %v", res.Direction)
	}
	if res.TranslatedText != "こんにちは" {
		t.Fatalf("expected trimmed translation, got %q", res.TranslatedText)
	}
	if res.SourceISO != "en" {
		t.Fatalf("unexpected source annotation: %q", res.SourceISO)
	}
}

func TestTranslateBackendErrorPropagates(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{err: &Error{Kind: ErrAuthFailure, StatusCode: 401}}
	tr, err := NewTranslator(backend, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Translate(context.Background(), "Hello")
	terr := Coerce(err, 0)
	if terr.Kind != ErrAuthFailure || terr.StatusCode != 401 {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestTranslateEmptyBackendOutput(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{text: "   \n"}
	tr, err := NewTranslator(backend, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Translate(context.Background(), "Hello")
	if KindOf(err) != ErrMalformedResponse {
		t.Fatalf("unexpected error: %+v", err)
	}
}
