package translation

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"horse.fit/honyaku/internal/language"
)

func staticCreds(value string) *CredentialResolver {
	return NewCredentialResolver(func(string) string { return value }, nil)
}

func TestOpenAITranslate(t *testing.T) {
	t.Parallel()

	var (
		gotMethod string
		gotAuth   string
		gotType   string
		gotBody   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"  こんにちは  "}}]}`)
	}))
	defer srv.Close()

	b := NewOpenAIBackend("", staticCreds("sk-test"), 0, zerolog.Nop())
	b.endpoint = srv.URL

	got, err := b.Translate(context.Background(), Request{Text: "Hello", Source: language.Other})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "こんにちは" {
		t.Fatalf("unexpected translation: %q", got)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("unexpected method: %q", gotMethod)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotType != "application/json" {
		t.Fatalf("unexpected content type: %q", gotType)
	}

	body := gjson.ParseBytes(gotBody)
	if model := body.Get("model").String(); model != DefaultOpenAIModel {
		t.Fatalf("unexpected model: %q", model)
	}
	if role := body.Get("messages.0.role").String(); role != "system" {
		t.Fatalf("unexpected first message role: %q", role)
	}
	if prompt := body.Get("messages.0.content").String(); prompt != translatorInstruction {
		t.Fatalf("unexpected system prompt: %q", prompt)
	}
	if role := body.Get("messages.1.role").String(); role != "user" {
		t.Fatalf("unexpected second message role: %q", role)
	}
	if text := body.Get("messages.1.content").String(); text != "Hello" {
		t.Fatalf("unexpected user content: %q", text)
	}
	if temp := body.Get("temperature").Float(); temp != 0.1 {
		t.Fatalf("unexpected temperature: %v", temp)
	}
	if max := body.Get("max_tokens").Int(); max != 1000 {
		t.Fatalf("unexpected max_tokens: %v", max)
	}
}

func TestOpenAIPlaceholderKey(t *testing.T) {
	t.Parallel()

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	b := NewOpenAIBackend("", staticCreds("sk-xxx"), 0, zerolog.Nop())
	b.endpoint = srv.URL

	_, err := b.Translate(context.Background(), Request{Text: "Hello", Source: language.Other})
	if KindOf(err) != ErrMissingCredential {
		t.Fatalf("unexpected error: %+v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no request for a placeholder key, got %d", requests)
	}
}

func TestOpenAIMissingKey(t *testing.T) {
	t.Parallel()

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	b := NewOpenAIBackend("", staticCreds(""), 0, zerolog.Nop())
	b.endpoint = srv.URL

	_, err := b.Translate(context.Background(), Request{Text: "Hello", Source: language.Other})
	if KindOf(err) != ErrMissingCredential {
		t.Fatalf("unexpected error: %+v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no request when resolution fails, got %d", requests)
	}
}

func TestOpenAIStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		status     int
		body       string
		wantKind   ErrorKind
		wantStatus int
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"message":"Incorrect API key provided"}}`,
			wantKind:   ErrAuthFailure,
			wantStatus: 401,
		},
		{
			name:       "forbidden",
			status:     http.StatusForbidden,
			body:       `{"error":{"message":"blocked"}}`,
			wantKind:   ErrAuthFailure,
			wantStatus: 403,
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"message":"slow down"}}`,
			wantKind: ErrNetworkFailure,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     ``,
			wantKind: ErrNetworkFailure,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			b := NewOpenAIBackend("", staticCreds("sk-test"), 0, zerolog.Nop())
			b.endpoint = srv.URL

			_, err := b.Translate(context.Background(), Request{Text: "Hello", Source: language.Other})
			terr := Coerce(err, 0)
			if terr.Kind != tc.wantKind {
				t.Fatalf("unexpected kind: %v (%v)", terr.Kind, err)
			}
			if tc.wantStatus != 0 && terr.StatusCode != tc.wantStatus {
				t.Fatalf("unexpected status: %d", terr.StatusCode)
			}
		})
	}
}

func TestOpenAIMalformedResponses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "no choices", body: `{"choices":[]}`},
		{name: "empty content", body: `{"choices":[{"message":{"content":"   "}}]}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			b := NewOpenAIBackend("", staticCreds("sk-test"), 0, zerolog.Nop())
			b.endpoint = srv.URL

			_, err := b.Translate(context.Background(), Request{Text: "Hello", Source: language.Other})
			if KindOf(err) != ErrMalformedResponse {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestOpenAIConnectionFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	b := NewOpenAIBackend("", staticCreds("sk-test"), 0, zerolog.Nop())
	b.endpoint = endpoint

	_, err := b.Translate(context.Background(), Request{Text: "Hello", Source: language.Other})
	if KindOf(err) != ErrNetworkFailure {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestOpenAITimeout(t *testing.T) {
	t.Parallel()

	// The handler stalls until the client gives up and drops the
	// connection.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	b := NewOpenAIBackend("", staticCreds("sk-test"), 50*time.Millisecond, zerolog.Nop())
	b.endpoint = srv.URL

	start := time.Now()
	_, err := b.Translate(context.Background(), Request{Text: "Hello", Source: language.Other})
	if KindOf(err) != ErrNetworkFailure {
		t.Fatalf("unexpected error: %+v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("translate blocked past the timeout budget: %v", elapsed)
	}
}
