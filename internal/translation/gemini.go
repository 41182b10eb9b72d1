package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	geminiEndpointBase = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultGeminiModel = "gemini-2.0-flash-lite"

	geminiKeyHeader = "x-goog-api-key"
)

type geminiGenerateRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

// GeminiBackend translates through the Gemini generateContent API. Gemini
// has no system role on this endpoint, so the instruction and the text
// travel as a single user part.
type GeminiBackend struct {
	model        string
	authMode     AuthMode
	endpointBase string
	creds        *CredentialResolver
	client       *http.Client
	log          zerolog.Logger
}

func NewGeminiBackend(model string, authMode AuthMode, creds *CredentialResolver, timeout time.Duration, log zerolog.Logger) *GeminiBackend {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultGeminiModel
	}
	if authMode == "" {
		authMode = AuthHeader
	}
	if timeout <= 0 {
		timeout = DefaultAPITimeout
	}
	return &GeminiBackend{
		model:        model,
		authMode:     authMode,
		endpointBase: geminiEndpointBase,
		creds:        creds,
		client:       &http.Client{Timeout: timeout},
		log:          log,
	}
}

func (b *GeminiBackend) Name() string {
	return "gemini"
}

// Model returns the model identifier requests are sent with.
func (b *GeminiBackend) Model() string {
	return b.model
}

func (b *GeminiBackend) Translate(ctx context.Context, req Request) (string, error) {
	key, err := b.creds.Resolve(ctx, GeminiKeyVar)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(geminiGenerateRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{
				{Text: translatorInstruction + "\n\nText to translate: " + req.Text},
			}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     apiTemperature,
			MaxOutputTokens: apiMaxTokens,
			TopP:            0.1,
			TopK:            1,
		},
	})
	if err != nil {
		return "", &Error{Kind: ErrNetworkFailure, cause: err}
	}

	requestURL := fmt.Sprintf("%s/%s:generateContent", b.endpointBase, b.model)
	if b.authMode == AuthQuery {
		requestURL += "?key=" + url.QueryEscape(key)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Kind: ErrNetworkFailure, cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if b.authMode == AuthHeader {
		httpReq.Header.Set(geminiKeyHeader, key)
	}

	b.log.Debug().Str("model", b.model).Str("auth_mode", string(b.authMode)).Int("chars", len(req.Text)).Msg("calling gemini")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return "", &Error{Kind: ErrNetworkFailure, cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: ErrNetworkFailure, cause: err}
	}
	if terr := statusToError(resp.StatusCode, body); terr != nil {
		return "", terr
	}

	part := gjson.GetBytes(body, "candidates.0.content.parts.0.text")
	if !part.Exists() {
		return "", &Error{Kind: ErrMalformedResponse, Detail: "response has no candidate text"}
	}
	text := strings.TrimSpace(part.String())
	if text == "" {
		return "", &Error{Kind: ErrMalformedResponse, Detail: "response content is empty"}
	}
	return text, nil
}
