package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	openAIEndpoint     = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel = "gpt-4.1-nano"

	// openAIPlaceholderKey is the unreplaced value from setup guides; it
	// counts as no credential at all.
	openAIPlaceholderKey = "sk-xxx"
)

type openAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openAIChatMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenAIBackend translates through the OpenAI Chat Completions API.
type OpenAIBackend struct {
	model    string
	endpoint string
	creds    *CredentialResolver
	client   *http.Client
	log      zerolog.Logger
}

func NewOpenAIBackend(model string, creds *CredentialResolver, timeout time.Duration, log zerolog.Logger) *OpenAIBackend {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = DefaultAPITimeout
	}
	return &OpenAIBackend{
		model:    model,
		endpoint: openAIEndpoint,
		creds:    creds,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

func (b *OpenAIBackend) Name() string {
	return "openai"
}

// Model returns the model identifier requests are sent with.
func (b *OpenAIBackend) Model() string {
	return b.model
}

func (b *OpenAIBackend) Translate(ctx context.Context, req Request) (string, error) {
	key, err := b.creds.Resolve(ctx, OpenAIKeyVar)
	if err != nil {
		return "", err
	}
	if key == openAIPlaceholderKey {
		return "", &Error{Kind: ErrMissingCredential, Detail: OpenAIKeyVar + " still holds the placeholder value"}
	}

	payload, err := json.Marshal(openAIChatRequest{
		Model: b.model,
		Messages: []openAIChatMessage{
			{Role: "system", Content: translatorInstruction},
			{Role: "user", Content: req.Text},
		},
		Temperature: apiTemperature,
		MaxTokens:   apiMaxTokens,
	})
	if err != nil {
		return "", &Error{Kind: ErrNetworkFailure, cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Kind: ErrNetworkFailure, cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+key)

	b.log.Debug().Str("model", b.model).Int("chars", len(req.Text)).Msg("calling openai")

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

	var parsed openAIChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &Error{Kind: ErrMalformedResponse, cause: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &Error{Kind: ErrMalformedResponse, Detail: "response has no choices"}
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", &Error{Kind: ErrMalformedResponse, Detail: "response content is empty"}
	}
	return text, nil
}
