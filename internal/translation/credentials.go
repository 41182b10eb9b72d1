package translation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"horse.fit/honyaku/internal/shellenv"
)

// Environment variables holding the API backend credentials.
const (
	OpenAIKeyVar = "OPENAI_API_KEY"
	GeminiKeyVar = "GEMINI_API_KEY"
)

// AuthMode selects how an API backend attaches its credential to a request.
type AuthMode string

const (
	// AuthHeader sends the credential in a request header.
	AuthHeader AuthMode = "header"
	// AuthQuery appends the credential as a URL query parameter.
	AuthQuery AuthMode = "query"
)

// ParseAuthMode maps a config string to an AuthMode, defaulting to
// AuthHeader for blank input.
func ParseAuthMode(raw string) (AuthMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(AuthHeader):
		return AuthHeader, nil
	case string(AuthQuery):
		return AuthQuery, nil
	}
	return "", fmt.Errorf("auth mode must be %q or %q, got %q", AuthHeader, AuthQuery, strings.TrimSpace(raw))
}

// CredentialResolver finds API keys for the backends. Quick Action
// processes inherit almost no environment from the user's session, so a
// variable missing from the process environment is looked up through the
// login shell before the credential counts as absent.
type CredentialResolver struct {
	env   func(string) string
	probe *shellenv.Probe
}

// NewCredentialResolver builds a resolver reading env for process
// variables and probe for login shell ones. A nil env falls back to
// os.Getenv; a nil probe disables the shell lookup.
func NewCredentialResolver(env func(string) string, probe *shellenv.Probe) *CredentialResolver {
	if env == nil {
		env = os.Getenv
	}
	return &CredentialResolver{env: env, probe: probe}
}

// Resolve returns the non-empty value of varName, consulting the process
// environment first and the login shell second. Both sources empty yields
// ErrMissingCredential.
func (r *CredentialResolver) Resolve(ctx context.Context, varName string) (string, error) {
	if value := strings.TrimSpace(r.env(varName)); value != "" {
		return value, nil
	}

	var probeErr error
	if r.probe != nil {
		value, err := r.probe.LookupVar(ctx, varName)
		if err != nil {
			probeErr = err
		} else if value != "" {
			return value, nil
		}
	}

	return "", &Error{
		Kind:   ErrMissingCredential,
		Detail: varName + " is not set in the environment or the login shell profile",
		cause:  probeErr,
	}
}
