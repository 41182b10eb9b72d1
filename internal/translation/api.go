package translation

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// translatorInstruction is the system prompt shared by the API backends.
// It fixes both directions up front so no per-request direction hint is
// needed; the detected source language never alters the prompt.
const translatorInstruction = "You are a translator. Your task:\n" +
	"- Japanese text → Translate to English\n" +
	"- Non-Japanese text → Translate to Japanese\n" +
	"- Output ONLY the translation, no explanations"

// DefaultAPITimeout bounds one API round-trip, connection through body.
const DefaultAPITimeout = 30 * time.Second

const (
	apiTemperature = 0.1
	apiMaxTokens   = 1000
)

// statusToError maps a non-2xx status to the taxonomy: 401 and 403 are
// credential rejections, everything else a service failure. The provider's
// own error message is carried as detail when the body has one.
func statusToError(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}

	detail := strings.TrimSpace(gjson.GetBytes(body, "error.message").String())
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &Error{Kind: ErrAuthFailure, StatusCode: status, Detail: detail}
	}
	if detail != "" {
		detail = fmt.Sprintf("status %d: %s", status, detail)
	} else {
		detail = fmt.Sprintf("status %d: %s", status, http.StatusText(status))
	}
	return &Error{Kind: ErrNetworkFailure, Detail: detail}
}
