// Package respond writes the JSON envelopes returned by the API.
// Every body carries a "success" flag; failures add an "error" message that
// has been sanitised before it reaches the client.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"technews/internal/observability/logging"
)

// ErrorBody is the envelope written for failed requests.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				logging.ErrorAttr(err))
		}
	}
}

// Error writes the failure envelope with err's message as-is.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Success: false, Error: err.Error()})
}

// safeFragments mark messages that may be shown to clients verbatim.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"cannot be",
	"too long",
	"too large",
}

// genericMessages replace server-side error details.
var genericMessages = map[int]string{
	http.StatusBadGateway:         "news feed unavailable",
	http.StatusServiceUnavailable: "storage unavailable",
}

// SafeError sanitises error messages before returning them to users.
// 4xx errors whose message looks like a validation error are returned as-is;
// everything else is logged and replaced by a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isSafe(msg) {
		Error(w, code, err)
		return
	}

	slog.Default().Error("request failed",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", logging.SanitizeError(err)))

	generic, ok := genericMessages[code]
	if !ok {
		generic = "internal server error"
	}
	JSON(w, code, ErrorBody{Success: false, Error: generic})
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, f := range safeFragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}
