package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/charlesng35/assetdesk/pkg/errors"
)

// normalizeError reshapes a non-2xx response into the AppError every caller sees.
// message, error and title are tried in that order; errors may be a field map or a list.
func normalizeError(status int, body []byte) *apperrors.AppError {
	var payload map[string]json.RawMessage
	if len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}

	message := firstString(payload, "message", "error", "title", "detail")
	if message == "" && payload == nil {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
			message = text
		}
	}

	appErr := apperrors.FromStatus(status, message)
	if fields := fieldErrors(payload["errors"]); len(fields) > 0 {
		appErr.Errors = fields
		if message == "" && (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity) {
			appErr.Message = apperrors.ErrValidation.Message
		}
	}
	return appErr
}

func firstString(payload map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return strings.TrimSpace(nested.Message)
		}
	}
	return ""
}

func fieldErrors(raw json.RawMessage) map[string][]string {
	if len(raw) == 0 {
		return nil
	}

	var byField map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byField); err == nil {
		out := make(map[string][]string, len(byField))
		for field, value := range byField {
			if msgs := stringList(value); len(msgs) > 0 {
				out[field] = msgs
			}
		}
		return out
	}

	if msgs := stringList(raw); len(msgs) > 0 {
		return map[string][]string{"": msgs}
	}
	return nil
}

func stringList(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	var objects []map[string]any
	if err := json.Unmarshal(raw, &objects); err == nil {
		out := make([]string, 0, len(objects))
		for _, obj := range objects {
			if msg, ok := obj["message"].(string); ok && msg != "" {
				out = append(out, msg)
			} else if msg, ok := obj["errorMessage"].(string); ok && msg != "" {
				out = append(out, msg)
			}
		}
		return out
	}
	return nil
}

func networkError(err error) *apperrors.AppError {
	return apperrors.ErrNetwork.WithInternal(fmt.Errorf("apiclient: %w", err))
}
