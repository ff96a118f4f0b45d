package apiclient

import (
	"net/http"
	"strings"
)

type decision int

const (
	decisionDone decision = iota
	decisionRefreshAndRetry
	decisionFail
)

// AuthPathMarker identifies authentication endpoints. They never carry a bearer
// token and never trigger a refresh.
const AuthPathMarker = "/authentication/"

func isAuthPath(path string) bool {
	return strings.Contains(path, AuthPathMarker)
}

// decide maps a response status and the zero-based attempt number to the next step.
// A 401 is retried once after a refresh; everything else is final.
func decide(path string, status, attempt int) decision {
	switch {
	case status >= 200 && status < 300:
		return decisionDone
	case status == http.StatusUnauthorized && attempt == 0 && !isAuthPath(path):
		return decisionRefreshAndRetry
	default:
		return decisionFail
	}
}
