// Package response writes edge error bodies in the shape the backends use, so the
// dashboard reads an edge failure exactly like an API failure.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/charlesng35/assetdesk/pkg/errors"
)

// RequestIDHeader is echoed into the body when the request carries one.
const RequestIDHeader = "X-Request-ID"

// Body is the error payload. Message and StatusCode are always present.
type Body struct {
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Code       string              `json:"code,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	RequestID  string              `json:"requestId,omitempty"`
}

// BodyFor renders err. A failure with no HTTP status (a network error) becomes 502.
func BodyFor(err error) Body {
	if err == nil {
		err = apperrors.ErrInternalServer
	}
	appErr := apperrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusBadGateway
	}
	return Body{
		Message:    appErr.Message,
		StatusCode: status,
		Code:       appErr.Code,
		Errors:     appErr.Errors,
	}
}

// Error aborts the request with the body for err.
func Error(c *gin.Context, err error) {
	body := BodyFor(err)
	body.RequestID = c.Writer.Header().Get(RequestIDHeader)
	c.AbortWithStatusJSON(body.StatusCode, body)
}
