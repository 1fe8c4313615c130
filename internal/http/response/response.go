package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAppError maps service errors onto the envelope. Anything that is not
// an apierr.Error is treated as an internal failure without leaking details.
func RespondAppError(c *gin.Context, err error) {
	if apiErr, ok := apierr.As(err); ok {
		if apiErr.Status >= http.StatusInternalServerError {
			RespondError(c, apiErr.Status, apiErr.Code, nil)
			return
		}
		RespondError(c, apiErr.Status, apiErr.Code, apiErr.Err)
		return
	}
	RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, nil)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
