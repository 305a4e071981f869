package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velmark/marketops-backend/internal/domain"
	"github.com/velmark/marketops-backend/internal/platform/apierr"
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

// RespondDomainError translates a core error code to its HTTP status.
// Forbidden stays distinct from not-found so a caller can render "this link
// is permanent" instead of "link missing".
func RespondDomainError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
		return
	}

	code := domain.CodeOf(err)
	switch code {
	case domain.CodeInvalidArgument:
		RespondError(c, http.StatusBadRequest, string(code), err)
	case domain.CodeNotFound:
		RespondError(c, http.StatusNotFound, string(code), err)
	case domain.CodeForbidden:
		RespondError(c, http.StatusForbidden, string(code), err)
	case domain.CodeConflict:
		RespondError(c, http.StatusConflict, string(code), err)
	default:
		RespondError(c, http.StatusInternalServerError, string(domain.CodeStorage), err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
