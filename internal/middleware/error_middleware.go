package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sdemirtas/registrar/internal/app/models/dto"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
	"github.com/sdemirtas/registrar/internal/pkg/logger"
)

// HandleAPIError maps a service or repository error onto the HTTP error
// response envelope. CustomError details are passed through to the client.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetail(err)
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		l := logger.WithFields(map[string]interface{}{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		})
		l.Error().Err(err).Msg("Unhandled error while serving request")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrUnknownStatus),
		errors.Is(err, apperrors.ErrUnknownRoleType):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorDetail(err error) *dto.ErrorDetail {
	code := codeFor(err)

	message := "An unexpected error occurred"
	var details interface{}

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		message = customErr.Message
		details = customErr.Details
	} else if statusFor(err) < http.StatusInternalServerError {
		message = err.Error()
	}

	detail := dto.NewErrorDetail(code, message)
	if details != nil {
		detail = detail.WithDetails(details)
	}
	return detail
}

func codeFor(err error) dto.ErrorCode {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrUnknownStatus),
		errors.Is(err, apperrors.ErrUnknownRoleType):
		return dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return dto.ErrorCodeInvalidTransition
	case errors.Is(err, apperrors.ErrConflict):
		return dto.ErrorCodeResourceAlreadyExists
	default:
		return dto.ErrorCodeInternalServer
	}
}
