package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondOK writes a success envelope with status 200.
func RespondOK(c *gin.Context, message string, data interface{}) {
	RespondJSON(c, "success", http.StatusOK, message, data, nil)
}

// RespondError maps typed domain errors to HTTP status codes. Anything that
// is not a known domain error is logged and reported as a generic 500.
func RespondError(c *gin.Context, err error) {
	var fields validation.FieldErrors
	var invalid apperror.ValidationError
	switch {
	case errors.As(err, &fields):
		RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, fields.Fields)
	case errors.As(err, &invalid):
		var details interface{}
		if invalid.Field != "" {
			details = map[string]string{invalid.Field: invalid.Msg}
		}
		RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, details)
	case apperror.IsNotFound(err):
		RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case apperror.IsConflict(err):
		RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case apperror.IsForbidden(err):
		RespondJSON(c, "error", http.StatusForbidden, err.Error(), nil, nil)
	default:
		logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
		message := "Internal server error"
		if apperror.IsInternal(err) {
			message = err.Error()
		}
		RespondJSON(c, "error", http.StatusInternalServerError, message, nil, nil)
	}
}
