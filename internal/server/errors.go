package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	documentdomain "github.com/smallbiznis/khata/internal/document/domain"
	payrolldomain "github.com/smallbiznis/khata/internal/payroll/domain"
	reconciliationdomain "github.com/smallbiznis/khata/internal/reconciliation/domain"
	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
	"github.com/smallbiznis/khata/pkg/db/pagination"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if tErr := asTaxValidationError(err); tErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   tErr.Field,
					Code:    tErr.Kind.Error(),
					Message: tErr.Message,
				},
			},
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(err, code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, documentdomain.ErrDocumentFiled),
		errors.Is(err, payrolldomain.ErrAlreadyProcessed):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog gives the request logger a stable type and code.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func asTaxValidationError(err error) *taxdomain.ValidationError {
	var tErr *taxdomain.ValidationError
	if errors.As(err, &tErr) && tErr != nil && tErr.Kind != nil {
		return tErr
	}
	return nil
}

var validationSentinels = []error{
	ErrInvalidRequest,
	pagination.ErrInvalidPageToken,
	taxdomain.ErrInvalidInput,
	taxdomain.ErrFormat,
	taxdomain.ErrJurisdiction,
	taxdomain.ErrMissingInput,
	documentdomain.ErrInvalidOrganization,
	documentdomain.ErrInvalidKind,
	documentdomain.ErrInvalidID,
	documentdomain.ErrInvalidDocumentType,
	documentdomain.ErrInvalidRate,
	payrolldomain.ErrInvalidOrganization,
	payrolldomain.ErrInvalidEmployee,
	payrolldomain.ErrInvalidPeriod,
	payrolldomain.ErrInvalidID,
	payrolldomain.ErrInvalidAmountScale,
	reconciliationdomain.ErrInvalidOrganization,
	reconciliationdomain.ErrInvalidTransaction,
	reconciliationdomain.ErrInvalidStrategy,
	reconciliationdomain.ErrInvalidStatement,
}

func validationSentinel(err error) error {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

func isValidationError(err error) bool {
	return validationSentinel(err) != nil
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, documentdomain.ErrNotFound),
		errors.Is(err, payrolldomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if sentinel := validationSentinel(err); sentinel != nil {
		return sentinel.Error()
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

// validationErrorMessage keeps the wrapped detail (a CSV line number, for
// instance) when the sentinel was wrapped with context.
func validationErrorMessage(err error, code string) string {
	if code == "invalid_request" {
		return "invalid request"
	}
	if msg := err.Error(); msg != code {
		return msg
	}
	return "invalid value"
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, documentdomain.ErrDocumentFiled):
		return "document already filed"
	case errors.Is(err, payrolldomain.ErrAlreadyProcessed):
		return "payroll already processed for period"
	default:
		return "conflict"
	}
}
