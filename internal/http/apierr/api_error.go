package apierr

import (
	"errors"
	"net/http"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/tuanvumaihuynh/items-api/internal/apperr"
	"github.com/tuanvumaihuynh/items-api/internal/http/request"
	"github.com/tuanvumaihuynh/items-api/pkg/validator"
	"github.com/tuanvumaihuynh/items-api/pkg/zerror"
)

const InternalServerErrorCode = "INTERNAL_SERVER_ERROR"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the error response for the API.
type ErrorResponse struct {
	Message string       `json:"error"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

func New(err error) ErrorResponse {
	return errorToErrorResponse(err)
}

func errorToErrorResponse(err error) ErrorResponse {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Message:    zErr.Msg(),
			Code:       zErr.Code(),
			StatusCode: ZErrorStatusToHTTPStatus(zErr.Status()),
		}
	}

	var validationErrs govalidator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, len(validationErrs))
		for i, fe := range validationErrs {
			details[i] = FieldError{
				Field:   fe.Field(),
				Message: validator.ValidationErrorMessage(fe),
			}
		}

		return ErrorResponse{
			Message:    apperr.ValidationErr.Msg(),
			Code:       apperr.ValidationErr.Code(),
			Details:    details,
			StatusCode: http.StatusBadRequest,
		}
	}

	var (
		paramErr *request.InvalidParamFormatError
		bodyErr  *request.InvalidBodyError
	)
	if errors.As(err, &paramErr) {
		return ErrorResponse{
			Message:    paramErr.Error(),
			Code:       apperr.ValidationErrorCode,
			StatusCode: http.StatusBadRequest,
		}
	}
	if errors.As(err, &bodyErr) {
		return ErrorResponse{
			Message:    bodyErr.Error(),
			Code:       apperr.InvalidBodyErrorCode,
			StatusCode: http.StatusBadRequest,
		}
	}

	return ErrorResponse{
		Message:    rootCause(err).Error(),
		Code:       InternalServerErrorCode,
		StatusCode: http.StatusInternalServerError,
	}
}

func ZErrorStatusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusUnauthorized:
		return http.StatusUnauthorized
	case zerror.StatusForbidden:
		return http.StatusForbidden
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case zerror.StatusConflict:
		return http.StatusConflict
	case zerror.StatusTooManyRequests:
		return http.StatusTooManyRequests
	case zerror.StatusBadRequest:
		return http.StatusBadRequest
	case zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusUnknown, zerror.StatusInternalServerError:
		return http.StatusInternalServerError
	case zerror.StatusTimeout:
		return http.StatusGatewayTimeout
	case zerror.StatusNotImplemented:
		return http.StatusNotImplemented
	case zerror.StatusBadGateway:
		return http.StatusBadGateway
	case zerror.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// rootCause strips the operation prefixes added by fmt.Errorf on the way up.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
