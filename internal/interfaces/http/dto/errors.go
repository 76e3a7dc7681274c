package dto

import (
	"net/http"

	"github.com/propdesk/backend/internal/domain/shared"
)

// Transport-level error codes. Domain errors keep their own codes
// (DUPLICATE_PERIOD_RECORD, INVALID_STATE, ...) and are mapped by kind.
const (
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeUnavailable  = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeInvalidParam = "ERR_INVALID_PARAM"
)

// ErrorCodeHTTPStatus maps transport error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidParam: http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeUnavailable:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for a transport error code, 500 if unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// kindHTTPStatus maps domain error kinds to HTTP status codes
var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindValidation: http.StatusBadRequest,
	shared.KindConflict:   http.StatusConflict,
	shared.KindNotFound:   http.StatusNotFound,
	shared.KindBusiness:   http.StatusUnprocessableEntity,
}

// StatusForKind returns the HTTP status for a domain error kind, 500 if unknown
func StatusForKind(kind shared.ErrorKind) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
