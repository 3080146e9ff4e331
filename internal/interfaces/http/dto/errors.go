package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotSender          = "NOT_SENDER"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUserNotFound  = "USER_NOT_FOUND"
	ErrCodeUsersNotFound = "USERS_NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeEmailExists   = "EMAIL_EXISTS"
	ErrCodeTitleExists   = "TITLE_EXISTS"
	ErrCodeNameExists    = "NAME_EXISTS"
	ErrCodeFileExists    = "FILE_EXISTS"
	ErrCodeAlreadyAdmin  = "ALREADY_ADMIN"
	ErrCodeNotAdmin      = "NOT_ADMIN"
)

// Request error codes
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeInvalidState     = "INVALID_STATE"
	ErrCodeAlreadyDisabled  = "ALREADY_DISABLED"
	ErrCodeCannotModifySelf = "CANNOT_MODIFY_SELF"
	ErrCodePasswordMismatch = "PASSWORD_MISMATCH"
	ErrCodeFileTooLarge     = "FILE_TOO_LARGE"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeUploadFailed     = "UPLOAD_FAILED"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeUploadFailed: http.StatusInternalServerError,

	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidState:     http.StatusBadRequest,
	ErrCodeAlreadyDisabled:  http.StatusBadRequest,
	ErrCodeCannotModifySelf: http.StatusBadRequest,
	ErrCodePasswordMismatch: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotSender:          http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeUserNotFound:  http.StatusNotFound,
	ErrCodeUsersNotFound: http.StatusNotFound,

	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeEmailExists:   http.StatusConflict,
	ErrCodeTitleExists:   http.StatusConflict,
	ErrCodeNameExists:    http.StatusConflict,
	ErrCodeFileExists:    http.StatusConflict,
	ErrCodeAlreadyAdmin:  http.StatusConflict,
	ErrCodeNotAdmin:      http.StatusConflict,

	ErrCodeFileTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Codes outside the table fall back on their naming: INVALID_* is 400,
// *_NOT_FOUND is 404, *_EXISTS is 409 and anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_EXISTS"):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
