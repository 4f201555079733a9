package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeUnsupportedPlatform   ErrorCode = "UNSUPPORTED_PLATFORM"
	ErrorCodeMalformedURL          ErrorCode = "MALFORMED_URL"
	ErrorCodeProviderNotConfigured ErrorCode = "PROVIDER_NOT_CONFIGURED"
	ErrorCodeProviderError         ErrorCode = "PROVIDER_ERROR"
	ErrorCodeAllProvidersFailed    ErrorCode = "ALL_PROVIDERS_FAILED"
	ErrorCodeValidationError       ErrorCode = "VALIDATION_ERROR"
	ErrorCodeDatabaseError         ErrorCode = "DATABASE_ERROR"
	ErrorCodeRateLimitExceeded     ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeInternalError         ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Common error constructors
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(ErrorCodeValidationError, message, http.StatusBadRequest, details)
}

func NewUnsupportedPlatformError(url string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeUnsupportedPlatform,
		"The provided URL does not belong to a supported platform",
		http.StatusBadRequest,
		map[string]interface{}{
			"supported_platforms": []string{"youtube", "tiktok", "reddit", "facebook", "instagram", "twitter"},
			"provided":            url,
		},
	)
}

func NewMalformedURLError(url string, platform string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeMalformedURL,
		fmt.Sprintf("Could not extract a %s video ID from the URL", platform),
		http.StatusBadRequest,
		map[string]interface{}{
			"provided": url,
			"platform": platform,
		},
	)
}

func NewAllProvidersFailedError(url string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(
		ErrorCodeAllProvidersFailed,
		fmt.Sprintf("Every eligible provider failed to extract metadata for %s", url),
		http.StatusBadGateway,
		details,
	)
}

func NewDatabaseError(err error) *AppError {
	return NewError(
		ErrorCodeDatabaseError,
		"Database operation failed",
		http.StatusInternalServerError,
	)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}
