// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies application errors.
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation_error"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeError       ErrorType = "processing_error"
	ErrorTypeUnavailable ErrorType = "unavailable"
	ErrorTypeRateLimited ErrorType = "rate_limited"
	ErrorTypeTimeout     ErrorType = "timeout"
)

// AppError carries an error type, a message and a user-facing code.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError of the given type.
func NewAppError(errType ErrorType, message string, originalError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     originalError,
		Code:    generateErrorCode(errType),
	}
}

func NewValidationError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeValidation, message, originalError)
}

func NewNotFoundError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, originalError)
}

func NewProcessingError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeError, message, originalError)
}

func NewUnavailableError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeUnavailable, message, originalError)
}

func NewRateLimitedError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeRateLimited, message, originalError)
}

// InvalidLessonError is the one fatal input error of the slide assembler:
// the uploaded lesson has no title or no sections list. All other missing
// or malformed content degrades to skipped slides instead.
type InvalidLessonError struct {
	Reason string
}

func (e *InvalidLessonError) Error() string {
	return "invalid lesson: " + e.Reason
}

// NewInvalidLessonError creates an InvalidLessonError with the given reason.
func NewInvalidLessonError(reason string) *InvalidLessonError {
	return &InvalidLessonError{Reason: reason}
}

// IsInvalidLesson checks whether err is an InvalidLessonError.
func IsInvalidLesson(err error) bool {
	var lessonErr *InvalidLessonError
	return errors.As(err, &lessonErr)
}

// IsValidationError checks whether err is a validation AppError.
func IsValidationError(err error) bool {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type == ErrorTypeValidation
	}
	return false
}

// IsNotFoundError checks whether err is a not-found AppError.
func IsNotFoundError(err error) bool {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type == ErrorTypeNotFound
	}
	return false
}

// IsRateLimitedError checks whether err is a rate-limit AppError.
func IsRateLimitedError(err error) bool {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type == ErrorTypeRateLimited
	}
	return false
}

func generateErrorCode(errType ErrorType) string {
	switch errType {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeError:
		return "PROCESSING_ERROR"
	case ErrorTypeUnavailable:
		return "UNAVAILABLE"
	case ErrorTypeRateLimited:
		return "RATE_LIMITED"
	case ErrorTypeTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN_ERROR"
	}
}

// WrapError wraps err in an AppError, preserving an existing AppError's
// type and code.
func WrapError(err error, message string, errType ErrorType) error {
	if err == nil {
		return nil
	}

	var appError *AppError
	if errors.As(err, &appError) {
		return &AppError{
			Type:    appError.Type,
			Message: fmt.Sprintf("%s: %s", message, appError.Message),
			Err:     appError,
			Code:    appError.Code,
		}
	}

	return NewAppError(errType, message, err)
}
