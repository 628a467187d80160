package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeNotFound    ErrCode = "NOT_FOUND"
	ErrCodeInternal    ErrCode = "INTERNAL_ERROR"
	ErrCodeBadRequest  ErrCode = "BAD_REQUEST"
	ErrCodeFetchFailed ErrCode = "FETCH_FAILED"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
	}
}

// NewFetchFailedError wraps a failed load cycle
func NewFetchFailedError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeFetchFailed,
		Message: "failed to load GitHub repositories",
		Err:     err,
	}
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error, target **AppError) bool {
	return stderrors.As(err, target)
}

// FetchCause classifies why a remote read failed
type FetchCause string

const (
	CauseNetwork FetchCause = "network"
	CauseStatus  FetchCause = "status"
	CauseParse   FetchCause = "parse"
	CauseTimeout FetchCause = "timeout"
)

// FetchError is returned by every failed read against the GitHub API.
// Status is zero unless Cause is CauseStatus.
type FetchError struct {
	Op     string
	Status int
	Cause  FetchCause
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s error (HTTP %d): %v", e.Op, e.Cause, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Cause, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError extracts a FetchError from an error chain
func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if stderrors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}

// IsFetchError reports whether err carries a FetchError
func IsFetchError(err error) bool {
	_, ok := AsFetchError(err)
	return ok
}

// ClipboardError is returned when the system clipboard cannot be written
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard write failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}
