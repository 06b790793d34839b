package domain

import "errors"

// Error codes carried by AppError
const (
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeValidation = "VALIDATION_ERROR"
)

// Sentinels wrapped by AppError, for use with errors.Is
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// Messages surfaced to callers
const (
	MsgArticleNotFound = "Article not found"
	MsgUserNotFound    = "User not found"
	MsgLikeNotFound    = "Like not found"
	MsgAlreadyLiked    = "You have already liked this article"
)

// AppError is a workflow failure with a stable code and a human message
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports a missing article, user or like
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Err: ErrNotFound}
}

// NewConflictError reports a duplicate like
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Err: ErrConflict}
}

// NewValidationError reports malformed input
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Err: ErrValidation}
}
