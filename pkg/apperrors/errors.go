package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error type returned by services.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
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

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors.
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
	ErrUserBanned         = New(CodeUserBanned, "User account is banned", http.StatusForbidden)

	// Users and catalog
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrSkillNotFound      = New(CodeSkillNotFound, "Skill not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeConflict, "Email already exists", http.StatusConflict)

	// Posts
	ErrPostNotFound      = New(CodePostNotFound, "Post not found", http.StatusNotFound)
	ErrPostQuotaExceeded = New(CodeLimitExceeded, "Post limit reached, delete an existing post to create a new one", http.StatusForbidden)
	ErrDuplicateSkill    = New(CodeConflict, "You already have a post for this skill", http.StatusConflict)
	ErrNotPostOwner      = New(CodeForbidden, "You are not the owner of this post", http.StatusForbidden)

	// Propositions
	ErrPropositionNotFound    = New(CodePropositionNotFound, "Proposition not found", http.StatusNotFound)
	ErrSelfProposition        = New(CodeInvalidRequest, "You cannot send a proposition to your own post", http.StatusBadRequest)
	ErrPostClosed             = New(CodeForbidden, "This post no longer accepts propositions", http.StatusForbidden)
	ErrDuplicateProposition   = New(CodeConflict, "You already sent a proposition for this post", http.StatusConflict)
	ErrPropositionAccepted    = New(CodeConflict, "Proposition already accepted", http.StatusConflict)
	ErrPropositionRejected    = New(CodeConflict, "Proposition already rejected", http.StatusConflict)
	ErrPostClosedConcurrently = New(CodeConflict, "Post no longer accepts propositions", http.StatusConflict)
	ErrNotPropositionParty    = New(CodeForbidden, "You are not a party to this proposition", http.StatusForbidden)
	ErrPropositionNotAccepted = New(CodeInvalidRequest, "Proposition is not accepted", http.StatusBadRequest)
	ErrReceiverMismatch       = New(CodeForbidden, "Proposition receiver does not match the post owner", http.StatusForbidden)
	ErrSelfAcceptNotAllowed   = New(CodeForbidden, "You cannot accept your own proposition", http.StatusForbidden)

	// Reviews
	ErrReviewNotFound          = New(CodeReviewNotFound, "Review not found", http.StatusNotFound)
	ErrPostNotClosed           = New(CodeForbidden, "The exchange is not concluded yet", http.StatusForbidden)
	ErrReviewNotAccepted       = New(CodeForbidden, "The proposition was not accepted", http.StatusForbidden)
	ErrNotReviewAuthor         = New(CodeForbidden, "You can only modify your own reviews", http.StatusForbidden)
	ErrAlreadyReviewedExchange = New(CodeForbidden, "You already reviewed this exchange", http.StatusForbidden)
	ErrAlreadyReviewedUser     = New(CodeForbidden, "You already reviewed this person", http.StatusForbidden)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Helper constructors.

func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "Validation failed", http.StatusBadRequest).WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeInvalidRequest, message, http.StatusBadRequest)
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeUserNotFound, message, http.StatusNotFound)
}
