package apperrors

// ErrorCode identifies an application error kind.
type ErrorCode string

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidRequest   ErrorCode = "INVALID_REQUEST"

	// Resources
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeSkillNotFound       ErrorCode = "SKILL_NOT_FOUND"
	CodePostNotFound        ErrorCode = "POST_NOT_FOUND"
	CodePropositionNotFound ErrorCode = "PROPOSITION_NOT_FOUND"
	CodeReviewNotFound      ErrorCode = "REVIEW_NOT_FOUND"

	// Business logic
	CodeConflict      ErrorCode = "CONFLICT"
	CodeLimitExceeded ErrorCode = "LIMIT_EXCEEDED"
	CodeUserBanned    ErrorCode = "USER_BANNED"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
