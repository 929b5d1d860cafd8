package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrStorageFailure = errors.New("storage failure")
)

// Course errors
var (
	ErrCourseNotFound = errors.New("course not found")
)

// Teacher errors
var (
	ErrTeacherNotFound = errors.New("teacher not found")
)

// Rating errors
var (
	ErrScoreOutOfRange = errors.New("score must be an integer between 1 and 5")
)

// Comment errors
var (
	ErrCommentEmpty         = errors.New("comment content cannot be empty")
	ErrCommentTooLong       = errors.New("comment content exceeds maximum length")
	ErrParentNotFound       = errors.New("parent comment not found")
	ErrReplyToReply         = errors.New("cannot reply to a reply")
	ErrParentEntityMismatch = errors.New("parent comment belongs to a different entity")
)

// Snapshot errors
var (
	ErrSnapshotLoadFailed = errors.New("snapshot load failed")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField attaches the offending field name to the error
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}
