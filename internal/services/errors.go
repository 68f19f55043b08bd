package services

import "fmt"

// Error codes for the failure taxonomy. Every handler maps its failures
// through these; nothing escapes to the transport layer unhandled.
const (
	CodeValidation        = "VALIDATION"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeInvalidReference  = "INVALID_REFERENCE"
	CodeReferenceMismatch = "REFERENCE_MISMATCH"
	CodeInternal          = "INTERNAL"
)

type ServiceError struct {
	Status  int
	Code    string
	Message string
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrValidation(msg string) error {
	return ServiceError{Status: 400, Code: CodeValidation, Message: msg}
}

// ErrUnauthenticated means no bearer token was presented at all.
func ErrUnauthenticated(msg string) error {
	return ServiceError{Status: 403, Code: CodeUnauthenticated, Message: msg}
}

// ErrUnauthorized covers bad credentials and wrong-actor-kind tokens.
func ErrUnauthorized(msg string) error {
	return ServiceError{Status: 401, Code: CodeUnauthorized, Message: msg}
}

func ErrInvalidToken(msg string) error {
	return ServiceError{Status: 401, Code: CodeInvalidToken, Message: msg}
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: 404, Code: CodeNotFound, Message: msg}
}

func ErrDuplicate(msg string) error {
	return ServiceError{Status: 409, Code: CodeDuplicate, Message: msg}
}

func ErrInvalidReference(msg string) error {
	return ServiceError{Status: 400, Code: CodeInvalidReference, Message: msg}
}

func ErrReferenceMismatch(msg string) error {
	return ServiceError{Status: 400, Code: CodeReferenceMismatch, Message: msg}
}

func ErrInternal(msg string) error {
	return ServiceError{Status: 500, Code: CodeInternal, Message: msg}
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
