// Package taskerr defines the error taxonomy shared across the assistant:
// validation failures, missing records, and undecodable model output.
package taskerr

import "fmt"

// ValidationError indicates caller-supplied input that failed validation.
// It always propagates to the caller; boundaries must not convert it into
// a conversational reply.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with a formatted message.
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFound creates a NotFoundError for the given resource and ID.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// DecodeError indicates model output that could not be parsed into the
// structure a collaborator expects.
type DecodeError struct {
	Source string // which collaborator produced the output
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s output: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecode wraps err as a DecodeError attributed to source.
func NewDecode(source string, err error) *DecodeError {
	return &DecodeError{Source: source, Err: err}
}
