package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yamdb-api/policy"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or confirmation code")
	ErrUnauthenticated    = errors.New("authentication credentials were not provided or are invalid")
	ErrPermissionDenied   = errors.New("you do not have permission to perform this action")
	ErrNotFound           = errors.New("not found")
	ErrMethodNotAllowed   = errors.New("method not allowed")
	ErrInternalServer     = errors.New("internal server error")
)

// ValidationError carries field-scoped messages for malformed or conflicting input
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a ValidationError with a single message
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	e.Add(field, message)
	return e
}

// Add appends a message to a field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no message was recorded
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DecisionError converts a denied policy decision into a service error
func DecisionError(d policy.Decision) error {
	switch d {
	case policy.Allow:
		return nil
	case policy.DenyUnauthenticated:
		return ErrUnauthenticated
	case policy.DenyMethodNotAllowed:
		return ErrMethodNotAllowed
	}
	return ErrPermissionDenied
}

// authorizeContent runs the object-level check for a review or comment
func authorizeContent(caller policy.Caller, method string, authorID uint) error {
	return DecisionError(policy.Decide(caller, method, policy.Content, &policy.Resource{AuthorID: authorID}))
}

func notFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}
