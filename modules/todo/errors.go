package todo

import "errors"

// Sentinel errors for the todo service. The API layer matches these by
// message after a service-bus round trip, so the strings are part of the
// module contract.
var (
	// ErrTitleRequired is returned when the title is empty or whitespace.
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidCategory is returned when the category is outside the allowed set.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidPriority is returned when the priority is outside the allowed set.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrInvalidDeadline is returned when a deadline string cannot be parsed.
	ErrInvalidDeadline = errors.New("invalid deadline")
	// ErrTodoNotFound is returned when the id does not resolve to a record.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrAuthRequired is returned when a mutating operation on an owned todo
	// has no verified identity.
	ErrAuthRequired = errors.New("authentication required")
	// ErrNotOwner is returned when the verified identity does not match the
	// todo's owner.
	ErrNotOwner = errors.New("todo belongs to another user")
)
