package repository

import "errors"

// Common repository errors
var (
	// ErrListNotFound is returned when a task list is not found
	ErrListNotFound = errors.New("task list not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrShareNotFound is returned when a share is not found
	ErrShareNotFound = errors.New("share not found")

	// ErrShareExists is returned when a share already exists for a (list, user) pair
	ErrShareExists = errors.New("share already exists for this user")
)
