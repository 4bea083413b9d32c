package service

import "fmt"

// NotFoundError indicates a resource is absent or not owned by the caller
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFoundError creates a not-found error for a resource
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// StorageError wraps a failed datastore operation
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps a datastore failure with the operation name
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
