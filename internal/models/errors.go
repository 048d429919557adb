package models

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrPersistence  = errors.New("persistence failure")
)

// DuplicateKeyError is returned when a key collides case-insensitively
// with another key of the same collection.
type DuplicateKeyError struct {
	Key      string
	Existing string
}

func (e *DuplicateKeyError) Error() string {
	if e.Existing != "" && e.Existing != e.Key {
		return fmt.Sprintf("duplicate key %q: already stored as %q", e.Key, e.Existing)
	}
	return fmt.Sprintf("duplicate key %q", e.Key)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a mutation that targets an absent key or index.
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.Collection, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
