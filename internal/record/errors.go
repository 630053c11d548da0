package record

import (
	"errors"
	"fmt"
)

// StoreError represents a store-level failure the caller must see unchanged.
//
// Store errors include:
//   - Duplicate identity: Put found an existing record under the same ID
//   - Not found: Get or Delete found no record under the ID
type StoreError struct {
	// Code identifies the error category.
	Code ErrorCode

	// ID is the identity the operation was addressed to.
	ID string
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeDuplicateIdentity indicates a record with the same ID exists.
	ErrCodeDuplicateIdentity ErrorCode = "DUPLICATE_IDENTITY"

	// ErrCodeNotFound indicates no record exists under the ID.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	switch e.Code {
	case ErrCodeDuplicateIdentity:
		return fmt.Sprintf("%s: record already exists (id=%s)", e.Code, e.ID)
	case ErrCodeNotFound:
		return fmt.Sprintf("%s: record not found (id=%s)", e.Code, e.ID)
	default:
		return fmt.Sprintf("%s: id=%s", e.Code, e.ID)
	}
}

// NewDuplicateError creates a StoreError for an existing identity.
func NewDuplicateError(id string) *StoreError {
	return &StoreError{Code: ErrCodeDuplicateIdentity, ID: id}
}

// NewNotFoundError creates a StoreError for an absent identity.
func NewNotFoundError(id string) *StoreError {
	return &StoreError{Code: ErrCodeNotFound, ID: id}
}

// IsDuplicate returns true if err is a duplicate identity error.
// Uses errors.As to handle wrapped errors.
func IsDuplicate(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeDuplicateIdentity
	}
	return false
}

// IsNotFound returns true if err is a not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNotFound
	}
	return false
}
