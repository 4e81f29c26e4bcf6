package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrInvalidCode      = errors.New("invite code is invalid")
	ErrExpired          = errors.New("invite has expired")
	ErrAlreadyUsed      = errors.New("invite has already been used")
	ErrAlreadyMember    = errors.New("user is already a member of this school")
	ErrDuplicatePending = errors.New("recipient already has a pending invite")
	ErrDuplicateInBatch = errors.New("recipient appears earlier in the same batch")
	ErrStorage          = errors.New("storage failure")
	ErrForbidden        = errors.New("not allowed for this school")
	ErrSchoolNotFound   = errors.New("school not found")
	ErrInviteNotFound   = errors.New("invite not found")
	ErrBillingDisabled  = errors.New("billing is not configured")
	ErrNoBillingAccount = errors.New("school has no billing account yet")
)

// ValidationError is returned for bad input before anything is persisted.
// errors.Is(err, ErrValidation) holds for it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// StorageError wraps a persistence failure. errors.Is(err, ErrStorage) holds
// and the driver error stays reachable through Unwrap.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
