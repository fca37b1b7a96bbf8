package domain

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity does not exist. It is
// also deliberately returned for non-owner access to foreign entities so
// their existence is not leaked.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func NewNotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// FieldValidationError carries the offending field and a human-readable
// reason for a failed business rule.
type FieldValidationError struct {
	Field  string
	Reason string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func NewFieldValidation(field, reason string) error {
	return &FieldValidationError{Field: field, Reason: reason}
}

func IsFieldValidation(err error) bool {
	var fv *FieldValidationError
	return errors.As(err, &fv)
}
