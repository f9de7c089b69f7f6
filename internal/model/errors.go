package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDanglingReference is matched by DanglingReferenceError.
var ErrDanglingReference = errors.New("dangling reference")

// DanglingReferenceError reports a product whose company is not in the batch.
type DanglingReferenceError struct {
	ProductID string
	CompanyID string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("product %s references unknown company %q", e.ProductID, e.CompanyID)
}

// Is reports whether target is ErrDanglingReference.
func (e *DanglingReferenceError) Is(target error) bool {
	return target == ErrDanglingReference
}
