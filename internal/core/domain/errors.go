package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or empty content at ingestion.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidArgument indicates a bad call argument, such as a non-positive k
	// or a malformed identity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch indicates a vector length inconsistent with the
	// established store dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown storage backend or file format.
	ErrUnsupportedType = errors.New("unsupported type")
)

// DimensionError describes a rejected vector. It matches ErrDimensionMismatch.
type DimensionError struct {
	// Expected is the store's established dimension.
	Expected int
	// Got is the length of the rejected vector.
	Got int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Got)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// Describe returns a short, stable label for the kind of err, suitable for
// surfacing at a user boundary.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid input"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid argument"
	case errors.Is(err, ErrDimensionMismatch):
		return "dimension mismatch"
	default:
		return "internal error"
	}
}
