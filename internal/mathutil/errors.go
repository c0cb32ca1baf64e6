package mathutil

import "errors"

var (
	// ErrInvalidArgument is returned when an input buffer cannot hold a 4×4 matrix.
	ErrInvalidArgument = errors.New("mathutil: invalid argument")

	// ErrSingularMatrix is returned by inversion when the determinant is exactly zero.
	// No epsilon band is applied: near-singular matrices still invert.
	ErrSingularMatrix = errors.New("mathutil: singular matrix")
)
