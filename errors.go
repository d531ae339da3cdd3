package seamcarve

import "github.com/pkg/errors"

// Sentinel errors returned by the carving engine. They are wrapped with
// context, so callers should compare them with errors.Is.
var (
	// ErrEmptyGrid is returned when a grid has no rows or no columns.
	ErrEmptyGrid = errors.New("seamcarve: grid must have at least one row and one column")
	// ErrOutOfRange is returned when a pixel is accessed outside the current grid bounds.
	ErrOutOfRange = errors.New("seamcarve: pixel coordinate out of range")
	// ErrInvalidResize is returned when the requested seam count can't be carved.
	ErrInvalidResize = errors.New("seamcarve: invalid resize request")
	// ErrInvalidSeam is returned when a seam doesn't match the grid height.
	ErrInvalidSeam = errors.New("seamcarve: seam length must match the grid height")
	// ErrInvalidBuffer is returned when the pixel buffer doesn't match the declared size.
	ErrInvalidBuffer = errors.New("seamcarve: pixel buffer length must be width*height*4")
)
