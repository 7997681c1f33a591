package collision

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedShape is matched by every *UnsupportedShapeError.
	ErrUnsupportedShape = errors.New("collision: unsupported collision pair")

	// ErrDegenerateShape is returned by area constructors for geometry the
	// narrow phase cannot handle.
	ErrDegenerateShape = errors.New("collision: degenerate shape")

	// ErrNoBody is returned when a contact's areas are not attached to bodies.
	ErrNoBody = errors.New("collision: area has no body")
)

// UnsupportedShapeError reports a pairing with no jump table entry.
type UnsupportedShapeError struct {
	A, B Kind
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("collision: unsupported collision pair %s-%s", e.A, e.B)
}

// Is makes errors.Is(err, ErrUnsupportedShape) match.
func (e *UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}
