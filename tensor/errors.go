package tensor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIndexOutOfRange = errors.New("tensor: index out of range")
	ErrBadShape        = errors.New("tensor: non-positive dimension not allowed")
	ErrDataLength      = errors.New("tensor: data length does not match shape")
	ErrShapeMismatch   = errors.New("tensor: shape mismatch")
)

// ShapeMismatchError reports two shapes that cannot be broadcast together.
// Axes lists every incompatible axis of the rank-padded shapes.
type ShapeMismatchError struct {
	A    []int
	B    []int
	Axes []int
}

func (e *ShapeMismatchError) Error() string {
	axes := make([]string, len(e.Axes))
	for i, a := range e.Axes {
		axes[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("tensor: shape mismatch: a.shape = %v, b.shape = %v (axes %s)",
		e.A, e.B, strings.Join(axes, ","))
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}
