package tensor

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// internal dense tensor representation
type Dense struct {
	shape   []int
	strides []int
	data    []float64
}

// New creates a zero-valued Dense with the given shape. If any dimension
// is non-positive, it will panic. A float64 slice is used as the underlying
// storage and the data layout is in row major order, i.e. for shape
// (n0, n1, n2) the (i*n1*n2 + j*n2 + k)-th element in the data slice is
// the [i, j, k]-th element of the tensor.
func New(shape ...int) *Dense {
	n, err := volume(shape)
	if err != nil {
		panic(err)
	}
	return &Dense{
		shape:   append([]int(nil), shape...),
		strides: strides(shape),
		data:    make([]float64, n),
	}
}

// FromSlice wraps data, without copying, as a tensor of the given shape.
func FromSlice(data []float64, shape ...int) (*Dense, error) {
	n, err := volume(shape)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, ErrDataLength
	}
	return &Dense{
		shape:   append([]int(nil), shape...),
		strides: strides(shape),
		data:    data,
	}, nil
}

// FromMatrix copies m into a rank-2 tensor.
func FromMatrix(m mat.Matrix) *Dense {
	r, c := m.Dims()
	t := New(r, c)
	for i := 0; i < r; i += 1 {
		for j := 0; j < c; j += 1 {
			t.data[i*c+j] = m.At(i, j)
		}
	}
	return t
}

// Matrix copies a rank-2 tensor into a gonum matrix.
func (t *Dense) Matrix() (*mat.Dense, error) {
	if len(t.shape) != 2 {
		return nil, ErrBadShape
	}
	return mat.NewDense(t.shape[0], t.shape[1], append([]float64(nil), t.data...)), nil
}

// get the shape of the tensor
func (t *Dense) Shape() []int {
	return append([]int(nil), t.shape...)
}

// get the number of axes
func (t *Dense) Rank() int {
	return len(t.shape)
}

// get the number of elements
func (t *Dense) Len() int {
	return len(t.data)
}

// Data returns the backing slice in row major order.
func (t *Dense) Data() []float64 {
	return t.data
}

// get the element at idx
func (t *Dense) At(idx ...int) float64 {
	return t.data[t.offset(idx)]
}

// set val to the element at idx
func (t *Dense) Set(val float64, idx ...int) {
	t.data[t.offset(idx)] = val
}

func (t *Dense) Clone() *Dense {
	return &Dense{
		shape:   append([]int(nil), t.shape...),
		strides: append([]int(nil), t.strides...),
		data:    append([]float64(nil), t.data...),
	}
}

// Reshape returns a view of t with a new shape. The view shares storage
// with t, so the number of elements must not change.
func (t *Dense) Reshape(shape ...int) (*Dense, error) {
	return FromSlice(t.data, shape...)
}

// Sum adds up every element.
func (t *Dense) Sum() float64 {
	return floats.Sum(t.data)
}

// SumAxis reduces t along axis, returning a tensor with that axis removed.
// Reducing a rank-1 tensor yields a rank-1 tensor of length one.
func (t *Dense) SumAxis(axis int) *Dense {
	if axis < 0 || axis >= len(t.shape) {
		panic(ErrIndexOutOfRange)
	}

	outer := 1
	for _, n := range t.shape[:axis] {
		outer *= n
	}
	size := t.shape[axis]
	inner := t.strides[axis]

	shape := make([]int, 0, len(t.shape))
	shape = append(shape, t.shape[:axis]...)
	shape = append(shape, t.shape[axis+1:]...)
	if len(shape) == 0 {
		shape = append(shape, 1)
	}

	out := New(shape...)
	for o := 0; o < outer; o += 1 {
		dst := out.data[o*inner : (o+1)*inner]
		for a := 0; a < size; a += 1 {
			base := (o*size + a) * inner
			floats.Add(dst, t.data[base:base+inner])
		}
	}
	return out
}

func (t *Dense) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(ErrIndexOutOfRange)
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= t.shape[i] {
			panic(ErrIndexOutOfRange)
		}
		off += v * t.strides[i]
	}
	return off
}

func volume(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, ErrBadShape
	}
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0, ErrBadShape
		}
		n *= d
	}
	return n, nil
}

func strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i -= 1 {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}
