package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDenseShape(t *testing.T) {
	m := New(2, 3, 4)

	assert.Equal(t, []int{2, 3, 4}, m.Shape())
	assert.Equal(t, 3, m.Rank())
	assert.Equal(t, 24, m.Len())
}

func TestDenseBadShape(t *testing.T) {
	assert.PanicsWithValue(t, ErrBadShape, func() { New(2, 0, 3) })

	_, err := FromSlice([]float64{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, ErrDataLength)

	_, err = FromSlice([]float64{}, -1)
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestDenseGet(t *testing.T) {
	m := New(2, 3)

	val := 0.0
	for r := 0; r < 2; r += 1 {
		for c := 0; c < 3; c += 1 {
			m.Set(val, r, c)
			val += 1.0
		}
	}

	assert.Equal(t, 0.0, m.At(0, 0))
	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 2.0, m.At(0, 2))
	assert.Equal(t, 3.0, m.At(1, 0))
	assert.Equal(t, 4.0, m.At(1, 1))
	assert.Equal(t, 5.0, m.At(1, 2))
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, m.Data())

	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { m.At(2, 0) })
	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { m.At(0) })
}

func TestDenseReshapeSharesStorage(t *testing.T) {
	m, err := FromSlice([]float64{0, 1, 2, 3, 4, 5}, 2, 3)
	require.NoError(t, err)

	v, err := m.Reshape(2, 3, 1)
	require.NoError(t, err)
	v.Set(42, 1, 2, 0)
	assert.Equal(t, 42.0, m.At(1, 2))

	c := m.Clone()
	c.Set(-1, 0, 0)
	assert.Equal(t, 0.0, m.At(0, 0))

	_, err = m.Reshape(4, 2)
	assert.ErrorIs(t, err, ErrDataLength)
}

func TestDenseSumAxis(t *testing.T) {
	// shape (2, 3, 2), values 0..11
	data := make([]float64, 12)
	for i := range data {
		data[i] = float64(i)
	}
	m, err := FromSlice(data, 2, 3, 2)
	require.NoError(t, err)

	s0 := m.SumAxis(0)
	assert.Equal(t, []int{3, 2}, s0.Shape())
	assert.Equal(t, []float64{6, 8, 10, 12, 14, 16}, s0.Data())

	s1 := m.SumAxis(1)
	assert.Equal(t, []int{2, 2}, s1.Shape())
	assert.Equal(t, []float64{6, 9, 24, 27}, s1.Data())

	s2 := m.SumAxis(2)
	assert.Equal(t, []int{2, 3}, s2.Shape())
	assert.Equal(t, []float64{1, 5, 9, 13, 17, 21}, s2.Data())

	flat := s2.SumAxis(1).SumAxis(0)
	assert.Equal(t, []int{1}, flat.Shape())
	assert.Equal(t, 66.0, flat.At(0))
	assert.Equal(t, 66.0, m.Sum())
}

func TestDenseMatrixRoundTrip(t *testing.T) {
	src := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	m := FromMatrix(src)
	assert.Equal(t, []int{2, 3}, m.Shape())
	assert.Equal(t, 6.0, m.At(1, 2))

	back, err := m.Matrix()
	require.NoError(t, err)
	assert.True(t, mat.Equal(src, back))

	_, err = New(1, 2, 3).Matrix()
	assert.ErrorIs(t, err, ErrBadShape)
}
