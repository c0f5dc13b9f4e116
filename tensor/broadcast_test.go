package tensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arange(n int, shape ...int) *Dense {
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i)
	}
	t, err := FromSlice(data, shape...)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBroadcastMul(t *testing.T) {
	cases := []struct {
		name  string
		a, b  *Dense
		shape []int
		want  []float64
	}{
		{
			name:  "stretch axes 0 and 1",
			a:     arange(9, 3, 1, 3),
			b:     arange(3, 1, 1, 3),
			shape: []int{3, 1, 3},
			want:  []float64{0, 1, 4, 0, 4, 10, 0, 7, 16},
		},
		{
			name:  "stretch on both operands",
			a:     arange(10, 5, 1, 2),
			b:     arange(8, 1, 4, 2),
			shape: []int{5, 4, 2},
			want: []float64{
				0, 1, 0, 3, 0, 5, 0, 7,
				0, 3, 4, 9, 8, 15, 12, 21,
				0, 5, 8, 15, 16, 25, 24, 35,
				0, 7, 12, 21, 24, 35, 36, 49,
				0, 9, 16, 27, 32, 45, 48, 63,
			},
		},
		{
			name:  "lower rank operand",
			a:     arange(6, 2, 3),
			b:     arange(3, 3),
			shape: []int{2, 3},
			want:  []float64{0, 1, 4, 0, 4, 10},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ab, err := BroadcastMul(tc.a, tc.b)
			require.NoError(t, err)
			ba, err := BroadcastMul(tc.b, tc.a)
			require.NoError(t, err)

			assert.Equal(t, tc.shape, ab.Shape())
			assert.Equal(t, tc.want, ab.Data())
			assert.Equal(t, ab.Shape(), ba.Shape())
			assert.Equal(t, ab.Data(), ba.Data())
		})
	}
}

func TestBroadcastMulLeavesOperands(t *testing.T) {
	a := arange(6, 2, 3, 1)
	b := arange(4, 1, 1, 4)

	_, err := BroadcastMul(a, b)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, a.Data())
	assert.Equal(t, []float64{0, 1, 2, 3}, b.Data())
}

func TestBroadcastShapeMismatch(t *testing.T) {
	cases := []struct {
		a, b []int
		axes []int
	}{
		{[]int{2, 3, 4}, []int{5, 3, 4}, []int{0}},
		{[]int{2, 3, 4}, []int{2, 5, 4}, []int{1}},
		{[]int{2, 3, 4}, []int{2, 3, 5}, []int{2}},
		{[]int{2, 3, 4}, []int{3, 4, 5}, []int{0, 1, 2}},
	}

	for _, tc := range cases {
		_, err := BroadcastMul(New(tc.a...), New(tc.b...))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrShapeMismatch))

		var se *ShapeMismatchError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, tc.a, se.A)
		assert.Equal(t, tc.b, se.B)
		assert.Equal(t, tc.axes, se.Axes)
		assert.Contains(t, err.Error(), "a.shape = ")
		assert.Contains(t, err.Error(), "b.shape = ")
	}
}

func TestBroadcastShape(t *testing.T) {
	s, err := BroadcastShape([]int{4, 1, 3}, []int{1, 5, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 3}, s)

	s, err = BroadcastShape([]int{7}, []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 7}, s)
}
