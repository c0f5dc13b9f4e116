package tensor

// BroadcastMul multiplies a and b elementwise under NumPy broadcasting
// rules. Shapes of different rank are left-padded with ones. On each axis
// the sizes must be equal or one of them must be 1, in which case that
// operand is repeated along the axis. a and b are left untouched.
func BroadcastMul(a, b *Dense) (*Dense, error) {
	return broadcastBinary(a, b, func(x, y float64) float64 { return x * y })
}

func broadcastBinary(a, b *Dense, fn func(x, y float64) float64) (*Dense, error) {
	outShape, err := BroadcastShape(a.shape, b.shape)
	if err != nil {
		return nil, err
	}

	rank := len(outShape)
	aStrides := broadcastStrides(a.shape, rank)
	bStrides := broadcastStrides(b.shape, rank)

	out := New(outShape...)
	coord := make([]int, rank)
	aOff, bOff := 0, 0
	for i := range out.data {
		out.data[i] = fn(a.data[aOff], b.data[bOff])

		// odometer increment over the output coordinates
		for d := rank - 1; d >= 0; d -= 1 {
			coord[d] += 1
			aOff += aStrides[d]
			bOff += bStrides[d]
			if coord[d] < outShape[d] {
				break
			}
			aOff -= aStrides[d] * coord[d]
			bOff -= bStrides[d] * coord[d]
			coord[d] = 0
		}
	}
	return out, nil
}

// BroadcastShape computes the shape two operands broadcast to. Every
// incompatible axis is reported in the returned *ShapeMismatchError.
func BroadcastShape(a, b []int) ([]int, error) {
	rank := len(a)
	if len(b) > rank {
		rank = len(b)
	}
	pa := leftPad(a, rank)
	pb := leftPad(b, rank)

	out := make([]int, rank)
	var bad []int
	for i := 0; i < rank; i += 1 {
		switch {
		case pa[i] == pb[i]:
			out[i] = pa[i]
		case pa[i] == 1:
			out[i] = pb[i]
		case pb[i] == 1:
			out[i] = pa[i]
		default:
			bad = append(bad, i)
		}
	}
	if len(bad) > 0 {
		return nil, &ShapeMismatchError{
			A:    append([]int(nil), a...),
			B:    append([]int(nil), b...),
			Axes: bad,
		}
	}
	return out, nil
}

func leftPad(shape []int, rank int) []int {
	out := make([]int, rank)
	pad := rank - len(shape)
	for i := 0; i < pad; i += 1 {
		out[i] = 1
	}
	copy(out[pad:], shape)
	return out
}

// broadcastStrides returns strides of shape padded to rank, with a zero
// stride on every size-1 axis so that it always reads index 0.
func broadcastStrides(shape []int, rank int) []int {
	padded := leftPad(shape, rank)
	s := strides(padded)
	for i, n := range padded {
		if n == 1 {
			s[i] = 0
		}
	}
	return s
}
