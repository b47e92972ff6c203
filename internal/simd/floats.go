package simd

// Lanes is the number of scalar elements processed per kernel step.
// Buffers handed to the Lanes kernels must have a length divisible by it.
const Lanes = 8

// Float is the set of element types the kernels operate on.
type Float interface {
	~float32 | ~float64
}

// SquaredL2 calculates the squared L2 distance of two vectors of any length.
// Whole lane blocks go through the lane kernel, the tail through a scalar loop.
//
// SAFETY: This function assumes len(a) == len(b).
func SquaredL2[T Float](a, b []T) T {
	n := len(a) - len(a)%Lanes
	sum := squaredL2Lanes(a[:n], b[:n])
	for i := n; i < len(a); i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// SquaredL2Lanes calculates the squared L2 distance of two lane-padded vectors.
// It panics if the length is not a multiple of Lanes.
func SquaredL2Lanes[T Float](a, b []T) T {
	if len(a)%Lanes != 0 {
		panic("simd: SquaredL2Lanes length is not a multiple of Lanes")
	}
	return squaredL2Lanes(a, b)
}

func squaredL2Lanes[T Float](a, b []T) T {
	if accWidth == 8 {
		return squaredL2x8(a, b)
	}
	return squaredL2x4(a, b)
}

func squaredL2x8[T Float](a, b []T) T {
	var s0, s1, s2, s3, s4, s5, s6, s7 T
	b = b[:len(a)]
	for i := 0; i < len(a); i += Lanes {
		x := a[i : i+Lanes : i+Lanes]
		y := b[i : i+Lanes : i+Lanes]
		d0 := x[0] - y[0]
		d1 := x[1] - y[1]
		d2 := x[2] - y[2]
		d3 := x[3] - y[3]
		d4 := x[4] - y[4]
		d5 := x[5] - y[5]
		d6 := x[6] - y[6]
		d7 := x[7] - y[7]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
		s4 += d4 * d4
		s5 += d5 * d5
		s6 += d6 * d6
		s7 += d7 * d7
	}
	return ((s0 + s1) + (s2 + s3)) + ((s4 + s5) + (s6 + s7))
}

func squaredL2x4[T Float](a, b []T) T {
	var s0, s1, s2, s3 T
	b = b[:len(a)]
	for i := 0; i < len(a); i += Lanes {
		x := a[i : i+Lanes : i+Lanes]
		y := b[i : i+Lanes : i+Lanes]
		d0 := x[0] - y[0]
		d1 := x[1] - y[1]
		d2 := x[2] - y[2]
		d3 := x[3] - y[3]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
		d0 = x[4] - y[4]
		d1 = x[5] - y[5]
		d2 = x[6] - y[6]
		d3 = x[7] - y[7]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	return (s0 + s1) + (s2 + s3)
}

// AddInPlace adds src element-wise into dst.
//
// SAFETY: This function assumes len(src) >= len(dst).
func AddInPlace[T Float](dst, src []T) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] += src[i]
	}
}

// ScaleInPlace multiplies all elements of a by scalar.
func ScaleInPlace[T Float](a []T, scalar T) {
	for i := range a {
		a[i] *= scalar
	}
}

// MoveToward moves dst toward target by rate: dst += rate * (target - dst).
// A rate of 1 copies target, a rate of 0 leaves dst unchanged.
//
// SAFETY: This function assumes len(target) >= len(dst).
func MoveToward[T Float](dst, target []T, rate T) {
	target = target[:len(dst)]
	if rate == 1 {
		copy(dst, target)
		return
	}
	for i := range dst {
		dst[i] += rate * (target[i] - dst[i])
	}
}
