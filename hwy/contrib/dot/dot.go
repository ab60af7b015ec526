// Package dot provides integer dot products for the k-last matmul path and
// for checking packed layouts.
package dot

// Int32 computes sum(a[i]*b[i]) over the first min(len(a), len(b)) elements.
// The loop is unrolled by 4 with independent accumulators so the compiler can
// keep them in registers.
func Int32(a, b []int32) int32 {
	n := min(len(a), len(b))
	a, b = a[:n], b[:n]

	var s0, s1, s2, s3 int32
	var i int
	for i = 0; i+4 <= n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	for ; i < n; i++ {
		s0 += a[i] * b[i]
	}
	return s0 + s1 + s2 + s3
}

// Uint8 computes sum(a[i]*b[i]) over unsigned bytes, widening each product
// to int32 before accumulating. This is the arithmetic of one VPDPBUUD lane
// when len(a) == 4.
func Uint8(a, b []uint8) int32 {
	n := min(len(a), len(b))
	var sum int32
	for i := range n {
		sum += int32(a[i]) * int32(b[i])
	}
	return sum
}
