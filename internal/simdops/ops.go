// Package simdops provides generic SIMD operations for float32 and float64
// channel data. It lets a single generic codebase dispatch to the optimized
// type-specific kernels in github.com/tphakala/simd without duplication.
//
// With Profile-Guided Optimization (Go 1.22+), the function pointer calls
// in hot paths can be devirtualized and inlined.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s.
	Scale func(dst, a []F, s F)

	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0],
	// dst[2]=a[1], ...
	Interleave2 func(dst, a, b []F)
}

// Pre-instantiated operations for each float type.
var (
	ops32 = Ops[float32]{
		Sum:              f32.Sum,
		Scale:            f32.Scale,
		DotProductUnsafe: f32.DotProductUnsafe,
		Interleave2:      f32.Interleave2,
	}
	ops64 = Ops[float64]{
		Sum:              f64.Sum,
		Scale:            f64.Scale,
		DotProductUnsafe: f64.DotProductUnsafe,
		Interleave2:      f64.Interleave2,
	}
)

// For returns the Ops instance for type F. The type switch happens at
// instantiation time, not in hot paths.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Deinterleave2 splits interleaved stereo into two planar slices:
// a[i] = src[2i], b[i] = src[2i+1]. The simd package has no kernel for this
// direction, so it is a scalar loop.
func Deinterleave2[F Float](a, b, src []F) {
	n := len(src) / 2
	for i := range n {
		a[i] = src[2*i]
		b[i] = src[2*i+1]
	}
}
