// Package testutil provides reusable test helper functions for channel
// buffer tests.
package testutil

import (
	"fmt"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// TB is the subset of [testing.TB] the assertion helpers rely on. It is an
// interface so the helpers' own failure reporting can be tested.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
}

// AssertAllZero verifies that every element of s is zero.
func AssertAllZero[T comparable](t TB, s []T, msgAndArgs ...any) bool {
	t.Helper()
	var zero T
	for i, v := range s {
		if v != zero {
			return assert.Fail(t, fmt.Sprintf("nonzero sample: s[%d] = %v, want zero", i, v), msgAndArgs...)
		}
	}
	return true
}

// AssertAllEqual verifies that every element of s equals want.
func AssertAllEqual[T comparable](t TB, s []T, want T, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != want {
			return assert.Fail(t, fmt.Sprintf("unexpected sample: s[%d] = %v, want %v", i, v, want), msgAndArgs...)
		}
	}
	return true
}

// AssertDisjoint verifies that no two of the given slices overlap in
// memory. Empty slices never overlap anything.
func AssertDisjoint[T any](t TB, views [][]T, msgAndArgs ...any) bool {
	t.Helper()
	size := unsafe.Sizeof(*new(T))
	for i := range views {
		if len(views[i]) == 0 {
			continue
		}
		iStart := uintptr(unsafe.Pointer(unsafe.SliceData(views[i])))
		iEnd := iStart + uintptr(len(views[i]))*size
		for j := i + 1; j < len(views); j++ {
			if len(views[j]) == 0 {
				continue
			}
			jStart := uintptr(unsafe.Pointer(unsafe.SliceData(views[j])))
			jEnd := jStart + uintptr(len(views[j]))*size
			if iStart < jEnd && jStart < iEnd {
				return assert.Fail(t, fmt.Sprintf("overlapping channel views: views %d and %d share memory", i, j), msgAndArgs...)
			}
		}
	}
	return true
}

// FillRamp fills s with a deterministic per-channel ramp so that tests can
// detect misplaced samples after a resize: s[i] = base + i.
func FillRamp[T interface {
	~float32 | ~float64 | ~int16 | ~int32 | ~int64
}](s []T, base T) {
	for i := range s {
		s[i] = base + T(i)
	}
}
