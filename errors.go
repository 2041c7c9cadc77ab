package channelbuffer

import "errors"

// Common errors returned by buffer constructors and resize operations.
// All are recoverable; none of the checked APIs panic.
var (
	// ErrInvalidChannelCount indicates a negative channel count, or a zero
	// channel count where at least one channel is required.
	ErrInvalidChannelCount = errors.New("invalid channel count")

	// ErrInvalidFrameCount indicates a negative frame count.
	ErrInvalidFrameCount = errors.New("invalid frame count")

	// ErrBufferTooLarge indicates that channels * frames overflows the
	// maximum supported buffer length. Surfacing this as an error lets
	// real-time hosts degrade gracefully instead of aborting on an
	// oversized allocation request.
	ErrBufferTooLarge = errors.New("buffer too large")

	// ErrStorageTooSmall indicates that caller-supplied storage is shorter
	// than the requested channel layout requires.
	ErrStorageTooSmall = errors.New("storage too small")

	// ErrCapacityExceeded indicates an attempt to add a channel beyond a
	// buffer's fixed channel capacity.
	ErrCapacityExceeded = errors.New("channel capacity exceeded")

	// ErrBorrowedStorage indicates a resize on a buffer that borrows its
	// storage. Borrowed storage is never reallocated or released by the
	// buffer.
	ErrBorrowedStorage = errors.New("buffer borrows its storage")

	// ErrInvalidInstanceCount indicates a negative pool instance count.
	ErrInvalidInstanceCount = errors.New("invalid instance count")

	// ErrPoolExhausted indicates that every instance in a non-growable pool
	// is currently acquired.
	ErrPoolExhausted = errors.New("instance pool exhausted")

	// ErrStaleInstance indicates a pool operation through a handle that has
	// already been released, or that refers to a slot reacquired since.
	ErrStaleInstance = errors.New("stale instance handle")
)
