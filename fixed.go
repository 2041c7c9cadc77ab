package channelbuffer

import "fmt"

// FixedBuffer is a multi-channel sample buffer whose channel count is fixed
// at construction. The frame count is chosen at runtime and, for owned
// buffers, may be changed later with [FixedBuffer.SetFrames].
//
// Storage is channel-major: frames [0, Frames) of channel 0 are followed by
// the frames of channel 1, and so on. Storage is either owned (allocated by
// [NewFixed]) or borrowed from the caller ([WrapFixed]); a borrowing buffer
// never reallocates or releases the storage it wraps.
type FixedBuffer[T Sample] struct {
	data     []T
	channels int
	frames   int
	borrowed bool
}

// NewFixed creates a FixedBuffer with the given channel and frame counts,
// backed by a single owned allocation. All samples are initialized to zero.
func NewFixed[T Sample](channels, frames int) (*FixedBuffer[T], error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}
	if err := validateShape(channels, frames); err != nil {
		return nil, err
	}
	return &FixedBuffer[T]{
		data:     make([]T, channels*frames),
		channels: channels,
		frames:   frames,
	}, nil
}

// WrapFixed creates a FixedBuffer that borrows the given channel-major
// storage. The frame count is len(data)/channels; any trailing remainder of
// data is ignored. The buffer never reallocates or releases data.
func WrapFixed[T Sample](data []T, channels int) (*FixedBuffer[T], error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}
	frames := len(data) / channels
	return &FixedBuffer[T]{
		data:     data[: channels*frames : channels*frames],
		channels: channels,
		frames:   frames,
		borrowed: true,
	}, nil
}

// WrapFixedFrames is the unchecked hot-path form of [WrapFixed] with an
// explicit frame count and no validation.
//
// The caller must uphold channels >= 1 and len(data) >= channels*frames.
// Violating either is undefined behavior.
func WrapFixedFrames[T Sample](data []T, channels, frames int) *FixedBuffer[T] {
	return &FixedBuffer[T]{
		data:     data,
		channels: channels,
		frames:   frames,
		borrowed: true,
	}
}

// Channels returns the channel count. It is constant for the lifetime of
// the buffer.
func (b *FixedBuffer[T]) Channels() int { return b.channels }

// Frames returns the number of frames in each channel.
func (b *FixedBuffer[T]) Frames() int { return b.frames }

// Borrowed reports whether the buffer wraps caller-owned storage.
func (b *FixedBuffer[T]) Borrowed() bool { return b.borrowed }

// Channel returns the view of the channel at index, exactly Frames()
// elements long. ok is false if index is out of bounds.
func (b *FixedBuffer[T]) Channel(index int) (ch []T, ok bool) {
	if index < 0 || index >= b.channels {
		return nil, false
	}
	return channelView(b.data, b.frames, index), true
}

// ChannelUnchecked returns the view of the channel at index without bounds
// checking.
//
// The caller must uphold 0 <= index < Channels(). Violating it is undefined
// behavior.
func (b *FixedBuffer[T]) ChannelUnchecked(index int) []T {
	return channelViewUnchecked(b.data, b.frames, index)
}

// Slices returns the views of all channels. The returned slice-of-slices is
// freshly allocated; inside a real-time callback use [FixedBuffer.AppendSlices]
// with preallocated storage instead.
func (b *FixedBuffer[T]) Slices() [][]T {
	return b.AppendSlices(make([][]T, 0, b.channels))
}

// AppendSlices appends the views of all channels to dst and returns the
// extended slice. Allocation-free when dst has capacity for Channels()
// more elements.
func (b *FixedBuffer[T]) AppendSlices(dst [][]T) [][]T {
	return appendChannelViews(dst, b.data, b.channels, b.frames)
}

// AppendSlicesRange appends views of the frame window [from, to) of every
// channel to dst. The window is clamped to [0, Frames()).
func (b *FixedBuffer[T]) AppendSlicesRange(dst [][]T, from, to int) [][]T {
	start, n := clampRange(from, to, b.frames)
	for ch := range b.channels {
		off := ch*b.frames + start
		dst = append(dst, b.data[off:off+n:off+n])
	}
	return dst
}

// AppendSlicesLen appends views of the first frames frames of every channel
// to dst. frames is clamped to [0, Frames()).
func (b *FixedBuffer[T]) AppendSlicesLen(dst [][]T, frames int) [][]T {
	return b.AppendSlicesRange(dst, 0, frames)
}

// Raw returns the entire channel-major storage as a single slice of length
// Channels()*Frames().
func (b *FixedBuffer[T]) Raw() []T { return b.data }

// Clear zeroes every sample in the buffer.
func (b *FixedBuffer[T]) Clear() { clear(b.data) }

// ClearFrames zeroes the first frames samples of every channel. frames is
// clamped to Frames().
func (b *FixedBuffer[T]) ClearFrames(frames int) {
	if frames > b.frames {
		frames = b.frames
	}
	if frames <= 0 {
		return
	}
	for ch := range b.channels {
		off := ch * b.frames
		clear(b.data[off : off+frames])
	}
}

// SetFrames changes the per-channel frame count. The storage is reallocated
// and existing samples are preserved per channel index: frames
// [0, min(old, new)) of every channel keep their values, and newly
// introduced frames are zero. Fails with [ErrBorrowedStorage] on a
// borrowing buffer. Not real-time-safe.
func (b *FixedBuffer[T]) SetFrames(frames int) error {
	if b.borrowed {
		return fmt.Errorf("%w: cannot resize", ErrBorrowedStorage)
	}
	if err := validateShape(b.channels, frames); err != nil {
		return err
	}
	if frames == b.frames {
		return nil
	}

	keep := min(b.frames, frames)
	data := make([]T, b.channels*frames)
	for ch := range b.channels {
		copy(data[ch*frames:ch*frames+keep], b.data[ch*b.frames:ch*b.frames+keep])
	}
	b.data = data
	b.frames = frames
	return nil
}
