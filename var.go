package channelbuffer

import "fmt"

// VarBuffer is a multi-channel sample buffer with a runtime channel count
// of up to [MaxChannels]. Channel metadata is held in a fixed-size inline
// table, so adding or removing a channel never allocates metadata on the
// heap. This matters in the borrow-mode use case where a host hands the
// buffer one caller-owned slice per channel.
//
// A VarBuffer is either owned ([NewVar]) over a single channel-major arena,
// or borrowed ([WrapVar], [EmptyVar]) over storage the caller controls.
type VarBuffer[T Sample] struct {
	data     []T              // contiguous arena; nil when channels are scattered caller slices
	views    [MaxChannels][]T // inline channel view table
	channels int
	frames   int
	owned    bool
}

// NewVar creates an owned VarBuffer with the given channel and frame
// counts, backed by one contiguous zero-initialized arena. channels must be
// in [0, MaxChannels].
func NewVar[T Sample](channels, frames int) (*VarBuffer[T], error) {
	if channels < 0 || channels > MaxChannels {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrInvalidChannelCount, channels, MaxChannels)
	}
	if err := validateShape(channels, frames); err != nil {
		return nil, err
	}
	b := &VarBuffer[T]{
		data:     make([]T, channels*frames),
		channels: channels,
		frames:   frames,
		owned:    true,
	}
	b.deriveViews()
	return b, nil
}

// WrapVar creates a borrowing VarBuffer over one contiguous channel-major
// region. The frame count is len(data)/channels; any trailing remainder of
// data is ignored. channels must be in [1, MaxChannels].
func WrapVar[T Sample](data []T, channels int) (*VarBuffer[T], error) {
	if channels < 1 || channels > MaxChannels {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrInvalidChannelCount, channels, MaxChannels)
	}
	frames := len(data) / channels
	b := &VarBuffer[T]{
		data:     data[: channels*frames : channels*frames],
		channels: channels,
		frames:   frames,
	}
	b.deriveViews()
	return b, nil
}

// EmptyVar creates a borrowing VarBuffer with zero channels and the given
// frame count. Channels are attached afterwards with
// [VarBuffer.AddChannel], one caller-owned slice each.
func EmptyVar[T Sample](frames int) (*VarBuffer[T], error) {
	if frames < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameCount, frames)
	}
	return &VarBuffer[T]{frames: frames}, nil
}

// deriveViews rebuilds the inline view table from the contiguous arena.
func (b *VarBuffer[T]) deriveViews() {
	for ch := range b.channels {
		b.views[ch] = channelView(b.data, b.frames, ch)
	}
	for ch := b.channels; ch < MaxChannels; ch++ {
		b.views[ch] = nil
	}
}

// Channels returns the current channel count.
func (b *VarBuffer[T]) Channels() int { return b.channels }

// Frames returns the number of frames in each channel.
func (b *VarBuffer[T]) Frames() int { return b.frames }

// Borrowed reports whether the buffer wraps caller-owned storage.
func (b *VarBuffer[T]) Borrowed() bool { return !b.owned }

// Channel returns the view of the channel at index, exactly Frames()
// elements long. The bound is the current channel count, not MaxChannels;
// ok is false if index is out of bounds.
func (b *VarBuffer[T]) Channel(index int) (ch []T, ok bool) {
	if index < 0 || index >= b.channels {
		return nil, false
	}
	return b.views[index], true
}

// ChannelUnchecked returns the view of the channel at index without
// checking it against the current channel count.
//
// The caller must uphold 0 <= index < Channels(). Violating it is undefined
// behavior.
func (b *VarBuffer[T]) ChannelUnchecked(index int) []T {
	return b.views[index]
}

// AddChannel attaches one more channel and returns its index. Fails with
// [ErrCapacityExceeded] once the buffer holds MaxChannels channels.
//
// On a borrowing buffer, s becomes the new channel's storage and must hold
// at least Frames() samples; only the first Frames() are used. On an owned
// buffer the arena is reallocated to fit the extra channel (not
// real-time-safe), the contents of s are copied in, and a nil or short s
// leaves the remainder of the new channel zero.
func (b *VarBuffer[T]) AddChannel(s []T) (int, error) {
	if b.channels == MaxChannels {
		return 0, fmt.Errorf("%w: %d channels", ErrCapacityExceeded, MaxChannels)
	}
	index := b.channels

	if !b.owned {
		if len(s) < b.frames {
			return 0, fmt.Errorf("%w: channel needs %d samples, got %d", ErrStorageTooSmall, b.frames, len(s))
		}
		b.views[index] = s[: b.frames : b.frames]
		// Channels are now scattered caller slices, not one region.
		b.data = nil
		b.channels++
		return index, nil
	}

	data := make([]T, (b.channels+1)*b.frames)
	for ch := range b.channels {
		copy(data[ch*b.frames:(ch+1)*b.frames], b.views[ch])
	}
	copy(data[index*b.frames:(index+1)*b.frames], s)
	b.data = data
	b.channels++
	b.deriveViews()
	return index, nil
}

// RemoveChannel detaches the channel at index, re-pointing the remaining
// channel views so that indices stay dense. Underlying storage is not
// shrunk. Returns false if index is out of bounds.
func (b *VarBuffer[T]) RemoveChannel(index int) bool {
	if index < 0 || index >= b.channels {
		return false
	}
	copy(b.views[index:b.channels-1], b.views[index+1:b.channels])
	b.channels--
	b.views[b.channels] = nil
	if !b.owned {
		// A gap in a borrowed region breaks contiguity.
		b.data = nil
	}
	return true
}

// SetChannels changes the channel count of an owned buffer. Growing repacks
// the arena, preserving existing channels and zero-filling new ones (not
// real-time-safe); shrinking drops trailing channels without reallocating.
// Fails with [ErrBorrowedStorage] on a borrowing buffer.
func (b *VarBuffer[T]) SetChannels(channels int) error {
	if !b.owned {
		return fmt.Errorf("%w: cannot resize", ErrBorrowedStorage)
	}
	if channels < 0 || channels > MaxChannels {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidChannelCount, channels, MaxChannels)
	}
	switch {
	case channels == b.channels:
		return nil
	case channels < b.channels:
		for ch := channels; ch < b.channels; ch++ {
			b.views[ch] = nil
		}
		b.channels = channels
		return nil
	default:
		data := make([]T, channels*b.frames)
		for ch := range b.channels {
			copy(data[ch*b.frames:(ch+1)*b.frames], b.views[ch])
		}
		b.data = data
		b.channels = channels
		b.deriveViews()
		return nil
	}
}

// Slices returns the views of all current channels. The returned
// slice-of-slices is freshly allocated; inside a real-time callback use
// [VarBuffer.AppendSlices] with preallocated storage instead.
func (b *VarBuffer[T]) Slices() [][]T {
	return b.AppendSlices(make([][]T, 0, b.channels))
}

// AppendSlices appends the views of all current channels to dst and returns
// the extended slice. Allocation-free when dst has capacity for Channels()
// more elements.
func (b *VarBuffer[T]) AppendSlices(dst [][]T) [][]T {
	for ch := range b.channels {
		dst = append(dst, b.views[ch])
	}
	return dst
}

// AppendSlicesRange appends views of the frame window [from, to) of every
// current channel to dst. The window is clamped to [0, Frames()). Works for
// scattered borrow-mode channels as well.
func (b *VarBuffer[T]) AppendSlicesRange(dst [][]T, from, to int) [][]T {
	start, n := clampRange(from, to, b.frames)
	for ch := range b.channels {
		v := b.views[ch]
		dst = append(dst, v[start:start+n:start+n])
	}
	return dst
}

// AppendSlicesLen appends views of the first frames frames of every current
// channel to dst. frames is clamped to [0, Frames()).
func (b *VarBuffer[T]) AppendSlicesLen(dst [][]T, frames int) [][]T {
	return b.AppendSlicesRange(dst, 0, frames)
}

// Raw returns the contiguous channel-major storage backing the buffer, or
// nil when the channels are scattered caller slices (after borrow-mode
// AddChannel or RemoveChannel).
func (b *VarBuffer[T]) Raw() []T { return b.data }

// Clear zeroes every sample in every current channel.
func (b *VarBuffer[T]) Clear() {
	for ch := range b.channels {
		clear(b.views[ch])
	}
}

// ClearFrames zeroes the first frames samples of every current channel.
// frames is clamped to Frames().
func (b *VarBuffer[T]) ClearFrames(frames int) {
	if frames > b.frames {
		frames = b.frames
	}
	if frames <= 0 {
		return
	}
	for ch := range b.channels {
		clear(b.views[ch][:frames])
	}
}
