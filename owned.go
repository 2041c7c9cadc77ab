package channelbuffer

// OwnedBuffer is a multi-channel sample buffer that owns one contiguous
// channel-major allocation and can change both its channel and frame counts
// after construction. It is the variant to reach for when block sizes are
// negotiated at runtime; construction and [OwnedBuffer.Resize] are the only
// operations that allocate.
type OwnedBuffer[T Sample] struct {
	data     []T
	channels int
	frames   int
}

// NewOwned creates an OwnedBuffer with the given channel and frame counts.
// All samples are initialized to zero.
func NewOwned[T Sample](channels, frames int) (*OwnedBuffer[T], error) {
	if err := validateShape(channels, frames); err != nil {
		return nil, err
	}
	return &OwnedBuffer[T]{
		data:     make([]T, channels*frames),
		channels: channels,
		frames:   frames,
	}, nil
}

// Channels returns the current channel count.
func (b *OwnedBuffer[T]) Channels() int { return b.channels }

// Frames returns the number of frames in each channel.
func (b *OwnedBuffer[T]) Frames() int { return b.frames }

// Channel returns the view of the channel at index, exactly Frames()
// elements long. ok is false if index is out of bounds.
func (b *OwnedBuffer[T]) Channel(index int) (ch []T, ok bool) {
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
func (b *OwnedBuffer[T]) ChannelUnchecked(index int) []T {
	return channelViewUnchecked(b.data, b.frames, index)
}

// Slices returns the views of all channels. The returned slice-of-slices is
// freshly allocated; inside a real-time callback use
// [OwnedBuffer.AppendSlices] with preallocated storage instead.
func (b *OwnedBuffer[T]) Slices() [][]T {
	return b.AppendSlices(make([][]T, 0, b.channels))
}

// AppendSlices appends the views of all channels to dst and returns the
// extended slice. Allocation-free when dst has capacity for Channels()
// more elements.
func (b *OwnedBuffer[T]) AppendSlices(dst [][]T) [][]T {
	return appendChannelViews(dst, b.data, b.channels, b.frames)
}

// AppendSlicesRange appends views of the frame window [from, to) of every
// channel to dst. The window is clamped to [0, Frames()).
func (b *OwnedBuffer[T]) AppendSlicesRange(dst [][]T, from, to int) [][]T {
	start, n := clampRange(from, to, b.frames)
	for ch := range b.channels {
		off := ch*b.frames + start
		dst = append(dst, b.data[off:off+n:off+n])
	}
	return dst
}

// AppendSlicesLen appends views of the first frames frames of every channel
// to dst. frames is clamped to [0, Frames()).
func (b *OwnedBuffer[T]) AppendSlicesLen(dst [][]T, frames int) [][]T {
	return b.AppendSlicesRange(dst, 0, frames)
}

// Raw returns the entire channel-major storage as a single slice of length
// Channels()*Frames().
func (b *OwnedBuffer[T]) Raw() []T { return b.data }

// Clear zeroes every sample in the buffer without deallocating.
func (b *OwnedBuffer[T]) Clear() { clear(b.data) }

// ClearFrames zeroes the first frames samples of every channel. frames is
// clamped to Frames().
func (b *OwnedBuffer[T]) ClearFrames(frames int) {
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

// Resize changes the buffer's channel and frame counts. Samples at frame
// indices [0, min(oldFrames, frames)) of every surviving channel keep their
// values; newly introduced channels and frames are zero. When the new
// extent fits the existing allocation the channels are remapped in place
// with no reallocation; otherwise a single new allocation replaces the old
// one. Resizing to the current shape is a no-op. Not real-time-safe when it
// reallocates.
func (b *OwnedBuffer[T]) Resize(channels, frames int) error {
	if err := validateShape(channels, frames); err != nil {
		return err
	}
	if channels == b.channels && frames == b.frames {
		return nil
	}

	oldFrames := b.frames
	keepC := min(b.channels, channels)
	keepF := min(oldFrames, frames)
	newLen := channels * frames

	if newLen <= cap(b.data) {
		data := b.data[:newLen]
		if frames > oldFrames {
			// Growing frames moves each channel to a higher offset.
			// Walk channels highest-first so sources are consumed before
			// they are overwritten; copy itself is overlap-safe.
			for ch := keepC - 1; ch >= 0; ch-- {
				copy(data[ch*frames:ch*frames+keepF], b.data[ch*oldFrames:ch*oldFrames+keepF])
				clear(data[ch*frames+keepF : (ch+1)*frames])
			}
		} else {
			for ch := range keepC {
				copy(data[ch*frames:ch*frames+keepF], b.data[ch*oldFrames:ch*oldFrames+keepF])
				clear(data[ch*frames+keepF : (ch+1)*frames])
			}
		}
		clear(data[keepC*frames : newLen])
		b.data = data
	} else {
		data := make([]T, newLen)
		for ch := range keepC {
			copy(data[ch*frames:ch*frames+keepF], b.data[ch*oldFrames:ch*oldFrames+keepF])
		}
		b.data = data
	}

	b.channels = channels
	b.frames = frames
	return nil
}
