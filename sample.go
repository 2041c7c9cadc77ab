package channelbuffer

import (
	"fmt"
	"unsafe"
)

// Sample is the constraint for buffer element types: any fixed-size numeric
// type commonly used for PCM audio. The zero value of a Sample type is
// treated as silence.
type Sample interface {
	~float32 | ~float64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the constraint for the floating-point subset of [Sample]
// supported by the SIMD-accelerated helpers in this package.
type Float interface {
	float32 | float64
}

// MaxChannels is the channel capacity of [VarBuffer] and the upper channel
// bound for [InstancePool] instances. Eight channels covers mono through
// 7.1 surround.
const MaxChannels = 8

// maxBufferLen caps the total element count of a single buffer. Large
// enough for any realistic audio block, small enough that channels*frames
// cannot overflow int on 64-bit targets.
const maxBufferLen = 1 << 30

// validateShape checks a (channels, frames) pair for construction or resize.
func validateShape(channels, frames int) error {
	if channels < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}
	if frames < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrameCount, frames)
	}
	if frames > 0 && channels > maxBufferLen/frames {
		return fmt.Errorf("%w: %d channels x %d frames", ErrBufferTooLarge, channels, frames)
	}
	return nil
}

// channelView derives the checked view of one channel from channel-major
// storage. The three-index slice expression caps the view at exactly frames
// elements, so views of distinct channels can never grow into each other.
func channelView[T Sample](data []T, frames, index int) []T {
	off := index * frames
	return data[off : off+frames : off+frames]
}

// channelViewUnchecked derives a channel view with raw pointer arithmetic
// and no bounds checks.
//
// The caller must uphold len(data) >= (index+1)*frames.
func channelViewUnchecked[T Sample](data []T, frames, index int) []T {
	if frames == 0 {
		return nil
	}
	var zero T
	p := unsafe.Add(unsafe.Pointer(unsafe.SliceData(data)), uintptr(index*frames)*unsafe.Sizeof(zero))
	return unsafe.Slice((*T)(p), frames)
}

// appendChannelViews appends the views of the first channels channels to
// dst. Allocation-free when dst has sufficient capacity.
func appendChannelViews[T Sample](dst [][]T, data []T, channels, frames int) [][]T {
	for ch := range channels {
		dst = append(dst, channelView(data, frames, ch))
	}
	return dst
}

// clampRange clamps [from, to) to [0, frames) and returns the start frame
// and length of the surviving window.
func clampRange(from, to, frames int) (start, n int) {
	if from < 0 {
		from = 0
	}
	if from > frames {
		from = frames
	}
	if to > frames {
		to = frames
	}
	if to < from {
		to = from
	}
	return from, to - from
}
