package channelbuffer

import (
	"fmt"

	"github.com/go-audio/audio"
)

// Interop with github.com/go-audio buffers, which store samples
// interleaved (frame-major). These conversions bridge decoder output into
// the channel-major layout the rest of this package works on. They
// allocate, so run them at load time, not inside a callback.

// defaultBitDepth is assumed when an IntBuffer does not carry its source
// bit depth.
const defaultBitDepth = 16

// FromFloatBuffer deinterleaves a go-audio float buffer into a new
// channel-major [OwnedBuffer]. Trailing samples of an incomplete final
// frame are ignored.
func FromFloatBuffer(src *audio.FloatBuffer) (*OwnedBuffer[float64], error) {
	if src == nil || src.Format == nil {
		return nil, fmt.Errorf("%w: nil source buffer", ErrStorageTooSmall)
	}
	channels := src.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}

	frames := len(src.Data) / channels
	buf, err := NewOwned[float64](channels, frames)
	if err != nil {
		return nil, err
	}
	for ch := range channels {
		dst := buf.ChannelUnchecked(ch)
		for i := range frames {
			dst[i] = src.Data[i*channels+ch]
		}
	}
	return buf, nil
}

// FromIntBuffer deinterleaves a go-audio PCM buffer into a new
// channel-major [OwnedBuffer], scaling samples to [-1, 1] using the
// buffer's source bit depth (16-bit assumed when unset).
func FromIntBuffer(src *audio.IntBuffer) (*OwnedBuffer[float64], error) {
	if src == nil || src.Format == nil {
		return nil, fmt.Errorf("%w: nil source buffer", ErrStorageTooSmall)
	}
	channels := src.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}

	bitDepth := src.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = defaultBitDepth
	}
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))

	frames := len(src.Data) / channels
	buf, err := NewOwned[float64](channels, frames)
	if err != nil {
		return nil, err
	}
	for ch := range channels {
		dst := buf.ChannelUnchecked(ch)
		for i := range frames {
			dst[i] = float64(src.Data[i*channels+ch]) * scale
		}
	}
	return buf, nil
}

// ToFloatBuffer interleaves a channel-major buffer into a new go-audio
// float buffer with the given sample rate.
func ToFloatBuffer(b *OwnedBuffer[float64], sampleRate int) *audio.FloatBuffer {
	channels := b.Channels()
	frames := b.Frames()
	out := &audio.FloatBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data: make([]float64, channels*frames),
	}
	for ch := range channels {
		src := b.ChannelUnchecked(ch)
		for i := range frames {
			out.Data[i*channels+ch] = src[i]
		}
	}
	return out
}
