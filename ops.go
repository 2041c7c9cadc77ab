package channelbuffer

import (
	"fmt"
	"math"

	"github.com/BillyDM/audio-channel-buffer/internal/simdops"
)

// Channel kernels for the floating-point sample types. These operate on
// plain channel views, so they compose with every buffer variant:
//
//	ch, _ := buf.Channel(0)
//	channelbuffer.ApplyGain(ch, 0.5)
//
// All kernels are allocation-free and dispatch to SIMD implementations
// where github.com/tphakala/simd provides one.

// ApplyGain multiplies every sample of ch by gain in place.
func ApplyGain[F Float](ch []F, gain F) {
	if len(ch) == 0 {
		return
	}
	simdops.For[F]().Scale(ch, ch, gain)
}

// ChannelSum returns the sum of all samples in ch.
func ChannelSum[F Float](ch []F) F {
	if len(ch) == 0 {
		return 0
	}
	return simdops.For[F]().Sum(ch)
}

// ChannelRMS returns the root-mean-square level of ch, or 0 for an empty
// channel.
func ChannelRMS[F Float](ch []F) F {
	if len(ch) == 0 {
		return 0
	}
	sumSq := simdops.For[F]().DotProductUnsafe(ch, ch)
	return F(math.Sqrt(float64(sumSq) / float64(len(ch))))
}

// ChannelPeak returns the largest absolute sample value in ch.
func ChannelPeak[F Float](ch []F) F {
	var peak F
	for _, v := range ch {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// InterleaveStereo interleaves two planar channels into dst:
// dst[0]=left[0], dst[1]=right[0], dst[2]=left[1], ...
// left and right must have equal length and dst must hold 2*len(left)
// samples.
func InterleaveStereo[F Float](dst, left, right []F) error {
	if len(left) != len(right) {
		return fmt.Errorf("%w: left %d frames, right %d", ErrStorageTooSmall, len(left), len(right))
	}
	if len(dst) < 2*len(left) {
		return fmt.Errorf("%w: need %d samples, got %d", ErrStorageTooSmall, 2*len(left), len(dst))
	}
	if len(left) == 0 {
		return nil
	}
	simdops.For[F]().Interleave2(dst, left, right)
	return nil
}

// DeinterleaveStereo splits interleaved stereo src into two planar
// channels. left and right must each hold len(src)/2 samples; an odd
// trailing sample in src is ignored.
func DeinterleaveStereo[F Float](left, right, src []F) error {
	n := len(src) / 2
	if len(left) < n || len(right) < n {
		return fmt.Errorf("%w: need %d frames per channel, got %d and %d",
			ErrStorageTooSmall, n, len(left), len(right))
	}
	simdops.Deinterleave2(left, right, src)
	return nil
}
