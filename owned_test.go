package channelbuffer

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BillyDM/audio-channel-buffer/internal/testutil"
)

// fillChannels writes a distinct ramp into every channel of an OwnedBuffer.
func fillChannels(t *testing.T, buf *OwnedBuffer[float64]) {
	t.Helper()
	for ch := range buf.Channels() {
		testutil.FillRamp(buf.ChannelUnchecked(ch), float64(ch*1000))
	}
}

// assertRampsPreserved checks that channels [0, channels) still carry their
// ramp over the first frames frames.
func assertRampsPreserved(t *testing.T, buf *OwnedBuffer[float64], channels, frames int) {
	t.Helper()
	for ch := range channels {
		view, ok := buf.Channel(ch)
		require.True(t, ok, "channel %d", ch)
		for i := range frames {
			require.Equal(t, float64(ch*1000+i), view[i], "channel %d frame %d", ch, i)
		}
	}
}

// TestNewOwned verifies construction and shape validation.
func TestNewOwned(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		frames   int
		wantErr  error
	}{
		{"Stereo", 2, 256, nil},
		{"ManyChannels", 64, 16, nil},
		{"ZeroChannels", 0, 16, nil},
		{"ZeroFrames", 2, 0, nil},
		{"NegativeChannels", -1, 16, ErrInvalidChannelCount},
		{"NegativeFrames", 2, -2, ErrInvalidFrameCount},
		{"TooLarge", 1 << 20, 1 << 20, ErrBufferTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewOwned[float64](tt.channels, tt.frames)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.channels, buf.Channels())
			assert.Equal(t, tt.frames, buf.Frames())
			assert.Len(t, buf.Raw(), tt.channels*tt.frames)
			testutil.AssertAllZero(t, buf.Raw())
			testutil.AssertDisjoint(t, buf.Slices())
		})
	}
}

// TestOwnedResizeIdempotence verifies that resizing to the current shape
// leaves all data untouched.
func TestOwnedResizeIdempotence(t *testing.T) {
	buf, err := NewOwned[float64](3, 32)
	require.NoError(t, err)
	fillChannels(t, buf)

	raw := unsafe.SliceData(buf.Raw())
	require.NoError(t, buf.Resize(3, 32))

	assert.Equal(t, raw, unsafe.SliceData(buf.Raw()), "no-op resize must not reallocate")
	assertRampsPreserved(t, buf, 3, 32)
}

// TestOwnedResizeGrowFrames verifies that going from (C, F) to (C, F+k)
// preserves frames [0, F) of every channel and zeroes the new frame slots.
func TestOwnedResizeGrowFrames(t *testing.T) {
	const channels, frames, grown = 4, 64, 96

	buf, err := NewOwned[float64](channels, frames)
	require.NoError(t, err)
	fillChannels(t, buf)

	require.NoError(t, buf.Resize(channels, grown))
	require.Equal(t, grown, buf.Frames())

	assertRampsPreserved(t, buf, channels, frames)
	for ch := range channels {
		view, _ := buf.Channel(ch)
		testutil.AssertAllZero(t, view[frames:])
	}
	testutil.AssertDisjoint(t, buf.Slices())
}

// TestOwnedResizeInPlace verifies that a resize within the existing
// allocation remaps channels without reallocating.
func TestOwnedResizeInPlace(t *testing.T) {
	buf, err := NewOwned[float64](2, 128)
	require.NoError(t, err)
	raw := unsafe.SliceData(buf.Raw())

	// Shrink, refill, grow back: both steps fit the original allocation.
	require.NoError(t, buf.Resize(2, 48))
	fillChannels(t, buf)
	require.NoError(t, buf.Resize(2, 100))

	assert.Equal(t, raw, unsafe.SliceData(buf.Raw()), "resize within capacity must not reallocate")
	assertRampsPreserved(t, buf, 2, 48)
	for ch := range 2 {
		view, _ := buf.Channel(ch)
		testutil.AssertAllZero(t, view[48:])
	}
}

// TestOwnedResizeChannels verifies channel-count changes in both
// directions.
func TestOwnedResizeChannels(t *testing.T) {
	t.Run("GrowZeroFillsNewChannels", func(t *testing.T) {
		buf, err := NewOwned[float64](2, 16)
		require.NoError(t, err)
		fillChannels(t, buf)

		require.NoError(t, buf.Resize(5, 16))
		assertRampsPreserved(t, buf, 2, 16)
		for ch := 2; ch < 5; ch++ {
			view, ok := buf.Channel(ch)
			require.True(t, ok)
			testutil.AssertAllZero(t, view)
		}
	})

	t.Run("ShrinkKeepsLeadingChannels", func(t *testing.T) {
		buf, err := NewOwned[float64](5, 16)
		require.NoError(t, err)
		fillChannels(t, buf)

		require.NoError(t, buf.Resize(2, 16))
		assert.Equal(t, 2, buf.Channels())
		assertRampsPreserved(t, buf, 2, 16)
		_, ok := buf.Channel(2)
		assert.False(t, ok)
	})

	t.Run("BothAxesAtOnce", func(t *testing.T) {
		buf, err := NewOwned[float64](2, 8)
		require.NoError(t, err)
		fillChannels(t, buf)

		require.NoError(t, buf.Resize(3, 12))
		assertRampsPreserved(t, buf, 2, 8)
		for ch := range 2 {
			view, _ := buf.Channel(ch)
			testutil.AssertAllZero(t, view[8:])
		}
		view, ok := buf.Channel(2)
		require.True(t, ok)
		testutil.AssertAllZero(t, view)
	})
}

// TestOwnedResizeReuseAfterShrink verifies that stale samples from a
// previous larger layout never leak back in after shrinking and growing
// again within the same allocation.
func TestOwnedResizeReuseAfterShrink(t *testing.T) {
	buf, err := NewOwned[float64](2, 100)
	require.NoError(t, err)
	fillChannels(t, buf)

	require.NoError(t, buf.Resize(2, 10))
	require.NoError(t, buf.Resize(2, 50))

	assertRampsPreserved(t, buf, 2, 10)
	for ch := range 2 {
		view, _ := buf.Channel(ch)
		testutil.AssertAllZero(t, view[10:], "channel %d", ch)
	}
}

// TestOwnedResizeValidation verifies shape validation on resize.
func TestOwnedResizeValidation(t *testing.T) {
	buf, err := NewOwned[float64](2, 8)
	require.NoError(t, err)

	require.ErrorIs(t, buf.Resize(-1, 8), ErrInvalidChannelCount)
	require.ErrorIs(t, buf.Resize(2, -1), ErrInvalidFrameCount)
	require.ErrorIs(t, buf.Resize(1<<20, 1<<20), ErrBufferTooLarge)

	// Failed resizes must leave the buffer untouched.
	assert.Equal(t, 2, buf.Channels())
	assert.Equal(t, 8, buf.Frames())
}

// TestOwnedClear verifies full and prefix zero-fills.
func TestOwnedClear(t *testing.T) {
	buf, err := NewOwned[float64](3, 8)
	require.NoError(t, err)
	fillChannels(t, buf)

	buf.ClearFrames(4)
	for ch := range buf.Channels() {
		view, _ := buf.Channel(ch)
		testutil.AssertAllZero(t, view[:4])
	}
	// Frames past the prefix survive.
	view, _ := buf.Channel(2)
	assert.Equal(t, float64(2004), view[4])

	buf.Clear()
	testutil.AssertAllZero(t, buf.Raw())
}

// TestOwnedAppendSlicesRange verifies windowed views and their clamping.
func TestOwnedAppendSlicesRange(t *testing.T) {
	buf, err := NewOwned[float64](2, 10)
	require.NoError(t, err)
	fillChannels(t, buf)

	views := buf.AppendSlicesRange(nil, 3, 7)
	require.Len(t, views, 2)
	for ch, v := range views {
		require.Len(t, v, 4)
		assert.Equal(t, float64(ch*1000+3), v[0], "channel %d", ch)
	}

	views = buf.AppendSlicesLen(views[:0], 100) // clamped to Frames()
	require.Len(t, views, 2)
	assert.Len(t, views[0], 10)
}

// TestOwnedRoundTrip verifies the write-then-read property across all
// valid indices.
func TestOwnedRoundTrip(t *testing.T) {
	const channels, frames = 3, 37

	buf, err := NewOwned[int32](channels, frames)
	require.NoError(t, err)

	for ch := range channels {
		view, ok := buf.Channel(ch)
		require.True(t, ok)
		for i := range view {
			view[i] = int32(ch<<16 | i)
		}
	}

	for ch := range channels {
		view, ok := buf.Channel(ch)
		require.True(t, ok)
		require.Len(t, view, frames)
		for i, v := range view {
			require.Equal(t, int32(ch<<16|i), v)
		}
	}
}
