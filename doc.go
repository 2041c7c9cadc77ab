// Package channelbuffer provides memory-efficient multi-channel sample
// buffers for real-time audio processing.
//
// A channel buffer stores every channel of a block of audio in one
// contiguous, channel-major allocation: all frames of channel 0, then all
// frames of channel 1, and so on. Compared to a slice of independently
// allocated per-channel slices this improves cache locality and, more
// importantly, makes allocation behavior predictable: once a buffer is
// constructed, obtaining channel views and reading or writing samples never
// allocates, so the types are safe to use inside an audio callback.
//
// # Buffer variants
//
//   - [FixedBuffer]: a fixed number of channels decided at construction.
//     Storage may be owned ([NewFixed]) or borrowed from the caller
//     ([WrapFixed]), making the type usable in hosts that forbid allocation.
//   - [VarBuffer]: a runtime channel count up to [MaxChannels]. Channel
//     metadata lives inline in the struct, so channels can be added and
//     removed without allocating.
//   - [OwnedBuffer]: a heap-owned buffer whose channel and frame counts can
//     be changed after construction with [OwnedBuffer.Resize].
//   - [InstancePool]: many buffer instances (for example one per synthesizer
//     voice) packed into a single arena allocation, acquired and released
//     with O(1) free-list operations.
//
// # Quick start
//
// Construct a stereo buffer with 512 frames per channel and process it:
//
//	buf, err := channelbuffer.NewFixed[float32](2, 512)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	left, _ := buf.Channel(0)
//	right, _ := buf.Channel(1)
//	for i := range left {
//	    left[i] = osc.Next()
//	    right[i] = left[i]
//	}
//
// Wrap storage provided by a host instead of allocating:
//
//	block := host.AudioBlock() // []float32 of length channels*frames
//	buf, err := channelbuffer.WrapFixed(block, 2)
//
// Pool per-voice buffers behind one allocation:
//
//	pool, err := channelbuffer.NewInstancePool[float32](channelbuffer.PoolConfig{
//	    Instances: 16,
//	    Channels:  2,
//	    Frames:    512,
//	})
//	voice, err := pool.Acquire()
//	defer pool.Release(voice)
//
// # Checked and unchecked access
//
// Channel accessors come in two flavors. The checked form returns a
// comma-ok result and never panics:
//
//	ch, ok := buf.Channel(i)
//
// The Unchecked form skips the bounds check and derives the view with raw
// pointer arithmetic. Its precondition (index < Channels()) is the caller's
// responsibility; violating it is undefined behavior. Use it only in hot
// loops where the index is already proven valid.
//
// # Concurrency
//
// Buffers perform no internal locking. A buffer and the views derived from
// it belong to exactly one logical owner at a time, matching the
// single-writer model of an audio callback. Handing a buffer from a control
// thread to an audio thread is the caller's responsibility.
package channelbuffer
