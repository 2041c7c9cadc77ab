package channelbuffer

import "fmt"

// PoolConfig configures an [InstancePool].
type PoolConfig struct {
	// Instances is the number of buffer instances backed by the arena.
	Instances int

	// Channels is the channel count of every instance, in [1, MaxChannels].
	Channels int

	// Frames is the per-channel frame count of every instance.
	Frames int

	// Growable allows Acquire to enlarge the arena once every instance is
	// in use. Growth reallocates the arena: handles stay valid because they
	// re-derive their views from the pool, but any raw channel slice
	// obtained before the growth keeps pointing at the old arena and must
	// be re-derived. A non-growable pool fails with ErrPoolExhausted
	// instead.
	Growable bool
}

// Validate checks the pool configuration.
func (c *PoolConfig) Validate() error {
	if c.Instances < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInstanceCount, c.Instances)
	}
	if c.Channels < 1 || c.Channels > MaxChannels {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidChannelCount, c.Channels, MaxChannels)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrameCount, c.Frames)
	}
	instLen := c.Channels * c.Frames
	if instLen > 0 && c.Instances > maxBufferLen/instLen {
		return fmt.Errorf("%w: %d instances x %d channels x %d frames",
			ErrBufferTooLarge, c.Instances, c.Channels, c.Frames)
	}
	return nil
}

// InstancePool packs many identically shaped buffer instances into a single
// arena allocation, amortizing allocation cost across, say, the voices of a
// polyphonic synthesizer. Instances are acquired and released through an
// O(1) free list; neither operation allocates.
//
// A slot is either free or acquired. Release does not zero the slot's
// samples, since zeroing on every release would make Release O(n); callers
// that need silence must call [Instance.Clear] explicitly.
type InstancePool[T Sample] struct {
	data     []T
	cfg      PoolConfig
	instLen  int
	free     []int // LIFO free list of slot indices
	acquired []bool
	slotGen  []uint32 // bumped on release to invalidate stale handles
}

// Instance is a handle to one acquired pool slot. It exposes the same
// channel accessor contract as [OwnedBuffer]. Views are derived from the
// pool on every call, so a handle survives arena growth; a handle that has
// been released (or whose slot was since reacquired) fails every checked
// operation.
type Instance[T Sample] struct {
	pool  *InstancePool[T]
	index int
	gen   uint32
}

// NewInstancePool creates a pool per cfg. The arena is a single
// zero-initialized allocation of Instances*Channels*Frames samples.
func NewInstancePool[T Sample](cfg PoolConfig) (*InstancePool[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	instLen := cfg.Channels * cfg.Frames
	p := &InstancePool[T]{
		data:     make([]T, cfg.Instances*instLen),
		cfg:      cfg,
		instLen:  instLen,
		free:     make([]int, cfg.Instances),
		acquired: make([]bool, cfg.Instances),
		slotGen:  make([]uint32, cfg.Instances),
	}
	// Fill the free list so that slot 0 is popped first.
	for i := range cfg.Instances {
		p.free[i] = cfg.Instances - 1 - i
	}
	return p, nil
}

// Instances returns the current number of slots in the pool.
func (p *InstancePool[T]) Instances() int { return p.cfg.Instances }

// Channels returns the channel count of every instance.
func (p *InstancePool[T]) Channels() int { return p.cfg.Channels }

// Frames returns the per-channel frame count of every instance.
func (p *InstancePool[T]) Frames() int { return p.cfg.Frames }

// Active returns the number of currently acquired slots.
func (p *InstancePool[T]) Active() int { return p.cfg.Instances - len(p.free) }

// Acquire returns a handle to a free slot. On a non-growable pool with no
// free slot it fails with [ErrPoolExhausted]; a growable pool instead
// doubles the arena (reallocating it; see [PoolConfig.Growable] for the
// view-invalidation hazard) and acquires one of the new slots. The slot's
// samples are whatever the previous holder left behind; call
// [Instance.Clear] if silence is required.
func (p *InstancePool[T]) Acquire() (Instance[T], error) {
	if len(p.free) == 0 {
		if !p.cfg.Growable {
			return Instance[T]{}, fmt.Errorf("%w: all %d instances in use", ErrPoolExhausted, p.cfg.Instances)
		}
		if err := p.grow(); err != nil {
			return Instance[T]{}, err
		}
	}

	index := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.acquired[index] = true
	return Instance[T]{pool: p, index: index, gen: p.slotGen[index]}, nil
}

// Release returns the handle's slot to the free list without zeroing it.
// Fails with [ErrStaleInstance] if the handle was already released.
func (p *InstancePool[T]) Release(inst Instance[T]) error {
	if inst.pool != p || !p.acquired[inst.index] || p.slotGen[inst.index] != inst.gen {
		return fmt.Errorf("%w: release", ErrStaleInstance)
	}
	p.acquired[inst.index] = false
	p.slotGen[inst.index]++
	p.free = append(p.free, inst.index)
	return nil
}

// grow doubles the number of slots, reallocating the arena and copying the
// contents of existing slots. Not real-time-safe.
func (p *InstancePool[T]) grow() error {
	newInstances := p.cfg.Instances * 2
	if newInstances == 0 {
		newInstances = 1
	}
	if p.instLen > 0 && newInstances > maxBufferLen/p.instLen {
		return fmt.Errorf("%w: cannot grow past %d instances", ErrBufferTooLarge, p.cfg.Instances)
	}

	data := make([]T, newInstances*p.instLen)
	copy(data, p.data)
	p.data = data

	for i := p.cfg.Instances; i < newInstances; i++ {
		p.free = append(p.free, i)
	}
	p.acquired = append(p.acquired, make([]bool, newInstances-p.cfg.Instances)...)
	p.slotGen = append(p.slotGen, make([]uint32, newInstances-p.cfg.Instances)...)
	p.cfg.Instances = newInstances
	return nil
}

// valid reports whether the handle still refers to an acquired slot.
func (h Instance[T]) valid() bool {
	return h.pool != nil && h.pool.acquired[h.index] && h.pool.slotGen[h.index] == h.gen
}

// Index returns the handle's slot index within the pool.
func (h Instance[T]) Index() int { return h.index }

// Channels returns the channel count of the instance, or 0 for the zero
// handle.
func (h Instance[T]) Channels() int {
	if h.pool == nil {
		return 0
	}
	return h.pool.cfg.Channels
}

// Frames returns the per-channel frame count of the instance, or 0 for the
// zero handle.
func (h Instance[T]) Frames() int {
	if h.pool == nil {
		return 0
	}
	return h.pool.cfg.Frames
}

// region returns the instance's slice of the arena.
func (h Instance[T]) region() []T {
	off := h.index * h.pool.instLen
	return h.pool.data[off : off+h.pool.instLen : off+h.pool.instLen]
}

// Channel returns the view of the channel at index, exactly Frames()
// elements long. ok is false if index is out of bounds or the handle is
// stale.
func (h Instance[T]) Channel(index int) (ch []T, ok bool) {
	if !h.valid() || index < 0 || index >= h.pool.cfg.Channels {
		return nil, false
	}
	return channelView(h.region(), h.pool.cfg.Frames, index), true
}

// ChannelUnchecked returns the view of the channel at index without
// validating the handle or the index.
//
// The caller must uphold that the handle is live and 0 <= index <
// Channels(). Violating either is undefined behavior.
func (h Instance[T]) ChannelUnchecked(index int) []T {
	off := h.index * h.pool.instLen
	return channelViewUnchecked(h.pool.data[off:], h.pool.cfg.Frames, index)
}

// AppendSlices appends the views of all channels to dst and returns the
// extended slice. A stale handle appends nothing. Allocation-free when dst
// has capacity for Channels() more elements.
func (h Instance[T]) AppendSlices(dst [][]T) [][]T {
	if !h.valid() {
		return dst
	}
	return appendChannelViews(dst, h.region(), h.pool.cfg.Channels, h.pool.cfg.Frames)
}

// Slices returns the views of all channels, or nil for a stale handle. The
// returned slice-of-slices is freshly allocated.
func (h Instance[T]) Slices() [][]T {
	if !h.valid() {
		return nil
	}
	return h.AppendSlices(make([][]T, 0, h.pool.cfg.Channels))
}

// Raw returns the instance's whole channel-major region, or nil for a stale
// handle.
func (h Instance[T]) Raw() []T {
	if !h.valid() {
		return nil
	}
	return h.region()
}

// Clear zeroes every sample in the instance. Stale handles are ignored.
func (h Instance[T]) Clear() {
	if !h.valid() {
		return
	}
	clear(h.region())
}
