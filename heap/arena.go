package heap

// DefaultReserve is the virtual address space reserved up front for an
// Arena created with New. It bounds the largest heap this package will
// ever grow to; it does not cost real memory until Sbrk commits pages
// into it (on platforms that reserve via mmap).
const DefaultReserve = 1 << 30 // 1 GiB

// Arena is a single contiguous, brk-extensible byte region. It never
// shrinks and never relocates already-committed bytes, so offsets handed
// out by the allocator stay valid for the arena's lifetime.
type Arena struct {
	committed int32
	reserve   int32
	closed    bool

	impl arenaImpl
}

// arenaImpl is the platform-specific half of Arena: how bytes actually get
// committed and exposed as a slice. arena_unix.go and arena_other.go each
// provide one.
type arenaImpl interface {
	bytes() []byte
	grow(newCommitted int32) error
	close() error
}

// New creates an Arena reserving up to DefaultReserve bytes of address
// space. The arena starts empty; call Sbrk to grow it.
func New() (*Arena, error) {
	return NewSized(DefaultReserve)
}

// NewSized creates an Arena reserving up to reserve bytes of address space.
func NewSized(reserve int32) (*Arena, error) {
	impl, err := newArenaImpl(reserve)
	if err != nil {
		return nil, err
	}
	return &Arena{reserve: reserve, impl: impl}, nil
}

// Low reports the heap's lowest valid offset. It is always 0 — offsets
// are relative to the arena's own base, not to the process address space.
func (a *Arena) Low() int32 { return 0 }

// High reports the current heap break: the offset one past the last
// committed byte.
func (a *Arena) High() int32 { return a.committed }

// Sbrk grows the heap by n bytes (n must be >= 0), zero-filling the new
// region, and returns the offset of the old break — the start of the
// freshly committed bytes. It does not move or invalidate any
// previously-returned offset.
func (a *Arena) Sbrk(n int32) (int32, error) {
	if a.closed {
		return 0, ErrClosed
	}
	if n < 0 {
		return 0, ErrNegativeGrow
	}
	old := a.committed
	if n == 0 {
		return old, nil
	}
	next := old + n
	if next > a.reserve || next < old {
		return 0, ErrOutOfMemory
	}
	if err := a.impl.grow(next); err != nil {
		return 0, err
	}
	a.committed = next
	return old, nil
}

// Bytes returns the committed region as a slice. The slice is only valid
// until the next Sbrk call (growth may reallocate the backing array on the
// non-unix fallback) or Close.
func (a *Arena) Bytes() []byte {
	return a.impl.bytes()[:a.committed]
}

// Close releases any resources backing the arena (an mmap reservation on
// platforms that use one). The arena must not be used afterward.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.impl.close()
}
