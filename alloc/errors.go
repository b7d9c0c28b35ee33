package alloc

import "errors"

var (
	// ErrNoSpace is returned when allocate/extend_heap cannot obtain a
	// large enough block even after growing the heap.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrBadPointer describes a caller-supplied pointer that is not a live
	// block in this heap. Free and Resize ignore such pointers instead of
	// returning it.
	ErrBadPointer = errors.New("alloc: pointer is not a live block in this heap")

	// ErrTooLarge is returned when a requested size exceeds what this
	// allocator is willing to track (see Config.MaxAlloc).
	ErrTooLarge = errors.New("alloc: requested size exceeds maximum allocation")

	// ErrInvariant is returned by CheckHeap when a structural invariant of
	// the block layout or Free Index is violated. It indicates heap
	// corruption, not a normal operating condition.
	ErrInvariant = errors.New("alloc: heap invariant violation")
)
