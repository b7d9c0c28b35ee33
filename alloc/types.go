package alloc

// Ref is a payload pointer: the offset, relative to the heap's own base,
// of the first user-visible byte of a block. All intra-heap links are
// expressed as Ref rather than a native pointer, since the heap is a
// plain byte arena the allocator does not own exclusive addresses into.
type Ref int32

// NullRef is the sentinel for "no block" — offset 0 always lies inside
// the bins array, never inside a real block, so it is safe to reuse as a
// null marker the way a 0 offset does in spec.md's persisted layout.
const NullRef Ref = 0

func (r Ref) valid() bool { return r != NullRef }
