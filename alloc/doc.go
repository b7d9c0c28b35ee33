// Package alloc implements a general-purpose dynamic storage allocator over
// a single contiguous, brk-extensible heap supplied by the heap package.
//
// The allocator tracks free blocks with a hybrid Free Index: a fixed array
// of segregated size-class bins for small blocks (one doubly-linked list
// per 8-byte size class, except the minimum class which is singly linked),
// plus a size-keyed binary search tree for everything above the
// small-class threshold. Each tree node doubles as the head of a
// doubly-linked list of free blocks sharing that exact size, so duplicate
// sizes never produce duplicate tree nodes.
//
// Every block carries a 4-byte boundary-tag header immediately before its
// payload pointer. Free blocks additionally carry a footer (except at the
// minimum block size, which is too small to hold one) so that the block
// preceding a free block can be located in O(1) without walking from the
// heap start. Allocated blocks carry no footer: the next block's
// prev_alloc header bit tells any would-be predecessor-walk not to look
// back, and prev_small handles the one case (a minimum-size predecessor)
// where the predecessor has no footer to elide.
//
// The zero value of Allocator is not usable; construct one with New and
// call Init before issuing Allocate/Free/Resize/Zalloc calls. Allocator is
// single-threaded and holds no locks — concurrent use requires an external
// wrapper, same as the heap it sits on.
//
// Typical use:
//
//	arena, _ := heap.New()
//	a, _ := alloc.New(arena, alloc.DefaultConfig)
//	if err := a.Init(); err != nil { ... }
//	p, payload, err := a.Allocate(128)
//	...
//	a.Free(p)
package alloc
