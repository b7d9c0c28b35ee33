// Package heap provides a single contiguous, brk-extensible byte region for
// the allocator in the alloc package to manage.
//
// An Arena exposes the classic three primitives a malloc implementation
// expects from its backing store: Low and High report the current heap
// bounds, and Sbrk grows the heap upward by a whole number of bytes,
// returning the old break. Failure to grow returns ErrOutOfMemory rather
// than a sentinel address — the allocator checks the error, not a magic
// value.
//
// On linux and darwin, Arena reserves a large anonymous mapping up front
// with PROT_NONE and commits pages with mprotect as Sbrk advances, so
// growth never needs to relocate (and invalidate) outstanding block
// offsets. Other platforms fall back to plain slice growth.
package heap
