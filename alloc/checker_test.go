package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckHeap_PassesOnFreshHeap(t *testing.T) {
	a := newTestAllocator(t, DefaultConfig)
	require.NoError(t, a.CheckHeap(false))
}

func TestCheckHeap_PassesAfterAllocAndFreeTraffic(t *testing.T) {
	a := newTestAllocator(t, DefaultConfig)
	var refs []Ref
	for _, sz := range []int32{16, 32, 64, 256, 1024} {
		p, _, err := a.Allocate(sz)
		require.NoError(t, err)
		refs = append(refs, p)
	}
	a.Free(refs[1])
	a.Free(refs[3])
	require.NoError(t, a.CheckHeap(false))
}

func TestCheckHeap_DetectsStalePrevAlloc(t *testing.T) {
	a := newTestAllocator(t, DefaultConfig)
	p1, _, err := a.Allocate(32)
	require.NoError(t, err)
	_, _, err = a.Allocate(32)
	require.NoError(t, err)

	data := a.h.Bytes()
	setPrevAllocAt(data, p1, false) // corrupt: p1's predecessor (the prologue) is actually allocated

	err = a.CheckHeap(false)
	require.ErrorIs(t, err, ErrInvariant)
}

func TestCheckHeap_DetectsAdjacentFreeBlocks(t *testing.T) {
	a := newTestAllocator(t, DefaultConfig)
	p1, _, err := a.Allocate(32)
	require.NoError(t, err)
	p2, _, err := a.Allocate(32)
	require.NoError(t, err)
	_, _, err = a.Allocate(32)
	require.NoError(t, err)

	data := a.h.Bytes()
	// Mark both free directly, bypassing Free's coalescer, to simulate a
	// corrupted heap with two untied adjacent free blocks.
	size1 := sizeAt(data, p1)
	size2 := sizeAt(data, p2)
	ps1 := prevSmallOf(headerAt(data, p1))
	writeHeader(data, p1, size1, false, true, ps1)
	writeFooter(data, p1, size1, false, true, ps1)
	writeHeader(data, p2, size2, false, false, size1 == MinSize)
	writeFooter(data, p2, size2, false, false, size1 == MinSize)

	err = a.CheckHeap(false)
	require.ErrorIs(t, err, ErrInvariant)
}

func TestCheckHeap_DetectsHeaderFooterMismatch(t *testing.T) {
	a := newTestAllocator(t, DefaultConfig)
	p1, _, err := a.Allocate(64)
	require.NoError(t, err)
	a.Free(p1)

	data := a.h.Bytes()
	size := sizeAt(data, p1)
	putWord(data, footerOff(p1, size), pack(size+8, false, true, false)) // corrupt the footer

	err = a.CheckHeap(false)
	require.ErrorIs(t, err, ErrInvariant)
}

func TestCheckHeap_DetectsFreeIndexMismatch(t *testing.T) {
	a := newTestAllocator(t, DefaultConfig)
	p1, _, err := a.Allocate(64)
	require.NoError(t, err)
	a.Free(p1)

	data := a.h.Bytes()
	size := sizeAt(data, p1)
	a.removeFree(data, p1, size) // desync: heap walk still sees p1 as free, index no longer does

	err = a.CheckHeap(false)
	require.ErrorIs(t, err, ErrInvariant)
}
