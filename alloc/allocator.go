package alloc

import (
	"fmt"

	"github.com/joshuapare/segalloc/heap"
)

// Allocator is the malloc/free/realloc/calloc façade over a single heap.
// Its zero value is not usable; construct one with New and call Init
// before issuing any other call.
type Allocator struct {
	h   *heap.Arena
	cfg Config

	numBins        int32
	firstHeaderOff int32 // header offset of the first real block; fixed after Init

	stats Stats
}

// New constructs an Allocator over arena using cfg. Call Init before use.
func New(arena *heap.Arena, cfg Config) (*Allocator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Allocator{h: arena, cfg: cfg, numBins: cfg.numBins()}, nil
}

// alignUp rounds n up to the next multiple of align.
func alignUp(n, align int32) int32 {
	return (n + align - 1) &^ (align - 1)
}

// Init lays out the bins array, prologue, and epilogue at the base of
// the heap, then requests one chunk of real block space. It must be
// called exactly once, before any Allocate/Free/Resize/Zalloc call.
func (a *Allocator) Init() error {
	binsBytes := a.numBins * 4

	// Pad so the prologue header lands at an offset congruent to 4 mod 8
	// — the first real block's payload pointer, 12 bytes further on, then
	// falls on an 8-byte boundary.
	rem := binsBytes % alignSize
	pad := (hdrSize - rem + alignSize) % alignSize
	headerRegion := pad + 3*hdrSize // prologue header + prologue footer + epilogue header

	if _, err := a.h.Sbrk(binsBytes + headerRegion); err != nil {
		return fmt.Errorf("alloc: init: %w", err)
	}
	data := a.h.Bytes()

	prologueHeaderOff := binsBytes + pad
	prologueFooterOff := prologueHeaderOff + hdrSize
	epilogueHeaderOff := prologueFooterOff + hdrSize

	sentinel := pack(MinSize, true, true, false)
	putWord(data, prologueHeaderOff, sentinel)
	putWord(data, prologueFooterOff, sentinel)
	putWord(data, epilogueHeaderOff, pack(0, true, true, true))

	a.firstHeaderOff = epilogueHeaderOff

	if _, err := a.extendHeap(a.cfg.ChunkSize); err != nil {
		return fmt.Errorf("alloc: init: %w", err)
	}
	debugLogf("Init: bins=%d pad=%d firstHeaderOff=%d", a.numBins, pad, a.firstHeaderOff)
	return nil
}

// extendHeap grows the heap by at least need bytes (rounded up to an
// 8-byte multiple, at least MinSize), turning the new space into one
// free block that replaces the old epilogue, coalesces with whatever the
// old epilogue's neighbor turns out to be, and lands in the Free Index.
func (a *Allocator) extendHeap(need int32) (Ref, error) {
	size := alignUp(need, alignSize)
	if size < MinSize {
		size = MinSize
	}

	oldHigh := a.h.High()
	if _, err := a.h.Sbrk(size); err != nil {
		return NullRef, err
	}
	data := a.h.Bytes()

	headerOff := oldHigh - hdrSize
	bp := Ref(oldHigh)

	oldEpilogue := getWord(data, headerOff)
	pa, ps := prevAllocOf(oldEpilogue), prevSmallOf(oldEpilogue)

	writeHeader(data, bp, size, false, pa, ps)
	if size > MinSize {
		writeFooter(data, bp, size, false, pa, ps)
	}
	putWord(data, headerOff+size, pack(0, true, false, size == MinSize))

	a.insertFree(data, bp, size)
	merged, mergedSize := a.coalesce(data, bp)
	a.stats.GrowCalls++
	debugLogf("extendHeap(%d): grew by %d, merged block at %d size %d", need, size, merged, mergedSize)
	return merged, nil
}

// Allocate reserves a block able to hold n payload bytes and returns its
// payload pointer and a byte slice view of its contents. Allocate(0)
// returns the null sentinel and performs no heap mutation.
func (a *Allocator) Allocate(n int32) (Ref, []byte, error) {
	if n == 0 {
		return NullRef, nil, nil
	}
	if n < 0 || n > a.cfg.MaxAlloc {
		return NullRef, nil, fmt.Errorf("%w: requested %d bytes", ErrTooLarge, n)
	}

	need := alignUp(n+hdrSize, alignSize)
	if need < MinSize {
		need = MinSize
	}

	data := a.h.Bytes()
	bp := a.findFit(data, need)
	if !bp.valid() {
		grow := need
		if grow < a.cfg.ChunkSize {
			grow = a.cfg.ChunkSize
		}
		var err error
		bp, err = a.extendHeap(grow)
		if err != nil {
			return NullRef, nil, fmt.Errorf("%w: %v", ErrNoSpace, err)
		}
		data = a.h.Bytes()
	}

	a.place(data, bp, need)
	a.stats.AllocCalls++
	return bp, a.payload(data, bp), nil
}

// Free releases the block at p. A null, out-of-heap, or misaligned
// pointer is silently ignored, per this allocator's invalid-free policy.
func (a *Allocator) Free(p Ref) {
	if p == NullRef {
		return
	}
	data := a.h.Bytes()
	if !a.isLiveBlock(data, p) {
		return
	}

	size := sizeAt(data, p)
	h := headerAt(data, p)
	pa, ps := prevAllocOf(h), prevSmallOf(h)

	writeHeader(data, p, size, false, pa, ps)
	if size > MinSize {
		writeFooter(data, p, size, false, pa, ps)
	}
	a.insertFree(data, p, size)
	a.coalesce(data, p)
	a.stats.FreeCalls++
}

// Resize changes the block at p to hold n payload bytes, growing in
// place when the immediate successor is free and large enough, and
// falling back to allocate+copy+free otherwise. A failed grow leaves p
// untouched. Resize(nil, n) behaves like Allocate(n); Resize(p, 0)
// behaves like Free(p). A p that is not a live block is ignored: Resize
// returns the null sentinel and leaves the heap unchanged.
func (a *Allocator) Resize(p Ref, n int32) (Ref, []byte, error) {
	if n == 0 {
		a.Free(p)
		return NullRef, nil, nil
	}
	if p == NullRef {
		return a.Allocate(n)
	}

	data := a.h.Bytes()
	if !a.isLiveBlock(data, p) {
		return NullRef, nil, nil
	}

	cur := sizeAt(data, p)
	need := alignUp(n+hdrSize, alignSize)
	if need < MinSize {
		need = MinSize
	}
	if need <= cur {
		return p, a.payload(data, p), nil
	}

	nxt := next(data, p)
	if !allocAt(data, nxt) {
		nSize := sizeAt(data, nxt)
		if cur+nSize >= need {
			a.removeFree(data, nxt, nSize)
			a.splitOrConsume(data, p, cur+nSize, need)
			a.stats.ResizeCalls++
			return p, a.payload(data, p), nil
		}
	}

	np, payload, err := a.Allocate(n)
	if err != nil {
		return NullRef, nil, err
	}
	data = a.h.Bytes()
	copy(payload, data[int32(p):int32(p)+cur-hdrSize])
	a.Free(p)
	a.stats.ResizeCalls++
	return np, payload, nil
}

// Zalloc allocates room for nmemb elements of size bytes each and
// zero-fills it. Overflow in nmemb*size is the caller's responsibility,
// matching this allocator's calloc lineage.
func (a *Allocator) Zalloc(nmemb, size int32) (Ref, []byte, error) {
	bp, payload, err := a.Allocate(nmemb * size)
	if err != nil || !bp.valid() {
		return bp, payload, err
	}
	clear(payload)
	return bp, payload, nil
}

// payload returns the usable byte slice for the allocated block at bp:
// its full size minus the 4-byte header it still carries no footer for.
func (a *Allocator) payload(data []byte, bp Ref) []byte {
	size := sizeAt(data, bp)
	return data[int32(bp) : int32(bp)+size-hdrSize]
}

// isLiveBlock reports whether p is an 8-byte-aligned, in-heap, currently
// allocated payload pointer.
func (a *Allocator) isLiveBlock(data []byte, p Ref) bool {
	if !p.valid() || int32(p)%alignSize != 0 {
		return false
	}
	firstPayload := a.firstHeaderOff + hdrSize
	lastValid := a.h.High() - hdrSize // epilogue header offset
	if int32(p) < firstPayload || int32(p) >= lastValid {
		return false
	}
	return isAlloc(headerAt(data, p))
}
