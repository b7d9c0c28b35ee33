package alloc

// setPrevFlags rewrites just the prev_alloc/prev_small bits of bp's
// header (and footer, if bp is currently free and large enough to have
// one), leaving bp's own size and alloc bit untouched. Every update to a
// block's prev_alloc/prev_small goes through here so a merge, split, or
// heap extension can never leave the header and footer out of sync with
// each other or with the block they describe.
func (a *Allocator) setPrevFlags(data []byte, bp Ref, prevAlloc, prevSmall bool) {
	off := headerOff(bp)
	w := getWord(data, off)
	size, alloc := sizeOf(w), isAlloc(w)
	nw := pack(size, alloc, prevAlloc, prevSmall)
	putWord(data, off, nw)
	if !alloc && size > MinSize {
		putWord(data, footerOff(bp, size), nw)
	}
}

// coalesce merges bp with whichever physically adjacent neighbors are
// free, given that bp has already been marked free (header/footer
// written) and already inserted into the Free Index. It returns the
// payload pointer and size of the resulting block, which is left in the
// Free Index exactly once regardless of how many neighbors were
// absorbed.
func (a *Allocator) coalesce(data []byte, bp Ref) (Ref, int32) {
	size := sizeAt(data, bp)
	prevAlloc := prevAllocOf(headerAt(data, bp))
	nxt := bp + Ref(size)
	nextAlloc := allocAt(data, nxt)

	switch {
	case prevAlloc && nextAlloc:
		a.setPrevFlags(data, nxt, false, size == MinSize)
		return bp, size

	case prevAlloc && !nextAlloc:
		nSize := sizeAt(data, nxt)
		a.removeFree(data, bp, size)
		a.removeFree(data, nxt, nSize)
		newSize := size + nSize
		a.rewriteMerged(data, bp, newSize)
		a.insertFree(data, bp, newSize)
		a.setPrevFlags(data, bp+Ref(newSize), false, newSize == MinSize)
		a.stats.CoalesceForward++
		return bp, newSize

	case !prevAlloc && nextAlloc:
		p := prev(data, bp)
		pSize := sizeAt(data, p)
		a.removeFree(data, bp, size)
		a.removeFree(data, p, pSize)
		newSize := pSize + size
		a.rewriteMerged(data, p, newSize)
		a.insertFree(data, p, newSize)
		a.setPrevFlags(data, p+Ref(newSize), false, newSize == MinSize)
		a.stats.CoalesceBackward++
		return p, newSize

	default:
		p := prev(data, bp)
		pSize := sizeAt(data, p)
		nSize := sizeAt(data, nxt)
		a.removeFree(data, bp, size)
		a.removeFree(data, p, pSize)
		a.removeFree(data, nxt, nSize)
		newSize := pSize + size + nSize
		a.rewriteMerged(data, p, newSize)
		a.insertFree(data, p, newSize)
		a.setPrevFlags(data, p+Ref(newSize), false, newSize == MinSize)
		a.stats.CoalesceForward++
		a.stats.CoalesceBackward++
		return p, newSize
	}
}

// rewriteMerged writes start's header (and footer, if large enough) at
// the new merged size, preserving start's existing prev_alloc/prev_small
// — those bits describe start's own physical predecessor, which a merge
// with its successor(s) never changes.
func (a *Allocator) rewriteMerged(data []byte, start Ref, newSize int32) {
	h := headerAt(data, start)
	pa, ps := prevAllocOf(h), prevSmallOf(h)
	writeHeader(data, start, newSize, false, pa, ps)
	if newSize > MinSize {
		writeFooter(data, start, newSize, false, pa, ps)
	}
}
