package alloc

// place consumes a free block already known to hold at least need bytes,
// removing it from the Free Index first, then delegating to
// splitOrConsume for the actual header surgery.
func (a *Allocator) place(data []byte, bp Ref, need int32) {
	avail := sizeAt(data, bp)
	a.removeFree(data, bp, avail)
	a.splitOrConsume(data, bp, avail, need)
}

// splitOrConsume writes bp's header as an allocated block of size need,
// out of a region of avail bytes (avail >= need), either splitting off a
// residual free block or consuming the whole thing if the leftover is
// too small to be a block of its own. bp must already be out of the Free
// Index; splitOrConsume never touches it on bp's own behalf, only on the
// residual's.
func (a *Allocator) splitOrConsume(data []byte, bp Ref, avail, need int32) {
	h := headerAt(data, bp)
	pa, ps := prevAllocOf(h), prevSmallOf(h)
	remainder := avail - need

	if remainder >= MinSize {
		writeHeader(data, bp, need, true, pa, ps)

		residual := bp + Ref(need)
		residualPrevSmall := need == MinSize
		writeHeader(data, residual, remainder, false, true, residualPrevSmall)
		if remainder > MinSize {
			writeFooter(data, residual, remainder, false, true, residualPrevSmall)
		}
		a.insertFree(data, residual, remainder)
		a.setPrevFlags(data, residual+Ref(remainder), false, remainder == MinSize)
		a.stats.SplitCount++
		a.stats.PlaceCalls++
		return
	}

	writeHeader(data, bp, avail, true, pa, ps)
	a.setPrevFlags(data, bp+Ref(avail), true, avail == MinSize)
	a.stats.PlaceCalls++
}
