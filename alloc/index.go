package alloc

// insertFree adds a free block to whichever part of the Free Index its
// size belongs to: a size-class bin, or the BST.
func (a *Allocator) insertFree(data []byte, bp Ref, size int32) {
	idx := a.classOf(size)
	if idx == a.bstBin() {
		a.bstInsert(data, bp, size)
	} else {
		a.insertClass(data, idx, bp)
	}
	a.stats.IndexInserts++
}

// removeFree removes a free block from the Free Index, given its
// (still-current) size.
func (a *Allocator) removeFree(data []byte, bp Ref, size int32) {
	idx := a.classOf(size)
	if idx == a.bstBin() {
		a.bstRemove(data, bp)
	} else {
		a.removeClass(data, idx, bp)
	}
	a.stats.IndexRemoves++
}

// findFit returns a free block of size >= size, or NullRef. Small
// classes are scanned upward from the exact class the request would
// occupy — since each holds exactly one size, the first non-empty class
// at or above that index is automatically large enough. Only once every
// small class has been exhausted does the search fall through to the
// BST.
func (a *Allocator) findFit(data []byte, size int32) Ref {
	idx := a.classOf(size)
	last := a.bstBin()
	for i := idx; i < last; i++ {
		if h := getBin(data, i); h.valid() {
			a.stats.FitScans++
			return h
		}
	}
	a.stats.FitScans++
	return a.bstBestFit(data, size)
}
