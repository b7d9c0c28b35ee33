package alloc

// headerOff returns the absolute offset of bp's header: 4 bytes before
// the payload pointer.
func headerOff(bp Ref) int32 { return int32(bp) - hdrSize }

// footerOff returns the absolute offset of bp's footer, given its size.
// Only meaningful for free blocks larger than MinSize.
func footerOff(bp Ref, size int32) int32 { return int32(bp) + size - 2*hdrSize }

// headerAt reads the header word of the block at bp.
func headerAt(data []byte, bp Ref) uint32 { return getWord(data, headerOff(bp)) }

// sizeAt reads the size field of the block at bp.
func sizeAt(data []byte, bp Ref) int32 { return sizeOf(headerAt(data, bp)) }

// allocAt reports whether the block at bp is allocated.
func allocAt(data []byte, bp Ref) bool { return isAlloc(headerAt(data, bp)) }

// next returns the payload pointer of the block physically following bp,
// whose header sits exactly size(bp) bytes after bp's own header.
func next(data []byte, bp Ref) Ref {
	return bp + Ref(sizeAt(data, bp))
}

// prev returns the payload pointer of the block physically preceding bp.
//
// If bp's prev_small bit is set, the predecessor is known to be exactly
// MinSize bytes without consulting its footer at all. Otherwise the
// predecessor is free (prev_alloc would be set if it were allocated — an
// allocated, non-minimum predecessor has no footer to read, but the
// navigator is only ever asked for prev of a free block's neighbor in
// that situation, which the coalescer guards against) or larger, and its
// footer sits immediately before bp's header.
func prev(data []byte, bp Ref) Ref {
	h := headerAt(data, bp)
	if prevSmallOf(h) {
		return bp - MinSize
	}
	footer := getWord(data, headerOff(bp)-hdrSize)
	return bp - Ref(sizeOf(footer))
}

// writeHeader writes a block's header word at bp.
func writeHeader(data []byte, bp Ref, size int32, alloc, prevAlloc, prevSmall bool) {
	putWord(data, headerOff(bp), pack(size, alloc, prevAlloc, prevSmall))
}

// writeFooter writes a block's footer word, mirroring its header. Callers
// must only do this for free blocks with size > MinSize.
func writeFooter(data []byte, bp Ref, size int32, alloc, prevAlloc, prevSmall bool) {
	putWord(data, footerOff(bp, size), pack(size, alloc, prevAlloc, prevSmall))
}

// setPrevAllocAt flips just the prev_alloc bit of bp's header in place,
// leaving size/alloc/prev_small untouched and without mirroring the
// change into a footer. The allocator's own prev-bit updates go through
// setPrevFlags; only tests call this, to corrupt a header on purpose.
func setPrevAllocAt(data []byte, bp Ref, v bool) {
	off := headerOff(bp)
	putWord(data, off, setPrevAlloc(getWord(data, off), v))
}
