package alloc

// The bins array lives at the very start of the heap: K contiguous 4-byte
// slots, one per size class plus one for the BST root, each holding a Ref
// to that bin's head (NullRef if empty). binOff indexes into it directly;
// the array's own base is always heap offset 0.
func binOff(idx int32) int32 { return idx * 4 }

func getBin(data []byte, idx int32) Ref    { return getRef(data, binOff(idx)) }
func setBin(data []byte, idx int32, r Ref) { putRef(data, binOff(idx), r) }

// Free-block intra-link accessors, per the persisted layout: successor at
// offset 0, predecessor at offset 4 (only meaningful for blocks >=
// MinSize+8, i.e. every class above the minimum one), tree links beyond
// that for BST nodes.
func succOff(bp Ref) int32 { return int32(bp) }
func predOff(bp Ref) int32 { return int32(bp) + 4 }

func getSucc(data []byte, bp Ref) Ref    { return getRef(data, succOff(bp)) }
func setSucc(data []byte, bp Ref, r Ref) { putRef(data, succOff(bp), r) }
func getPred(data []byte, bp Ref) Ref    { return getRef(data, predOff(bp)) }
func setPred(data []byte, bp Ref, r Ref) { putRef(data, predOff(bp), r) }

// classOf returns the bin index for a free block of the given size: one
// of the K-1 discrete size classes if size <= Threshold, else the final
// bin holding the BST root.
func (a *Allocator) classOf(size int32) int32 {
	if size <= a.cfg.Threshold {
		return (size - MinSize) / alignSize
	}
	return a.numBins - 1
}

// bstBin is the index of the bin holding the BST root.
func (a *Allocator) bstBin() int32 { return a.numBins - 1 }

// insertClass prepends bp to the head of size class idx. idx must not be
// the BST bin. Class 0 (MinSize) is singly linked — it has no
// predecessor field to fix up; every other class is doubly linked.
func (a *Allocator) insertClass(data []byte, idx int32, bp Ref) {
	old := getBin(data, idx)
	setSucc(data, bp, old)
	if idx > 0 {
		setPred(data, bp, NullRef)
		if old.valid() {
			setPred(data, old, bp)
		}
	}
	setBin(data, idx, bp)
}

// removeClass splices bp out of size class idx. For idx == 0 this walks
// the singly-linked list to find bp's predecessor; every other class
// removes in O(1) via the predecessor field.
func (a *Allocator) removeClass(data []byte, idx int32, bp Ref) {
	if idx == 0 {
		a.removeMinClass(data, bp)
		return
	}
	p := getPred(data, bp)
	s := getSucc(data, bp)
	if p.valid() {
		setSucc(data, p, s)
	} else {
		setBin(data, idx, s)
	}
	if s.valid() {
		setPred(data, s, p)
	}
}

// removeMinClass removes bp from the singly-linked MinSize class by
// walking from the head. bp is assumed to be present in the list.
func (a *Allocator) removeMinClass(data []byte, bp Ref) {
	head := getBin(data, 0)
	if head == bp {
		setBin(data, 0, getSucc(data, bp))
		return
	}
	cur := head
	for cur.valid() {
		s := getSucc(data, cur)
		if s == bp {
			setSucc(data, cur, getSucc(data, bp))
			return
		}
		cur = s
	}
}
