package alloc

// Tree link accessors for BST nodes (free blocks larger than Threshold).
// These sit past the successor/predecessor fields every free block
// already has, sized as full addresses per the persisted layout even
// though a Ref only ever needs 4 bytes here — the extra width is the
// layout's, not a requirement of the value.
func leftOff(bp Ref) int32   { return int32(bp) + 8 }
func rightOff(bp Ref) int32  { return int32(bp) + 16 }
func parentOff(bp Ref) int32 { return int32(bp) + 24 }

func getLeft(data []byte, bp Ref) Ref    { return getAddr(data, leftOff(bp)) }
func setLeft(data []byte, bp Ref, r Ref) { putAddr(data, leftOff(bp), r) }
func getRight(data []byte, bp Ref) Ref   { return getAddr(data, rightOff(bp)) }
func setRight(data []byte, bp Ref, r Ref) { putAddr(data, rightOff(bp), r) }
func getParent(data []byte, bp Ref) Ref  { return getAddr(data, parentOff(bp)) }
func setParent(data []byte, bp Ref, r Ref) { putAddr(data, parentOff(bp), r) }

// clearNodeLinks zeroes every tree and list link of bp. Used defensively
// when a node is displaced from the tree so a stray read never chases a
// stale pointer.
func clearNodeLinks(data []byte, bp Ref) {
	setLeft(data, bp, NullRef)
	setRight(data, bp, NullRef)
	setParent(data, bp, NullRef)
	setPred(data, bp, NullRef)
	setSucc(data, bp, NullRef)
}

// treeMinimum walks left from node until it can't anymore.
func treeMinimum(data []byte, node Ref) Ref {
	for {
		l := getLeft(data, node)
		if !l.valid() {
			return node
		}
		node = l
	}
}

// replaceInParent points parent's child link that used to hold old at
// newChild instead, or updates the BST root bin if parent is the root.
func (a *Allocator) replaceInParent(data []byte, parent, old, newChild Ref) {
	if !parent.valid() {
		setBin(data, a.bstBin(), newChild)
		return
	}
	if getLeft(data, parent) == old {
		setLeft(data, parent, newChild)
	} else {
		setRight(data, parent, newChild)
	}
}

// bstInsert adds bp (size bytes) to the BST bin, descending by size and
// splicing bp in as the new list head when a node of the same size
// already exists.
func (a *Allocator) bstInsert(data []byte, bp Ref, size int32) {
	root := getBin(data, a.bstBin())
	if !root.valid() {
		clearNodeLinks(data, bp)
		setBin(data, a.bstBin(), bp)
		return
	}

	cur := root
	for {
		curSize := sizeAt(data, cur)
		switch {
		case size == curSize:
			l, r, p := getLeft(data, cur), getRight(data, cur), getParent(data, cur)
			setLeft(data, bp, l)
			setRight(data, bp, r)
			setParent(data, bp, p)
			if l.valid() {
				setParent(data, l, bp)
			}
			if r.valid() {
				setParent(data, r, bp)
			}
			a.replaceInParent(data, p, cur, bp)
			setLeft(data, cur, NullRef)
			setRight(data, cur, NullRef)
			setParent(data, cur, NullRef)
			setPred(data, bp, NullRef)
			setSucc(data, bp, cur)
			setPred(data, cur, bp)
			return

		case size < curSize:
			l := getLeft(data, cur)
			if !l.valid() {
				clearNodeLinks(data, bp)
				setLeft(data, cur, bp)
				setParent(data, bp, cur)
				return
			}
			cur = l

		default:
			r := getRight(data, cur)
			if !r.valid() {
				clearNodeLinks(data, bp)
				setRight(data, cur, bp)
				setParent(data, bp, cur)
				return
			}
			cur = r
		}
	}
}

// bstRemove removes bp from the BST bin. bp may be a plain list member,
// the list head being promoted in favor of its successor, or the sole
// node of its size requiring a real BST deletion.
func (a *Allocator) bstRemove(data []byte, bp Ref) {
	if getPred(data, bp).valid() {
		p := getPred(data, bp)
		s := getSucc(data, bp)
		setSucc(data, p, s)
		if s.valid() {
			setPred(data, s, p)
		}
		return
	}

	if s := getSucc(data, bp); s.valid() {
		l, r, p := getLeft(data, bp), getRight(data, bp), getParent(data, bp)
		setLeft(data, s, l)
		setRight(data, s, r)
		setParent(data, s, p)
		if l.valid() {
			setParent(data, l, s)
		}
		if r.valid() {
			setParent(data, r, s)
		}
		a.replaceInParent(data, p, bp, s)
		setPred(data, s, NullRef)
		return
	}

	l, r, p := getLeft(data, bp), getRight(data, bp), getParent(data, bp)
	switch {
	case !l.valid() && !r.valid():
		a.replaceInParent(data, p, bp, NullRef)

	case !l.valid() || !r.valid():
		child := l
		if !child.valid() {
			child = r
		}
		a.replaceInParent(data, p, bp, child)
		setParent(data, child, p)

	default:
		m := treeMinimum(data, r)
		if m == r {
			setLeft(data, r, l)
			setParent(data, l, r)
			setParent(data, r, p)
			a.replaceInParent(data, p, bp, r)
		} else {
			mParent := getParent(data, m)
			mRight := getRight(data, m)
			setLeft(data, mParent, mRight)
			if mRight.valid() {
				setParent(data, mRight, mParent)
			}
			setLeft(data, m, l)
			setRight(data, m, r)
			setParent(data, m, p)
			setParent(data, l, m)
			setParent(data, r, m)
			a.replaceInParent(data, p, bp, m)
		}
	}
}

// bstBestFit returns the smallest BST-resident free block whose size is
// >= size, or NullRef if none exists. Ties resolve to the tree node (the
// most recently inserted block of that size), giving LIFO reuse.
func (a *Allocator) bstBestFit(data []byte, size int32) Ref {
	cur := getBin(data, a.bstBin())
	best := NullRef
	for cur.valid() {
		curSize := sizeAt(data, cur)
		switch {
		case size == curSize:
			return cur
		case size < curSize:
			best = cur
			cur = getLeft(data, cur)
		default:
			cur = getRight(data, cur)
		}
	}
	return best
}
