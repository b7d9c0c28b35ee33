package alloc

import (
	"fmt"
	"os"
)

// CheckHeap walks the whole heap and the whole Free Index and verifies
// every invariant a corrupted heap could violate: alignment, minimum
// size, header/footer agreement on free blocks, prev_alloc/prev_small
// bookkeeping, absence of adjacent free blocks, BST ordering and
// bidirectional links, and that the free-block count seen by the two
// walks agrees. It mirrors the textbook allocator's mm_checkheap, but
// returns an error instead of terminating the process — callers decide
// whether a corrupted heap is fatal.
//
// When verbose is true, every block and index entry visited is logged to
// stderr as it's walked.
func (a *Allocator) CheckHeap(verbose bool) error {
	data := a.h.Bytes()

	bp := Ref(a.firstHeaderOff + hdrSize)
	prevAllocActual := true // the prologue is always allocated
	prevSize := int32(MinSize)
	freeWalk := 0

	for {
		h := headerAt(data, bp)
		size := sizeOf(h)
		alloc := isAlloc(h)
		pa := prevAllocOf(h)
		ps := prevSmallOf(h)

		if size == 0 {
			if pa != prevAllocActual {
				return fmt.Errorf("%w: epilogue prev_alloc does not match last block's alloc state", ErrInvariant)
			}
			if ps != (prevSize == MinSize) {
				return fmt.Errorf("%w: epilogue prev_small does not match last block's size", ErrInvariant)
			}
			break
		}

		if int32(bp)%alignSize != 0 {
			return fmt.Errorf("%w: block at offset %d is not 8-byte aligned", ErrInvariant, bp)
		}
		if size < MinSize || size%alignSize != 0 {
			return fmt.Errorf("%w: block at offset %d has invalid size %d", ErrInvariant, bp, size)
		}
		if pa != prevAllocActual {
			return fmt.Errorf("%w: block at offset %d has stale prev_alloc", ErrInvariant, bp)
		}
		if ps != (prevSize == MinSize) {
			return fmt.Errorf("%w: block at offset %d has stale prev_small", ErrInvariant, bp)
		}
		if !alloc && !prevAllocActual {
			return fmt.Errorf("%w: adjacent free blocks at offset %d", ErrInvariant, bp)
		}
		if !alloc {
			freeWalk++
			if size > MinSize {
				if getWord(data, footerOff(bp, size)) != h {
					return fmt.Errorf("%w: header/footer mismatch for free block at offset %d", ErrInvariant, bp)
				}
			}
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "[alloc] heap-walk bp=%d size=%d alloc=%v prev_alloc=%v prev_small=%v\n",
				bp, size, alloc, pa, ps)
		}

		prevAllocActual = alloc
		prevSize = size
		bp += Ref(size)
	}

	indexWalk, err := a.countIndex(data, verbose)
	if err != nil {
		return err
	}
	if indexWalk != freeWalk {
		return fmt.Errorf("%w: heap walk found %d free blocks but the Free Index holds %d", ErrInvariant, freeWalk, indexWalk)
	}
	return nil
}

// countIndex walks every size-class bin plus the BST and returns the
// total number of free blocks it finds (tree nodes and BST-bin list
// members included), or an error on the first broken link it sees.
func (a *Allocator) countIndex(data []byte, verbose bool) (int, error) {
	total := 0
	for idx := int32(0); idx < a.bstBin(); idx++ {
		prev := NullRef
		cur := getBin(data, idx)
		for cur.valid() {
			total++
			if idx > 0 && getPred(data, cur) != prev {
				return 0, fmt.Errorf("%w: size class %d list has a broken predecessor at offset %d", ErrInvariant, idx, cur)
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "[alloc] bin[%d] bp=%d\n", idx, cur)
			}
			prev = cur
			cur = getSucc(data, cur)
		}
	}

	n, err := a.checkBST(data, verbose)
	if err != nil {
		return 0, err
	}
	return total + n, nil
}

// checkBST walks the BST in order with an explicit stack — recursion is
// avoided deliberately, since a degenerate sorted-insert trace can make
// the tree as deep as it is wide. It verifies strictly increasing sizes
// across tree nodes and bidirectional parent/child links, and returns
// the total count of free blocks represented (each node plus its chained
// same-size list).
func (a *Allocator) checkBST(data []byte, verbose bool) (int, error) {
	var stack []Ref
	cur := getBin(data, a.bstBin())
	count := 0
	lastSize := int32(-1)

	for cur.valid() || len(stack) > 0 {
		for cur.valid() {
			stack = append(stack, cur)
			cur = getLeft(data, cur)
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		size := sizeAt(data, cur)
		if lastSize >= 0 && size <= lastSize {
			return 0, fmt.Errorf("%w: BST in-order sizes not strictly increasing at node %d", ErrInvariant, cur)
		}
		lastSize = size

		if l := getLeft(data, cur); l.valid() && getParent(data, l) != cur {
			return 0, fmt.Errorf("%w: BST left child at %d does not point back to parent", ErrInvariant, cur)
		}
		if r := getRight(data, cur); r.valid() && getParent(data, r) != cur {
			return 0, fmt.Errorf("%w: BST right child at %d does not point back to parent", ErrInvariant, cur)
		}

		n := 1
		prevLink := cur
		succ := getSucc(data, cur)
		for succ.valid() {
			n++
			if getPred(data, succ) != prevLink {
				return 0, fmt.Errorf("%w: BST same-size list broken at offset %d", ErrInvariant, succ)
			}
			prevLink = succ
			succ = getSucc(data, succ)
		}
		count += n

		if verbose {
			fmt.Fprintf(os.Stderr, "[alloc] bst node=%d size=%d listlen=%d\n", cur, size, n)
		}

		cur = getRight(data, cur)
	}

	return count, nil
}
