package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newBSTTestAllocator() (*Allocator, []byte) {
	a := &Allocator{cfg: DefaultConfig, numBins: DefaultConfig.numBins()}
	data := make([]byte, 4096)
	return a, data
}

// place writes a free block's header at bp with no footer requirement
// beyond what bstInsert/bstRemove need (they only ever read sizeAt, which
// only consults the header).
func place(data []byte, bp Ref, size int32) {
	writeHeader(data, bp, size, false, true, false)
}

func TestBST_InsertDistinctSizesKeepsOrdering(t *testing.T) {
	a, data := newBSTTestAllocator()

	sizes := []int32{128, 64, 192, 48, 96, 160, 224}
	for i, sz := range sizes {
		bp := Ref(64 + i*64)
		place(data, bp, sz)
		a.bstInsert(data, bp, sz)
	}

	n, err := a.checkBST(data, false)
	require.NoError(t, err)
	require.Equal(t, len(sizes), n)

	require.Equal(t, Ref(64), a.bstBestFit(data, 100), "node holding the size-128 block is the smallest that still fits 100")
	require.Equal(t, Ref(64+6*64), a.bstBestFit(data, 224))
	require.Equal(t, NullRef, a.bstBestFit(data, 1000))
}

func TestBST_InsertSameSizeSplicesAsListHead(t *testing.T) {
	a, data := newBSTTestAllocator()

	bp1, bp2, bp3 := Ref(64), Ref(128), Ref(192)
	place(data, bp1, 64)
	place(data, bp2, 64)
	place(data, bp3, 64)

	a.bstInsert(data, bp1, 64)
	a.bstInsert(data, bp2, 64) // same size: splices in as new tree node, bp1 becomes list member
	a.bstInsert(data, bp3, 64)

	require.Equal(t, bp3, getBin(data, a.bstBin()), "most recently inserted same-size node becomes the tree node")
	require.Equal(t, bp2, getSucc(data, bp3))
	require.Equal(t, bp1, getSucc(data, bp2))
	require.Equal(t, bp3, getPred(data, bp2))

	n, err := a.checkBST(data, false)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestBST_RemoveListMemberWithPredecessor(t *testing.T) {
	a, data := newBSTTestAllocator()
	bp1, bp2, bp3 := Ref(64), Ref(128), Ref(192)
	place(data, bp1, 64)
	place(data, bp2, 64)
	place(data, bp3, 64)
	a.bstInsert(data, bp1, 64)
	a.bstInsert(data, bp2, 64)
	a.bstInsert(data, bp3, 64) // tree node: bp3, list: bp3 -> bp2 -> bp1

	a.bstRemove(data, bp2)
	require.Equal(t, bp3, getBin(data, a.bstBin()))
	require.Equal(t, bp1, getSucc(data, bp3))
	require.Equal(t, bp3, getPred(data, bp1))
}

func TestBST_RemoveListHeadPromotesSuccessor(t *testing.T) {
	a, data := newBSTTestAllocator()
	bp1, bp2 := Ref(64), Ref(128)
	place(data, bp1, 64)
	place(data, bp2, 64)
	a.bstInsert(data, bp1, 64)
	a.bstInsert(data, bp2, 64) // tree node: bp2, list member: bp1

	a.bstRemove(data, bp2)
	require.Equal(t, bp1, getBin(data, a.bstBin()), "bp1 is promoted to the tree node")
	require.Equal(t, NullRef, getPred(data, bp1))

	n, err := a.checkBST(data, false)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestBST_RemoveSoleLeafNode(t *testing.T) {
	a, data := newBSTTestAllocator()
	bp1, bp2 := Ref(64), Ref(128)
	place(data, bp1, 128)
	place(data, bp2, 64)
	a.bstInsert(data, bp1, 128)
	a.bstInsert(data, bp2, 64) // bp2 becomes bp1's left child

	a.bstRemove(data, bp2)
	require.Equal(t, NullRef, getLeft(data, bp1))
	n, err := a.checkBST(data, false)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestBST_RemoveNodeWithOneChild(t *testing.T) {
	a, data := newBSTTestAllocator()
	bp1, bp2, bp3 := Ref(64), Ref(128), Ref(192)
	place(data, bp1, 128)
	place(data, bp2, 64)
	place(data, bp3, 32)
	a.bstInsert(data, bp1, 128)
	a.bstInsert(data, bp2, 64) // left child of bp1
	a.bstInsert(data, bp3, 32) // left child of bp2

	a.bstRemove(data, bp2)
	require.Equal(t, bp3, getLeft(data, bp1))
	require.Equal(t, bp1, getParent(data, bp3))

	n, err := a.checkBST(data, false)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestBST_RemoveNodeWithTwoChildrenSuccessorIsRightChild(t *testing.T) {
	a, data := newBSTTestAllocator()
	bp1, bp2, bp3 := Ref(64), Ref(128), Ref(192)
	place(data, bp1, 128)
	place(data, bp2, 64)
	place(data, bp3, 192)
	a.bstInsert(data, bp1, 128)
	a.bstInsert(data, bp2, 64)  // left child of bp1
	a.bstInsert(data, bp3, 192) // right child of bp1, successor of bp1 with no left child

	a.bstRemove(data, bp1)
	require.Equal(t, bp3, getBin(data, a.bstBin()))
	require.Equal(t, bp2, getLeft(data, bp3))
	require.Equal(t, bp3, getParent(data, bp2))

	n, err := a.checkBST(data, false)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestBST_RemoveNodeWithTwoChildrenSuccessorIsDeeper(t *testing.T) {
	a, data := newBSTTestAllocator()
	// bp1(128) root, bp2(64) left, bp3(256) right, bp4(192) left-of-bp3:
	// the in-order successor of bp1 is bp4, not bp3.
	bp1, bp2, bp3, bp4 := Ref(64), Ref(128), Ref(192), Ref(256)
	place(data, bp1, 128)
	place(data, bp2, 64)
	place(data, bp3, 256)
	place(data, bp4, 192)
	a.bstInsert(data, bp1, 128)
	a.bstInsert(data, bp2, 64)
	a.bstInsert(data, bp3, 256)
	a.bstInsert(data, bp4, 192)

	a.bstRemove(data, bp1)
	require.Equal(t, bp4, getBin(data, a.bstBin()))
	require.Equal(t, bp2, getLeft(data, bp4))
	require.Equal(t, bp3, getRight(data, bp4))
	require.Equal(t, bp4, getParent(data, bp2))
	require.Equal(t, bp4, getParent(data, bp3))
	require.Equal(t, NullRef, getLeft(data, bp3))

	n, err := a.checkBST(data, false)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestBST_BestFitTieGoesToTreeNode(t *testing.T) {
	a, data := newBSTTestAllocator()
	bp1, bp2 := Ref(64), Ref(128)
	place(data, bp1, 64)
	place(data, bp2, 64)
	a.bstInsert(data, bp1, 64)
	a.bstInsert(data, bp2, 64)

	require.Equal(t, bp2, a.bstBestFit(data, 64), "exact-size match returns the tree node, not a list member")
}
