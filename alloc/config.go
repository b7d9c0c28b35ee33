package alloc

import "fmt"

// Config tunes the knobs spec.md's block layout leaves open. Unlike the
// size-class presets a general-purpose allocator might expose, the
// size-class boundaries here are not a free choice: MinSize is dictated by
// the minimum metadata a free block must hold (header + successor offset),
// and Threshold is dictated by the point at which a tree node's left,
// right, parent, successor, and predecessor fields fit ahead of the
// footer. Config only exposes what is genuinely tunable.
type Config struct {
	// ChunkSize is the number of bytes requested from the heap provider
	// each time the Free Index runs dry, if the shortfall itself is
	// smaller. Mirrors CHUNKSIZE in the traditional textbook allocator
	// this design is patterned on.
	ChunkSize int32

	// SmallClassMax is the largest size served by a segregated size-class
	// bin rather than the BST. It must equal Threshold — the two are kept
	// as separate fields because spec.md describes them as conceptually
	// distinct knobs (the bin array's span vs. the BST's domain), even
	// though this implementation's tree-node footprint pins them together.
	SmallClassMax int32

	// Threshold is T: blocks of size <= Threshold live in a size-class
	// bin; blocks of size > Threshold live in the BST.
	Threshold int32

	// MaxAlloc bounds the largest payload size Allocate will accept,
	// enforcing the non-goal that allocations above 2^30 bytes are out of
	// scope.
	MaxAlloc int32
}

// DefaultConfig follows _examples/original_source/malloclab/2mm-myseg.c,
// the variant spec.md's data model actually describes (MIN_SIZE=8,
// THRESHOLD=32, the prev_small bit).
var DefaultConfig = Config{
	ChunkSize:     1 << 8,
	SmallClassMax: 32,
	Threshold:     32,
	MaxAlloc:      1 << 30,
}

// MinSize is the smallest block size: a 4-byte header plus a 4-byte
// successor offset, with no room for a footer or predecessor.
const MinSize = 8

// hdrSize is the width of a header or footer word.
const hdrSize = 4

// alignSize is the payload alignment every block pointer must satisfy.
const alignSize = 8

func (c Config) validate() error {
	if c.SmallClassMax != c.Threshold {
		return fmt.Errorf("alloc: SmallClassMax (%d) must equal Threshold (%d)", c.SmallClassMax, c.Threshold)
	}
	if c.Threshold < MinSize || c.Threshold%alignSize != 0 {
		return fmt.Errorf("alloc: Threshold must be a positive multiple of %d, got %d", alignSize, c.Threshold)
	}
	if c.ChunkSize <= 0 || c.ChunkSize%alignSize != 0 {
		return fmt.Errorf("alloc: ChunkSize must be a positive multiple of %d, got %d", alignSize, c.ChunkSize)
	}
	if c.MaxAlloc <= 0 {
		return fmt.Errorf("alloc: MaxAlloc must be positive, got %d", c.MaxAlloc)
	}
	return nil
}

// numBins returns K: one bin per discrete size class from MinSize to
// Threshold inclusive, plus one bin for the BST root.
func (c Config) numBins() int32 {
	return (c.Threshold-MinSize)/alignSize + 2
}
