package alloc

import "encoding/binary"

// header bit layout (little-endian word), per the persisted heap layout:
//
//	bits[31:3] = size, with its low 3 bits cleared (size is always a
//	             multiple of 8, so no information is lost)
//	bit[2]     = prev_small
//	bit[1]     = prev_alloc
//	bit[0]     = alloc
//
const (
	allocBit     = 1 << 0
	prevAllocBit = 1 << 1
	prevSmallBit = 1 << 2
	sizeMask     = ^uint32(0x7)
)

// pack encodes a header/footer word from its four logical fields.
// unpack(pack(s, a, p, q)) == (s, a, p, q) for any s that is a multiple of
// 8 and any a, p, q.
func pack(size int32, alloc, prevAlloc, prevSmall bool) uint32 {
	w := uint32(size) & sizeMask
	if alloc {
		w |= allocBit
	}
	if prevAlloc {
		w |= prevAllocBit
	}
	if prevSmall {
		w |= prevSmallBit
	}
	return w
}

func sizeOf(w uint32) int32       { return int32(w & sizeMask) }
func isAlloc(w uint32) bool       { return w&allocBit != 0 }
func prevAllocOf(w uint32) bool   { return w&prevAllocBit != 0 }
func prevSmallOf(w uint32) bool   { return w&prevSmallBit != 0 }
func setPrevAlloc(w uint32, v bool) uint32 {
	if v {
		return w | prevAllocBit
	}
	return w &^ prevAllocBit
}

// getWord reads a 4-byte header or footer word at the given absolute
// offset into data.
func getWord(data []byte, off int32) uint32 {
	return binary.LittleEndian.Uint32(data[off : off+4])
}

// putWord writes a 4-byte header or footer word at the given absolute
// offset into data.
func putWord(data []byte, off int32, w uint32) {
	binary.LittleEndian.PutUint32(data[off:off+4], w)
}

// getRef reads a 4-byte Ref (successor/predecessor offset) at off.
func getRef(data []byte, off int32) Ref {
	return Ref(binary.LittleEndian.Uint32(data[off : off+4]))
}

// putRef writes a 4-byte Ref at off.
func putRef(data []byte, off int32, r Ref) {
	binary.LittleEndian.PutUint32(data[off:off+4], uint32(r))
}

// getAddr reads an 8-byte full-width tree link at off.
func getAddr(data []byte, off int32) Ref {
	return Ref(binary.LittleEndian.Uint64(data[off : off+8]))
}

// putAddr writes an 8-byte full-width tree link at off.
func putAddr(data []byte, off int32, r Ref) {
	binary.LittleEndian.PutUint64(data[off:off+8], uint64(uint32(r)))
}
