package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader_PackUnpackRoundTrip(t *testing.T) {
	for _, size := range []int32{8, 16, 24, 32, 40, 1024, 1 << 20} {
		for _, alloc := range []bool{true, false} {
			for _, pa := range []bool{true, false} {
				for _, ps := range []bool{true, false} {
					w := pack(size, alloc, pa, ps)
					assert.Equal(t, size, sizeOf(w))
					assert.Equal(t, alloc, isAlloc(w))
					assert.Equal(t, pa, prevAllocOf(w))
					assert.Equal(t, ps, prevSmallOf(w))
				}
			}
		}
	}
}

func TestHeader_GetPutWordRoundTrip(t *testing.T) {
	data := make([]byte, 64)
	w := pack(128, true, false, true)
	putWord(data, 16, w)
	assert.Equal(t, w, getWord(data, 16))
}

func TestHeader_SetPrevAllocOnlyTouchesThatBit(t *testing.T) {
	w := pack(256, false, true, true)
	w2 := setPrevAlloc(w, false)
	assert.False(t, prevAllocOf(w2))
	assert.Equal(t, int32(256), sizeOf(w2))
	assert.False(t, isAlloc(w2))
	assert.True(t, prevSmallOf(w2))
}

func TestHeader_RefRoundTrip(t *testing.T) {
	data := make([]byte, 32)
	putRef(data, 4, Ref(12345))
	assert.Equal(t, Ref(12345), getRef(data, 4))
}

func TestHeader_AddrRoundTrip(t *testing.T) {
	data := make([]byte, 32)
	putAddr(data, 8, Ref(999999))
	assert.Equal(t, Ref(999999), getAddr(data, 8))
}
