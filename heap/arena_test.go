package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArena_SbrkGrowsAndZeroFills(t *testing.T) {
	a, err := NewSized(4096)
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, int32(0), a.Low())
	require.Equal(t, int32(0), a.High())

	old, err := a.Sbrk(64)
	require.NoError(t, err)
	require.Equal(t, int32(0), old)
	require.Equal(t, int32(64), a.High())

	data := a.Bytes()
	require.Len(t, data, 64)
	for _, b := range data {
		require.Equal(t, byte(0), b)
	}

	old2, err := a.Sbrk(32)
	require.NoError(t, err)
	require.Equal(t, int32(64), old2)
	require.Equal(t, int32(96), a.High())
}

func TestArena_SbrkPreservesExistingBytes(t *testing.T) {
	a, err := NewSized(4096)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Sbrk(16)
	require.NoError(t, err)
	a.Bytes()[0] = 0xAB

	_, err = a.Sbrk(16)
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), a.Bytes()[0])
}

func TestArena_SbrkRejectsNegative(t *testing.T) {
	a, err := NewSized(4096)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Sbrk(-1)
	require.ErrorIs(t, err, ErrNegativeGrow)
}

func TestArena_SbrkZeroIsNoop(t *testing.T) {
	a, err := NewSized(4096)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Sbrk(8)
	require.NoError(t, err)

	old, err := a.Sbrk(0)
	require.NoError(t, err)
	require.Equal(t, int32(8), old)
	require.Equal(t, int32(8), a.High())
}

func TestArena_SbrkFailsBeyondReserve(t *testing.T) {
	a, err := NewSized(64)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Sbrk(64)
	require.NoError(t, err)

	_, err = a.Sbrk(1)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestArena_ClosedArenaRejectsSbrk(t *testing.T) {
	a, err := NewSized(4096)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close()) // idempotent

	_, err = a.Sbrk(8)
	require.ErrorIs(t, err, ErrClosed)
}
