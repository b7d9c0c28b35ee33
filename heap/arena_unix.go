//go:build linux || darwin

package heap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mmapArena reserves the whole arena up front with an anonymous PROT_NONE
// mapping, then commits pages on demand by mprotecting them to
// PROT_READ|PROT_WRITE as Sbrk advances the break. The mapping's base
// address never moves, so growth never invalidates an offset already
// handed to the allocator.
type mmapArena struct {
	data []byte
}

func newArenaImpl(reserve int32) (arenaImpl, error) {
	if reserve <= 0 {
		return nil, fmt.Errorf("heap: reserve must be positive, got %d", reserve)
	}
	data, err := unix.Mmap(-1, 0, int(reserve), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("heap: mmap reserve: %w", err)
	}
	return &mmapArena{data: data}, nil
}

func (m *mmapArena) bytes() []byte {
	return m.data
}

func (m *mmapArena) grow(newCommitted int32) error {
	if err := unix.Mprotect(m.data[:newCommitted], unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("%w: mprotect commit: %w", ErrOutOfMemory, err)
	}
	return nil
}

func (m *mmapArena) close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
}
