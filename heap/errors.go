package heap

import "errors"

var (
	// ErrOutOfMemory is returned by Sbrk when the arena cannot grow by the
	// requested amount, either because the upfront reservation is exhausted
	// or the platform-level mprotect commit failed.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrNegativeGrow is returned by Sbrk for a negative growth request.
	// This arena only grows; shrinking the break is not supported.
	ErrNegativeGrow = errors.New("heap: sbrk amount must be non-negative")

	// ErrClosed is returned by Sbrk called after Close. A second Close
	// returns nil.
	ErrClosed = errors.New("heap: arena is closed")
)
