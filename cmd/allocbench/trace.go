package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// opKind identifies one line of a trace file.
type opKind byte

const (
	opAlloc opKind = 'a'
	opFree  opKind = 'f'
	opRealloc opKind = 'r'
)

// op is a single trace operation: allocate/free/resize a request id of a
// given size. Free and realloc reference an id allocated by an earlier
// op in the same trace.
type op struct {
	kind opKind
	id   int
	size int32
}

// parseTrace reads a CS:APP malloclab-style trace: one operation per line,
// "a <id> <size>" to allocate, "f <id>" to free, "r <id> <size>" to
// reallocate. Blank lines and lines starting with '#' are ignored.
func parseTrace(r io.Reader) ([]op, error) {
	var ops []op
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("trace line %d: expected at least 2 fields, got %d", lineNo, len(fields))
		}

		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("trace line %d: bad id %q: %w", lineNo, fields[1], err)
		}

		switch opKind(fields[0][0]) {
		case opAlloc, opRealloc:
			if len(fields) < 3 {
				return nil, fmt.Errorf("trace line %d: %q needs a size", lineNo, fields[0])
			}
			size, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("trace line %d: bad size %q: %w", lineNo, fields[2], err)
			}
			ops = append(ops, op{kind: opKind(fields[0][0]), id: id, size: int32(size)})
		case opFree:
			ops = append(ops, op{kind: opFree, id: id})
		default:
			return nil, fmt.Errorf("trace line %d: unknown op %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return ops, nil
}
