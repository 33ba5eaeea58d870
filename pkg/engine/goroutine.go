package engine

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentGoroutineID parses the goroutine id from the stack header line
// ("goroutine N ["). The core binds to one goroutine at Init and
// thread-affine calls check against it.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
