package engine

import (
	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

// maxSizeRaceRetries bounds how many times a read is retried when the core
// produces more bytes between the size query and the fill.
const maxSizeRaceRetries = 3

// readFn is any boundary call following the two-phase dst/size convention.
type readFn func(dst []byte, size *int) protocol.ResultCode

// readAll drains one pending payload through a two-phase call. It queries
// the size, allocates exactly that much, and fills. A fill that reports
// fewer bytes truncates to the reported length. A BufferOverflow from the
// fill means the payload grew after the query; the read restarts with the
// newly reported size, up to maxSizeRaceRetries, then the overflow
// surfaces. A zero size query short-circuits to (nil, nil) with no second
// call.
func readAll(op string, fn readFn) ([]byte, error) {
	var size int
	if code := fn(nil, &size); !code.OK() {
		return nil, callErr(op, code)
	}
	if size == 0 {
		return nil, nil
	}

	for attempt := 0; ; attempt++ {
		dst := make([]byte, size)
		n := len(dst)
		code := fn(dst, &n)
		switch {
		case code.OK():
			if n > len(dst) {
				// The core must never claim more than the allocation.
				return nil, callErr(op, protocol.ResultUnknownError)
			}
			return dst[:n], nil
		case code == protocol.ResultBufferOverflow && attempt < maxSizeRaceRetries:
			// n carries the size required now.
			size = n
		default:
			return nil, callErr(op, code)
		}
	}
}
