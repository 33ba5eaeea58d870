// Package engine drives the native core across the raw-pointer boundary:
// library loading, the call gateway, two-phase buffer transfer, command
// correlation, and event dispatch.
package engine

import (
	"errors"
	"fmt"

	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

// Core is the native boundary surface. Every call returns a result code;
// zero is success. Read calls follow the two-phase pattern: a nil dst asks
// the core to write the pending payload size through size, a non-nil dst
// asks it to fill dst and write the produced length through size.
//
// All calls except Init, Dispose, and the pure buffer operations must run
// on the goroutine that called Init.
type Core interface {
	// Init binds the core to the calling goroutine and prepares the
	// event loop. Calling it twice returns AlreadyInitialized.
	Init() protocol.ResultCode

	// Dispose releases the core. Subsequent calls other than Init return
	// NotInitialized.
	Dispose() protocol.ResultCode

	// Tick advances the core one frame: drains queued commands, pumps the
	// platform event loop, and polls input devices. time is milliseconds
	// since engine start, delta is milliseconds since the previous tick.
	Tick(time uint64, delta uint32) protocol.ResultCode

	// SendQueue hands one encoded command batch to the core. The core
	// copies the bytes before returning.
	SendQueue(data []byte) protocol.ResultCode

	// ReceiveQueue reads the pending response batch.
	ReceiveQueue(dst []byte, size *int) protocol.ResultCode

	// ReceiveEvents reads the pending event batch.
	ReceiveEvents(dst []byte, size *int) protocol.ResultCode

	// UploadBuffer replaces the contents of the exchange buffer at handle.
	UploadBuffer(handle uint64, data []byte) protocol.ResultCode

	// DownloadBuffer reads the exchange buffer at handle. An absent or
	// cleared handle reports size 0 with success.
	DownloadBuffer(handle uint64, dst []byte, size *int) protocol.ResultCode

	// ClearBuffer releases the exchange buffer at handle. Clearing an
	// absent handle succeeds.
	ClearBuffer(handle uint64) protocol.ResultCode

	// Profiling reads the pending profiling payload.
	Profiling(dst []byte, size *int) protocol.ResultCode
}

// CallError wraps a failing result code with the boundary call that
// produced it.
type CallError struct {
	Op   string
	Code protocol.ResultCode
}

func (e *CallError) Error() string {
	return fmt.Sprintf("engine: %s: %s", e.Op, e.Code)
}

// ResultCode returns the code carried by err when err is a CallError,
// or UnknownError otherwise.
func ResultCodeOf(err error) protocol.ResultCode {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return protocol.ResultUnknownError
}

// callErr converts a nonzero result code into a CallError, nil otherwise.
func callErr(op string, code protocol.ResultCode) error {
	if code.OK() {
		return nil
	}
	return &CallError{Op: op, Code: code}
}
