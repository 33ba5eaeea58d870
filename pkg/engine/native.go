//go:build darwin || linux || freebsd

package engine

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

// NativeCore calls into the dynamically loaded core library via purego,
// avoiding cgo so the host cross-compiles cleanly.
type NativeCore struct {
	handle uintptr

	fnInit           func() uint32
	fnDispose        func() uint32
	fnTick           func(time uint64, delta uint32) uint32
	fnSendQueue      func(ptr uintptr, length uint32) uint32
	fnReceiveQueue   func(dst uintptr, size uintptr) uint32
	fnReceiveEvents  func(dst uintptr, size uintptr) uint32
	fnUploadBuffer   func(handle uint64, ptr uintptr, length uint32) uint32
	fnDownloadBuffer func(handle uint64, dst uintptr, size uintptr) uint32
	fnClearBuffer    func(handle uint64) uint32
	fnProfiling      func(dst uintptr, size uintptr) uint32
}

// NewNativeCore loads the core library and resolves its exported functions.
// The library path comes from KESTREL_LIB_PATH or platform search paths.
func NewNativeCore() (*NativeCore, error) {
	path := findLibrary()
	handle, err := purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("engine: load core library %s: %w", path, err)
	}

	c := &NativeCore{handle: handle}
	purego.RegisterLibFunc(&c.fnInit, handle, "engine_init")
	purego.RegisterLibFunc(&c.fnDispose, handle, "engine_dispose")
	purego.RegisterLibFunc(&c.fnTick, handle, "engine_tick")
	purego.RegisterLibFunc(&c.fnSendQueue, handle, "engine_send_queue")
	purego.RegisterLibFunc(&c.fnReceiveQueue, handle, "engine_receive_queue")
	purego.RegisterLibFunc(&c.fnReceiveEvents, handle, "engine_receive_events")
	purego.RegisterLibFunc(&c.fnUploadBuffer, handle, "engine_upload_buffer")
	purego.RegisterLibFunc(&c.fnDownloadBuffer, handle, "engine_download_buffer")
	purego.RegisterLibFunc(&c.fnClearBuffer, handle, "engine_clear_buffer")
	purego.RegisterLibFunc(&c.fnProfiling, handle, "engine_profiling")
	return c, nil
}

func (c *NativeCore) Init() protocol.ResultCode {
	return protocol.ResultCode(c.fnInit())
}

func (c *NativeCore) Dispose() protocol.ResultCode {
	return protocol.ResultCode(c.fnDispose())
}

func (c *NativeCore) Tick(time uint64, delta uint32) protocol.ResultCode {
	return protocol.ResultCode(c.fnTick(time, delta))
}

func (c *NativeCore) SendQueue(data []byte) protocol.ResultCode {
	var ptr uintptr
	if len(data) > 0 {
		ptr = uintptr(unsafe.Pointer(&data[0]))
	}
	code := protocol.ResultCode(c.fnSendQueue(ptr, uint32(len(data))))
	runtime.KeepAlive(data)
	return code
}

// twoPhaseRead implements the shared dst/size calling convention: dst nil
// queries the size, dst non-nil fills and reports the produced length.
func twoPhaseRead(fn func(dst, size uintptr) uint32, dst []byte, size *int) protocol.ResultCode {
	out := uint32(*size)
	sizePtr := uintptr(unsafe.Pointer(&out))

	var dstPtr uintptr
	if dst != nil {
		out = uint32(len(dst))
		if len(dst) > 0 {
			dstPtr = uintptr(unsafe.Pointer(&dst[0]))
		}
	}

	code := protocol.ResultCode(fn(dstPtr, sizePtr))
	runtime.KeepAlive(dst)
	*size = int(out)
	return code
}

func (c *NativeCore) ReceiveQueue(dst []byte, size *int) protocol.ResultCode {
	return twoPhaseRead(c.fnReceiveQueue, dst, size)
}

func (c *NativeCore) ReceiveEvents(dst []byte, size *int) protocol.ResultCode {
	return twoPhaseRead(c.fnReceiveEvents, dst, size)
}

func (c *NativeCore) UploadBuffer(handle uint64, data []byte) protocol.ResultCode {
	var ptr uintptr
	if len(data) > 0 {
		ptr = uintptr(unsafe.Pointer(&data[0]))
	}
	code := protocol.ResultCode(c.fnUploadBuffer(handle, ptr, uint32(len(data))))
	runtime.KeepAlive(data)
	return code
}

func (c *NativeCore) DownloadBuffer(handle uint64, dst []byte, size *int) protocol.ResultCode {
	return twoPhaseRead(func(d, s uintptr) uint32 {
		return c.fnDownloadBuffer(handle, d, s)
	}, dst, size)
}

func (c *NativeCore) ClearBuffer(handle uint64) protocol.ResultCode {
	return protocol.ResultCode(c.fnClearBuffer(handle))
}

func (c *NativeCore) Profiling(dst []byte, size *int) protocol.ResultCode {
	return twoPhaseRead(c.fnProfiling, dst, size)
}
