package protocol

import "fmt"

// ResultCode is the 32-bit status returned by every native boundary call.
// Zero is success. Nonzero values partition into reserved ranges so the
// numeric value alone identifies the failing subsystem.
type ResultCode uint32

const (
	ResultSuccess            ResultCode = 0
	ResultUnknownError       ResultCode = 1
	ResultNotInitialized     ResultCode = 2
	ResultAlreadyInitialized ResultCode = 3
	ResultWrongThread        ResultCode = 4
	ResultBufferOverflow     ResultCode = 5

	// 1000-1999: windowing layer.
	ResultEventLoopNotReady ResultCode = 1000
	ResultWindowCreateError ResultCode = 1001

	// 2000-2999: graphics backend.
	ResultGraphicsInstanceError ResultCode = 2000

	// 3000-3999: command processing.
	ResultMalformedBatch ResultCode = 3000
)

// Subsystem identifies the origin of a result code by its reserved range.
type Subsystem uint8

const (
	SubsystemEngine   Subsystem = iota // generic engine codes (0-999)
	SubsystemWindow                    // windowing layer (1000-1999)
	SubsystemGraphics                  // graphics backend (2000-2999)
	SubsystemCommand                   // command processing (3000-3999)
	SubsystemReserved                  // unassigned ranges
)

// OK reports whether the code denotes success.
func (rc ResultCode) OK() bool {
	return rc == ResultSuccess
}

// Subsystem classifies the code by its reserved range. Unrecognized codes
// within a range still classify to that range's subsystem.
func (rc ResultCode) Subsystem() Subsystem {
	switch {
	case rc < 1000:
		return SubsystemEngine
	case rc < 2000:
		return SubsystemWindow
	case rc < 3000:
		return SubsystemGraphics
	case rc < 4000:
		return SubsystemCommand
	default:
		return SubsystemReserved
	}
}

// String returns the name of a known code, or a range-qualified numeric
// form for codes this build does not know.
func (rc ResultCode) String() string {
	switch rc {
	case ResultSuccess:
		return "Success"
	case ResultUnknownError:
		return "UnknownError"
	case ResultNotInitialized:
		return "NotInitialized"
	case ResultAlreadyInitialized:
		return "AlreadyInitialized"
	case ResultWrongThread:
		return "WrongThread"
	case ResultBufferOverflow:
		return "BufferOverflow"
	case ResultEventLoopNotReady:
		return "EventLoopNotReady"
	case ResultWindowCreateError:
		return "WindowCreateError"
	case ResultGraphicsInstanceError:
		return "GraphicsInstanceError"
	case ResultMalformedBatch:
		return "MalformedBatch"
	}
	return fmt.Sprintf("%s(%d)", rc.Subsystem(), uint32(rc))
}

// String returns the subsystem name.
func (s Subsystem) String() string {
	switch s {
	case SubsystemEngine:
		return "Engine"
	case SubsystemWindow:
		return "Window"
	case SubsystemGraphics:
		return "Graphics"
	case SubsystemCommand:
		return "Command"
	default:
		return "Reserved"
	}
}
