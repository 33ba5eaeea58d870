package engine

import (
	"sync"

	"github.com/kestrel-engine/kestrel-go/pkg/profiling"
	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

// MemCore is an in-process core implementing the full boundary contract:
// goroutine binding at Init, two-phase reads, command processing on Tick,
// a window registry, and the exchange buffer table. Tests, soak runs, and
// the demo host use it in place of the native library.
type MemCore struct {
	mu          sync.Mutex
	initialized bool
	goroutineID uint64

	pendingCmds   [][]byte
	responses     []*protocol.Response
	events        []*protocol.Event
	profilingData []byte

	buffers map[uint64][]byte

	windows      map[uint32]*memWindow
	nextWindowID uint32

	frames            uint64
	commandsProcessed uint64
	eventsEmitted     uint64
}

type memWindow struct {
	title       string
	size        [2]uint32
	position    [2]int32
	state       protocol.WindowStateKind
	resizable   bool
	alwaysOnTop bool
}

var _ Core = (*MemCore)(nil)

// NewMemCore returns an unbound core. Call Init before anything else.
func NewMemCore() *MemCore {
	return &MemCore{}
}

func (m *MemCore) Init() protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return protocol.ResultAlreadyInitialized
	}
	m.initialized = true
	m.goroutineID = currentGoroutineID()
	m.buffers = make(map[uint64][]byte)
	m.windows = make(map[uint32]*memWindow)
	m.nextWindowID = 1
	return protocol.ResultSuccess
}

func (m *MemCore) Dispose() protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return protocol.ResultNotInitialized
	}
	m.initialized = false
	m.goroutineID = 0
	m.pendingCmds = nil
	m.responses = nil
	m.events = nil
	m.profilingData = nil
	m.buffers = nil
	m.windows = nil
	m.frames = 0
	m.commandsProcessed = 0
	m.eventsEmitted = 0
	return protocol.ResultSuccess
}

// checkBound verifies init state and goroutine affinity. Callers hold mu.
func (m *MemCore) checkBound() protocol.ResultCode {
	if !m.initialized {
		return protocol.ResultNotInitialized
	}
	if currentGoroutineID() != m.goroutineID {
		return protocol.ResultWrongThread
	}
	return protocol.ResultSuccess
}

func (m *MemCore) Tick(time uint64, delta uint32) protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rc := m.checkBound(); !rc.OK() {
		return rc
	}

	batches := m.pendingCmds
	m.pendingCmds = nil

	result := protocol.ResultSuccess
	for _, batch := range batches {
		cmds, _, err := protocol.DecodeCommandBatch(batch)
		if err != nil {
			// The batch is dropped; later batches still run.
			result = protocol.ResultMalformedBatch
			continue
		}
		for _, c := range cmds {
			m.execute(c)
			m.commandsProcessed++
		}
	}

	m.frames++
	snap := profiling.Snapshot{
		Frames:            m.frames,
		TimeMS:            time,
		DeltaMS:           delta,
		CommandsProcessed: m.commandsProcessed,
		EventsEmitted:     m.eventsEmitted,
	}
	m.profilingData = snap.Encode()

	return result
}

// execute runs one command against the window registry, queueing the
// response and any observable events. Callers hold mu.
func (m *MemCore) execute(c *protocol.Command) {
	switch c.Tag {
	case protocol.CmdWindowCreate:
		a := c.Args.(*protocol.WindowCreateArgs)
		id := m.nextWindowID
		m.nextWindowID++
		m.windows[id] = &memWindow{
			title:       a.Title,
			size:        a.Size,
			position:    a.Position,
			state:       a.InitialState,
			resizable:   a.Resizable,
			alwaysOnTop: a.AlwaysOnTop,
		}
		m.respond(&protocol.Response{
			ID: c.ID, Tag: c.Tag, Code: protocol.ResultSuccess,
			Payload: &protocol.WindowCreateResult{WindowID: id},
		})
		m.emit(protocol.CategoryWindow, protocol.WindowCreated,
			&protocol.WindowCreatedData{WindowID: id})

	case protocol.CmdWindowClose:
		a := c.Args.(*protocol.WindowTargetArgs)
		if _, ok := m.windows[a.WindowID]; !ok {
			m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
			return
		}
		delete(m.windows, a.WindowID)
		m.respond(protocol.NewAck(c.ID, c.Tag))
		m.emit(protocol.CategoryWindow, protocol.WindowDestroyed,
			&protocol.WindowTargetData{WindowID: a.WindowID})

	case protocol.CmdWindowSetTitle:
		a := c.Args.(*protocol.WindowSetTitleArgs)
		w, ok := m.windows[a.WindowID]
		if !ok {
			m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
			return
		}
		w.title = a.Title
		m.respond(protocol.NewAck(c.ID, c.Tag))

	case protocol.CmdWindowSetSize:
		a := c.Args.(*protocol.WindowSetSizeArgs)
		w, ok := m.windows[a.WindowID]
		if !ok {
			m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
			return
		}
		w.size = a.Size
		m.respond(protocol.NewAck(c.ID, c.Tag))
		m.emit(protocol.CategoryWindow, protocol.WindowResized,
			&protocol.WindowResizedData{WindowID: a.WindowID, Width: a.Size[0], Height: a.Size[1]})

	case protocol.CmdWindowSetPosition:
		a := c.Args.(*protocol.WindowSetPositionArgs)
		w, ok := m.windows[a.WindowID]
		if !ok {
			m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
			return
		}
		w.position = a.Position
		m.respond(protocol.NewAck(c.ID, c.Tag))
		m.emit(protocol.CategoryWindow, protocol.WindowMoved,
			&protocol.WindowMovedData{WindowID: a.WindowID, Position: a.Position})

	case protocol.CmdWindowSetState:
		a := c.Args.(*protocol.WindowSetStateArgs)
		w, ok := m.windows[a.WindowID]
		if !ok {
			m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
			return
		}
		w.state = a.State
		m.respond(protocol.NewAck(c.ID, c.Tag))

	case protocol.CmdWindowSetResizable:
		a := c.Args.(*protocol.WindowSetResizableArgs)
		w, ok := m.windows[a.WindowID]
		if !ok {
			m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
			return
		}
		w.resizable = a.Resizable
		m.respond(protocol.NewAck(c.ID, c.Tag))

	case protocol.CmdWindowSetAlwaysOnTop:
		a := c.Args.(*protocol.WindowSetAlwaysOnTopArgs)
		w, ok := m.windows[a.WindowID]
		if !ok {
			m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
			return
		}
		w.alwaysOnTop = a.AlwaysOnTop
		m.respond(protocol.NewAck(c.ID, c.Tag))

	case protocol.CmdWindowSetCursorIcon, protocol.CmdWindowSetCursorVisible,
		protocol.CmdWindowRequestAttention:
		if !m.windowExists(c.Args) {
			m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
			return
		}
		m.respond(protocol.NewAck(c.ID, c.Tag))

	case protocol.CmdWindowRequestRedraw:
		a := c.Args.(*protocol.WindowTargetArgs)
		if _, ok := m.windows[a.WindowID]; !ok {
			m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
			return
		}
		m.respond(protocol.NewAck(c.ID, c.Tag))
		m.emit(protocol.CategoryWindow, protocol.WindowRedrawRequested,
			&protocol.WindowTargetData{WindowID: a.WindowID})

	default:
		m.respond(protocol.NewErrorResponse(c.ID, c.Tag, protocol.ResultUnknownError))
	}
}

func (m *MemCore) windowExists(args any) bool {
	switch a := args.(type) {
	case *protocol.WindowSetCursorIconArgs:
		_, ok := m.windows[a.WindowID]
		return ok
	case *protocol.WindowSetCursorVisibleArgs:
		_, ok := m.windows[a.WindowID]
		return ok
	case *protocol.WindowRequestAttentionArgs:
		_, ok := m.windows[a.WindowID]
		return ok
	}
	return false
}

func (m *MemCore) respond(r *protocol.Response) {
	m.responses = append(m.responses, r)
}

func (m *MemCore) emit(cat protocol.EventCategory, kind uint8, data any) {
	m.events = append(m.events, &protocol.Event{Category: cat, Kind: kind, Data: data})
	m.eventsEmitted++
}

func (m *MemCore) SendQueue(data []byte) protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rc := m.checkBound(); !rc.OK() {
		return rc
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.pendingCmds = append(m.pendingCmds, cp)
	return protocol.ResultSuccess
}

// serveRead implements the two-phase convention over a pending payload.
// The payload is consumed only on a successful fill. Callers hold mu.
func serveRead(pending []byte, dst []byte, size *int) (consumed bool, rc protocol.ResultCode) {
	if len(pending) == 0 {
		*size = 0
		return false, protocol.ResultSuccess
	}
	if dst == nil {
		*size = len(pending)
		return false, protocol.ResultSuccess
	}
	if len(dst) < len(pending) {
		*size = len(pending)
		return false, protocol.ResultBufferOverflow
	}
	copy(dst, pending)
	*size = len(pending)
	return true, protocol.ResultSuccess
}

func (m *MemCore) ReceiveQueue(dst []byte, size *int) protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rc := m.checkBound(); !rc.OK() {
		return rc
	}
	if len(m.responses) == 0 {
		*size = 0
		return protocol.ResultSuccess
	}
	pending, err := protocol.EncodeResponseBatch(m.responses)
	if err != nil {
		return protocol.ResultUnknownError
	}
	consumed, rc := serveRead(pending, dst, size)
	if consumed {
		m.responses = nil
	}
	return rc
}

func (m *MemCore) ReceiveEvents(dst []byte, size *int) protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rc := m.checkBound(); !rc.OK() {
		return rc
	}
	if len(m.events) == 0 {
		*size = 0
		return protocol.ResultSuccess
	}
	pending, err := protocol.EncodeEventBatch(m.events)
	if err != nil {
		return protocol.ResultUnknownError
	}
	consumed, rc := serveRead(pending, dst, size)
	if consumed {
		m.events = nil
	}
	return rc
}

func (m *MemCore) UploadBuffer(handle uint64, data []byte) protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return protocol.ResultNotInitialized
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.buffers[handle] = cp
	return protocol.ResultSuccess
}

func (m *MemCore) DownloadBuffer(handle uint64, dst []byte, size *int) protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return protocol.ResultNotInitialized
	}
	// Absent or cleared handles read back as empty, not as an error.
	pending := m.buffers[handle]
	_, rc := serveRead(pending, dst, size)
	return rc
}

func (m *MemCore) ClearBuffer(handle uint64) protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return protocol.ResultNotInitialized
	}
	delete(m.buffers, handle)
	return protocol.ResultSuccess
}

func (m *MemCore) Profiling(dst []byte, size *int) protocol.ResultCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rc := m.checkBound(); !rc.OK() {
		return rc
	}
	consumed, rc := serveRead(m.profilingData, dst, size)
	if consumed {
		m.profilingData = nil
	}
	return rc
}
