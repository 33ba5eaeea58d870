package protocol

import "errors"

// EventCategory is the outer tag of the event union.
type EventCategory uint8

const (
	CategoryWindow   EventCategory = 0x01
	CategoryPointer  EventCategory = 0x02
	CategoryKeyboard EventCategory = 0x03
	CategoryGamepad  EventCategory = 0x04
	CategoryJoystick EventCategory = 0x05
	CategorySystem   EventCategory = 0x06
)

// String returns the string representation of the event category.
func (ec EventCategory) String() string {
	switch ec {
	case CategoryWindow:
		return "Window"
	case CategoryPointer:
		return "Pointer"
	case CategoryKeyboard:
		return "Keyboard"
	case CategoryGamepad:
		return "Gamepad"
	case CategoryJoystick:
		return "Joystick"
	case CategorySystem:
		return "System"
	default:
		return "Unknown"
	}
}

// Inner event kinds, scoped per category.
const (
	// Window events
	WindowCreated            uint8 = 0x01
	WindowResized            uint8 = 0x02
	WindowMoved              uint8 = 0x03
	WindowCloseRequested     uint8 = 0x04
	WindowDestroyed          uint8 = 0x05
	WindowFocused            uint8 = 0x06
	WindowScaleFactorChanged uint8 = 0x07
	WindowOccluded           uint8 = 0x08
	WindowRedrawRequested    uint8 = 0x09
	WindowFileDropped        uint8 = 0x0A
	WindowFileHovered        uint8 = 0x0B
	WindowFileHoverCancelled uint8 = 0x0C
	WindowThemeChanged       uint8 = 0x0D

	// Pointer events
	PointerMoved     uint8 = 0x01
	PointerEntered   uint8 = 0x02
	PointerLeft      uint8 = 0x03
	PointerButton    uint8 = 0x04
	PointerScroll    uint8 = 0x05
	PointerTouch     uint8 = 0x06
	PointerPinch     uint8 = 0x07
	PointerPan       uint8 = 0x08
	PointerRotation  uint8 = 0x09
	PointerDoubleTap uint8 = 0x0A

	// Keyboard events
	KeyboardInput            uint8 = 0x01
	KeyboardModifiersChanged uint8 = 0x02
	KeyboardImeEnabled       uint8 = 0x03
	KeyboardImePreedit       uint8 = 0x04
	KeyboardImeCommit        uint8 = 0x05
	KeyboardImeDisabled      uint8 = 0x06

	// Gamepad events
	GamepadConnected    uint8 = 0x01
	GamepadDisconnected uint8 = 0x02
	GamepadButtonMoved  uint8 = 0x03
	GamepadAxisMoved    uint8 = 0x04

	// Joystick events
	JoystickConnected    uint8 = 0x01
	JoystickDisconnected uint8 = 0x02
	JoystickButtonMoved  uint8 = 0x03
	JoystickAxisMoved    uint8 = 0x04
	JoystickHatMoved     uint8 = 0x05

	// System events
	SystemResumed       uint8 = 0x01
	SystemSuspended     uint8 = 0x02
	SystemMemoryWarning uint8 = 0x03
	SystemExiting       uint8 = 0x04
)

// Window event payloads.

type WindowCreatedData struct {
	WindowID uint32
}

type WindowResizedData struct {
	WindowID uint32
	Width    uint32
	Height   uint32
}

type WindowMovedData struct {
	WindowID uint32
	Position [2]int32
}

type WindowTargetData struct {
	WindowID uint32
}

type WindowFocusedData struct {
	WindowID uint32
	Focused  bool
}

type WindowScaleFactorData struct {
	WindowID    uint32
	ScaleFactor float64
	NewWidth    uint32
	NewHeight   uint32
}

type WindowOccludedData struct {
	WindowID uint32
	Occluded bool
}

type WindowFileData struct {
	WindowID uint32
	Path     string
}

type WindowThemeData struct {
	WindowID uint32
	DarkMode bool
}

// Pointer event payloads.

type PointerMovedData struct {
	WindowID    uint32
	PointerType PointerType
	PointerID   uint64
	Position    [2]float32
}

type PointerCrossData struct {
	WindowID    uint32
	PointerType PointerType
	PointerID   uint64
}

type PointerButtonData struct {
	WindowID    uint32
	PointerType PointerType
	PointerID   uint64
	Button      MouseButton
	State       ElementState
	Position    [2]float32
}

// ScrollDeltaKind distinguishes line-based wheel scrolling from pixel-based
// touchpad scrolling.
type ScrollDeltaKind uint8

const (
	ScrollLine  ScrollDeltaKind = 0
	ScrollPixel ScrollDeltaKind = 1
)

// ScrollDelta is a scroll amount in either lines or pixels.
type ScrollDelta struct {
	Kind  ScrollDeltaKind
	Value [2]float32
}

type PointerScrollData struct {
	WindowID uint32
	Delta    ScrollDelta
	Phase    TouchPhase
}

type PointerTouchData struct {
	WindowID  uint32
	PointerID uint64
	Phase     TouchPhase
	Position  [2]float32
	Pressure  *float32 // nil when the device does not report force
}

type PointerPinchData struct {
	WindowID uint32
	Delta    float64
	Phase    TouchPhase
}

type PointerPanData struct {
	WindowID uint32
	Delta    [2]float32
	Phase    TouchPhase
}

type PointerRotationData struct {
	WindowID uint32
	Delta    float32
	Phase    TouchPhase
}

type PointerDoubleTapData struct {
	WindowID uint32
}

// Keyboard event payloads.

type KeyboardInputData struct {
	WindowID  uint32
	Key       KeyCode
	State     ElementState
	Location  KeyLocation
	Repeat    bool
	Text      *string // nil when the key produces no text
	Modifiers ModifiersState
}

type KeyboardModifiersData struct {
	WindowID  uint32
	Modifiers ModifiersState
}

type ImeTargetData struct {
	WindowID uint32
}

type ImePreeditData struct {
	WindowID    uint32
	Text        string
	CursorRange *[2]uint32 // nil when the IME reports no cursor
}

type ImeCommitData struct {
	WindowID uint32
	Text     string
}

// Gamepad event payloads.

type GamepadConnectedData struct {
	GamepadID uint32
	Name      string
}

type GamepadTargetData struct {
	GamepadID uint32
}

type GamepadButtonData struct {
	GamepadID uint32
	Button    GamepadButton
	State     ElementState
	Value     float32 // 0.0-1.0 for analog triggers
}

type GamepadAxisData struct {
	GamepadID uint32
	Axis      GamepadAxis
	Value     float32 // -1.0 to 1.0 sticks, 0.0 to 1.0 triggers
}

// Joystick event payloads.

type JoystickConnectedData struct {
	JoystickID uint32
	Name       string
	AxesCount  uint32
	Buttons    uint32
	Hats       uint32
}

type JoystickTargetData struct {
	JoystickID uint32
}

type JoystickButtonData struct {
	JoystickID  uint32
	ButtonIndex uint32
	State       ElementState
}

type JoystickAxisData struct {
	JoystickID uint32
	AxisIndex  uint32
	Value      float32
}

type JoystickHatData struct {
	JoystickID uint32
	HatIndex   uint32
	Position   HatPosition
}

// Event is one decoded engine event: an outer category tag, an inner kind,
// and the kind's typed payload. ID is zero for spontaneous events and is
// reserved for future correlated notifications.
type Event struct {
	ID       uint64
	Category EventCategory
	Kind     uint8
	Data     any
}

// Event encoding errors.
var (
	ErrUnknownEventCategory = errors.New("protocol: unknown event category")
	ErrUnknownEventKind     = errors.New("protocol: unknown event kind")
	ErrInvalidEventData     = errors.New("protocol: event data does not match kind")
)

// EncodeEvent encodes a single event to bytes.
func EncodeEvent(ev *Event) ([]byte, error) {
	enc := NewEncoder()
	if err := EncodeEventTo(enc, ev); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// EncodeEventTo encodes an event using the provided encoder.
func EncodeEventTo(enc *Encoder, ev *Event) error {
	enc.WriteUvarint(ev.ID)
	enc.WriteByte(byte(ev.Category))
	enc.WriteByte(ev.Kind)

	switch ev.Category {
	case CategoryWindow:
		return encodeWindowEvent(enc, ev)
	case CategoryPointer:
		return encodePointerEvent(enc, ev)
	case CategoryKeyboard:
		return encodeKeyboardEvent(enc, ev)
	case CategoryGamepad:
		return encodeGamepadEvent(enc, ev)
	case CategoryJoystick:
		return encodeJoystickEvent(enc, ev)
	case CategorySystem:
		// System events carry no payload.
		switch ev.Kind {
		case SystemResumed, SystemSuspended, SystemMemoryWarning, SystemExiting:
			return nil
		}
		return ErrUnknownEventKind
	default:
		return ErrUnknownEventCategory
	}
}

func encodeWindowEvent(enc *Encoder, ev *Event) error {
	switch ev.Kind {
	case WindowCreated:
		d, ok := ev.Data.(*WindowCreatedData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
	case WindowResized:
		d, ok := ev.Data.(*WindowResizedData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteUint32(d.Width)
		enc.WriteUint32(d.Height)
	case WindowMoved:
		d, ok := ev.Data.(*WindowMovedData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteIVec2(d.Position)
	case WindowCloseRequested, WindowDestroyed, WindowRedrawRequested, WindowFileHoverCancelled:
		d, ok := ev.Data.(*WindowTargetData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
	case WindowFocused:
		d, ok := ev.Data.(*WindowFocusedData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteBool(d.Focused)
	case WindowScaleFactorChanged:
		d, ok := ev.Data.(*WindowScaleFactorData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteFloat64(d.ScaleFactor)
		enc.WriteUint32(d.NewWidth)
		enc.WriteUint32(d.NewHeight)
	case WindowOccluded:
		d, ok := ev.Data.(*WindowOccludedData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteBool(d.Occluded)
	case WindowFileDropped, WindowFileHovered:
		d, ok := ev.Data.(*WindowFileData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteString(d.Path)
	case WindowThemeChanged:
		d, ok := ev.Data.(*WindowThemeData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteBool(d.DarkMode)
	default:
		return ErrUnknownEventKind
	}
	return nil
}

func encodePointerEvent(enc *Encoder, ev *Event) error {
	switch ev.Kind {
	case PointerMoved:
		d, ok := ev.Data.(*PointerMovedData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteByte(byte(d.PointerType))
		enc.WriteUvarint(d.PointerID)
		enc.WriteVec2(d.Position)
	case PointerEntered, PointerLeft:
		d, ok := ev.Data.(*PointerCrossData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteByte(byte(d.PointerType))
		enc.WriteUvarint(d.PointerID)
	case PointerButton:
		d, ok := ev.Data.(*PointerButtonData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteByte(byte(d.PointerType))
		enc.WriteUvarint(d.PointerID)
		enc.WriteByte(byte(d.Button))
		enc.WriteByte(byte(d.State))
		enc.WriteVec2(d.Position)
	case PointerScroll:
		d, ok := ev.Data.(*PointerScrollData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteByte(byte(d.Delta.Kind))
		enc.WriteVec2(d.Delta.Value)
		enc.WriteByte(byte(d.Phase))
	case PointerTouch:
		d, ok := ev.Data.(*PointerTouchData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteUvarint(d.PointerID)
		enc.WriteByte(byte(d.Phase))
		enc.WriteVec2(d.Position)
		if d.Pressure != nil {
			enc.WriteBool(true)
			enc.WriteFloat32(*d.Pressure)
		} else {
			enc.WriteBool(false)
		}
	case PointerPinch:
		d, ok := ev.Data.(*PointerPinchData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteFloat64(d.Delta)
		enc.WriteByte(byte(d.Phase))
	case PointerPan:
		d, ok := ev.Data.(*PointerPanData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteVec2(d.Delta)
		enc.WriteByte(byte(d.Phase))
	case PointerRotation:
		d, ok := ev.Data.(*PointerRotationData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteFloat32(d.Delta)
		enc.WriteByte(byte(d.Phase))
	case PointerDoubleTap:
		d, ok := ev.Data.(*PointerDoubleTapData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
	default:
		return ErrUnknownEventKind
	}
	return nil
}

func encodeKeyboardEvent(enc *Encoder, ev *Event) error {
	switch ev.Kind {
	case KeyboardInput:
		d, ok := ev.Data.(*KeyboardInputData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteUint16(uint16(d.Key))
		enc.WriteByte(byte(d.State))
		enc.WriteByte(byte(d.Location))
		enc.WriteBool(d.Repeat)
		if d.Text != nil {
			enc.WriteBool(true)
			enc.WriteString(*d.Text)
		} else {
			enc.WriteBool(false)
		}
		enc.WriteByte(byte(d.Modifiers.Bits()))
	case KeyboardModifiersChanged:
		d, ok := ev.Data.(*KeyboardModifiersData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteByte(byte(d.Modifiers.Bits()))
	case KeyboardImeEnabled, KeyboardImeDisabled:
		d, ok := ev.Data.(*ImeTargetData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
	case KeyboardImePreedit:
		d, ok := ev.Data.(*ImePreeditData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteString(d.Text)
		if d.CursorRange != nil {
			enc.WriteBool(true)
			enc.WriteUvarint(uint64(d.CursorRange[0]))
			enc.WriteUvarint(uint64(d.CursorRange[1]))
		} else {
			enc.WriteBool(false)
		}
	case KeyboardImeCommit:
		d, ok := ev.Data.(*ImeCommitData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.WindowID)
		enc.WriteString(d.Text)
	default:
		return ErrUnknownEventKind
	}
	return nil
}

func encodeGamepadEvent(enc *Encoder, ev *Event) error {
	switch ev.Kind {
	case GamepadConnected:
		d, ok := ev.Data.(*GamepadConnectedData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.GamepadID)
		enc.WriteString(d.Name)
	case GamepadDisconnected:
		d, ok := ev.Data.(*GamepadTargetData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.GamepadID)
	case GamepadButtonMoved:
		d, ok := ev.Data.(*GamepadButtonData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.GamepadID)
		enc.WriteByte(byte(d.Button))
		enc.WriteByte(byte(d.State))
		enc.WriteFloat32(d.Value)
	case GamepadAxisMoved:
		d, ok := ev.Data.(*GamepadAxisData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.GamepadID)
		enc.WriteByte(byte(d.Axis))
		enc.WriteFloat32(d.Value)
	default:
		return ErrUnknownEventKind
	}
	return nil
}

func encodeJoystickEvent(enc *Encoder, ev *Event) error {
	switch ev.Kind {
	case JoystickConnected:
		d, ok := ev.Data.(*JoystickConnectedData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.JoystickID)
		enc.WriteString(d.Name)
		enc.WriteUint32(d.AxesCount)
		enc.WriteUint32(d.Buttons)
		enc.WriteUint32(d.Hats)
	case JoystickDisconnected:
		d, ok := ev.Data.(*JoystickTargetData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.JoystickID)
	case JoystickButtonMoved:
		d, ok := ev.Data.(*JoystickButtonData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.JoystickID)
		enc.WriteUint32(d.ButtonIndex)
		enc.WriteByte(byte(d.State))
	case JoystickAxisMoved:
		d, ok := ev.Data.(*JoystickAxisData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.JoystickID)
		enc.WriteUint32(d.AxisIndex)
		enc.WriteFloat32(d.Value)
	case JoystickHatMoved:
		d, ok := ev.Data.(*JoystickHatData)
		if !ok {
			return ErrInvalidEventData
		}
		enc.WriteUint32(d.JoystickID)
		enc.WriteUint32(d.HatIndex)
		enc.WriteByte(byte(d.Position))
	default:
		return ErrUnknownEventKind
	}
	return nil
}

// DecodeEvent decodes a single event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	return DecodeEventFrom(NewDecoder(data))
}

// DecodeEventFrom decodes an event from a decoder. Unrecognized categories
// or kinds yield an error; batch decoding turns that into a skip.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	id, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	catByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	kind, err := d.ReadByte()
	if err != nil {
		return nil, err
	}

	ev := &Event{ID: id, Category: EventCategory(catByte), Kind: kind}

	switch ev.Category {
	case CategoryWindow:
		err = decodeWindowEvent(d, ev)
	case CategoryPointer:
		err = decodePointerEvent(d, ev)
	case CategoryKeyboard:
		err = decodeKeyboardEvent(d, ev)
	case CategoryGamepad:
		err = decodeGamepadEvent(d, ev)
	case CategoryJoystick:
		err = decodeJoystickEvent(d, ev)
	case CategorySystem:
		switch kind {
		case SystemResumed, SystemSuspended, SystemMemoryWarning, SystemExiting:
		default:
			err = ErrUnknownEventKind
		}
	default:
		err = ErrUnknownEventCategory
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func decodeWindowEvent(d *Decoder, ev *Event) error {
	windowID, err := d.ReadUint32()
	if err != nil {
		return err
	}

	switch ev.Kind {
	case WindowCreated:
		ev.Data = &WindowCreatedData{WindowID: windowID}
	case WindowResized:
		w, err := d.ReadUint32()
		if err != nil {
			return err
		}
		h, err := d.ReadUint32()
		if err != nil {
			return err
		}
		ev.Data = &WindowResizedData{WindowID: windowID, Width: w, Height: h}
	case WindowMoved:
		pos, err := d.ReadIVec2()
		if err != nil {
			return err
		}
		ev.Data = &WindowMovedData{WindowID: windowID, Position: pos}
	case WindowCloseRequested, WindowDestroyed, WindowRedrawRequested, WindowFileHoverCancelled:
		ev.Data = &WindowTargetData{WindowID: windowID}
	case WindowFocused:
		focused, err := d.ReadBool()
		if err != nil {
			return err
		}
		ev.Data = &WindowFocusedData{WindowID: windowID, Focused: focused}
	case WindowScaleFactorChanged:
		sf, err := d.ReadFloat64()
		if err != nil {
			return err
		}
		w, err := d.ReadUint32()
		if err != nil {
			return err
		}
		h, err := d.ReadUint32()
		if err != nil {
			return err
		}
		ev.Data = &WindowScaleFactorData{WindowID: windowID, ScaleFactor: sf, NewWidth: w, NewHeight: h}
	case WindowOccluded:
		occluded, err := d.ReadBool()
		if err != nil {
			return err
		}
		ev.Data = &WindowOccludedData{WindowID: windowID, Occluded: occluded}
	case WindowFileDropped, WindowFileHovered:
		path, err := d.ReadString()
		if err != nil {
			return err
		}
		ev.Data = &WindowFileData{WindowID: windowID, Path: path}
	case WindowThemeChanged:
		dark, err := d.ReadBool()
		if err != nil {
			return err
		}
		ev.Data = &WindowThemeData{WindowID: windowID, DarkMode: dark}
	default:
		return ErrUnknownEventKind
	}
	return nil
}

func decodePointerEvent(d *Decoder, ev *Event) error {
	windowID, err := d.ReadUint32()
	if err != nil {
		return err
	}

	switch ev.Kind {
	case PointerMoved:
		pt, err := d.ReadByte()
		if err != nil {
			return err
		}
		pid, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		pos, err := d.ReadVec2()
		if err != nil {
			return err
		}
		ev.Data = &PointerMovedData{WindowID: windowID, PointerType: PointerType(pt), PointerID: pid, Position: pos}
	case PointerEntered, PointerLeft:
		pt, err := d.ReadByte()
		if err != nil {
			return err
		}
		pid, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		ev.Data = &PointerCrossData{WindowID: windowID, PointerType: PointerType(pt), PointerID: pid}
	case PointerButton:
		pt, err := d.ReadByte()
		if err != nil {
			return err
		}
		pid, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		button, err := d.ReadByte()
		if err != nil {
			return err
		}
		state, err := d.ReadByte()
		if err != nil {
			return err
		}
		pos, err := d.ReadVec2()
		if err != nil {
			return err
		}
		ev.Data = &PointerButtonData{
			WindowID:    windowID,
			PointerType: PointerType(pt),
			PointerID:   pid,
			Button:      MouseButton(button),
			State:       ElementState(state),
			Position:    pos,
		}
	case PointerScroll:
		kind, err := d.ReadByte()
		if err != nil {
			return err
		}
		value, err := d.ReadVec2()
		if err != nil {
			return err
		}
		phase, err := d.ReadByte()
		if err != nil {
			return err
		}
		ev.Data = &PointerScrollData{
			WindowID: windowID,
			Delta:    ScrollDelta{Kind: ScrollDeltaKind(kind), Value: value},
			Phase:    TouchPhase(phase),
		}
	case PointerTouch:
		pid, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		phase, err := d.ReadByte()
		if err != nil {
			return err
		}
		pos, err := d.ReadVec2()
		if err != nil {
			return err
		}
		hasPressure, err := d.ReadBool()
		if err != nil {
			return err
		}
		data := &PointerTouchData{WindowID: windowID, PointerID: pid, Phase: TouchPhase(phase), Position: pos}
		if hasPressure {
			p, err := d.ReadFloat32()
			if err != nil {
				return err
			}
			data.Pressure = &p
		}
		ev.Data = data
	case PointerPinch:
		delta, err := d.ReadFloat64()
		if err != nil {
			return err
		}
		phase, err := d.ReadByte()
		if err != nil {
			return err
		}
		ev.Data = &PointerPinchData{WindowID: windowID, Delta: delta, Phase: TouchPhase(phase)}
	case PointerPan:
		delta, err := d.ReadVec2()
		if err != nil {
			return err
		}
		phase, err := d.ReadByte()
		if err != nil {
			return err
		}
		ev.Data = &PointerPanData{WindowID: windowID, Delta: delta, Phase: TouchPhase(phase)}
	case PointerRotation:
		delta, err := d.ReadFloat32()
		if err != nil {
			return err
		}
		phase, err := d.ReadByte()
		if err != nil {
			return err
		}
		ev.Data = &PointerRotationData{WindowID: windowID, Delta: delta, Phase: TouchPhase(phase)}
	case PointerDoubleTap:
		ev.Data = &PointerDoubleTapData{WindowID: windowID}
	default:
		return ErrUnknownEventKind
	}
	return nil
}

func decodeKeyboardEvent(d *Decoder, ev *Event) error {
	windowID, err := d.ReadUint32()
	if err != nil {
		return err
	}

	switch ev.Kind {
	case KeyboardInput:
		key, err := d.ReadUint16()
		if err != nil {
			return err
		}
		state, err := d.ReadByte()
		if err != nil {
			return err
		}
		location, err := d.ReadByte()
		if err != nil {
			return err
		}
		repeat, err := d.ReadBool()
		if err != nil {
			return err
		}
		hasText, err := d.ReadBool()
		if err != nil {
			return err
		}
		data := &KeyboardInputData{
			WindowID: windowID,
			Key:      KeyCode(key),
			State:    ElementState(state),
			Location: KeyLocation(location),
			Repeat:   repeat,
		}
		if hasText {
			text, err := d.ReadString()
			if err != nil {
				return err
			}
			data.Text = &text
		}
		mods, err := d.ReadByte()
		if err != nil {
			return err
		}
		data.Modifiers = ModifiersFromBits(Modifiers(mods))
		ev.Data = data
	case KeyboardModifiersChanged:
		mods, err := d.ReadByte()
		if err != nil {
			return err
		}
		ev.Data = &KeyboardModifiersData{WindowID: windowID, Modifiers: ModifiersFromBits(Modifiers(mods))}
	case KeyboardImeEnabled, KeyboardImeDisabled:
		ev.Data = &ImeTargetData{WindowID: windowID}
	case KeyboardImePreedit:
		text, err := d.ReadString()
		if err != nil {
			return err
		}
		hasRange, err := d.ReadBool()
		if err != nil {
			return err
		}
		data := &ImePreeditData{WindowID: windowID, Text: text}
		if hasRange {
			start, err := d.ReadUvarint()
			if err != nil {
				return err
			}
			end, err := d.ReadUvarint()
			if err != nil {
				return err
			}
			data.CursorRange = &[2]uint32{uint32(start), uint32(end)}
		}
		ev.Data = data
	case KeyboardImeCommit:
		text, err := d.ReadString()
		if err != nil {
			return err
		}
		ev.Data = &ImeCommitData{WindowID: windowID, Text: text}
	default:
		return ErrUnknownEventKind
	}
	return nil
}

func decodeGamepadEvent(d *Decoder, ev *Event) error {
	gamepadID, err := d.ReadUint32()
	if err != nil {
		return err
	}

	switch ev.Kind {
	case GamepadConnected:
		name, err := d.ReadString()
		if err != nil {
			return err
		}
		ev.Data = &GamepadConnectedData{GamepadID: gamepadID, Name: name}
	case GamepadDisconnected:
		ev.Data = &GamepadTargetData{GamepadID: gamepadID}
	case GamepadButtonMoved:
		button, err := d.ReadByte()
		if err != nil {
			return err
		}
		state, err := d.ReadByte()
		if err != nil {
			return err
		}
		value, err := d.ReadFloat32()
		if err != nil {
			return err
		}
		ev.Data = &GamepadButtonData{
			GamepadID: gamepadID,
			Button:    GamepadButton(button),
			State:     ElementState(state),
			Value:     value,
		}
	case GamepadAxisMoved:
		axis, err := d.ReadByte()
		if err != nil {
			return err
		}
		value, err := d.ReadFloat32()
		if err != nil {
			return err
		}
		ev.Data = &GamepadAxisData{GamepadID: gamepadID, Axis: GamepadAxis(axis), Value: value}
	default:
		return ErrUnknownEventKind
	}
	return nil
}

func decodeJoystickEvent(d *Decoder, ev *Event) error {
	joystickID, err := d.ReadUint32()
	if err != nil {
		return err
	}

	switch ev.Kind {
	case JoystickConnected:
		name, err := d.ReadString()
		if err != nil {
			return err
		}
		axes, err := d.ReadUint32()
		if err != nil {
			return err
		}
		buttons, err := d.ReadUint32()
		if err != nil {
			return err
		}
		hats, err := d.ReadUint32()
		if err != nil {
			return err
		}
		ev.Data = &JoystickConnectedData{
			JoystickID: joystickID,
			Name:       name,
			AxesCount:  axes,
			Buttons:    buttons,
			Hats:       hats,
		}
	case JoystickDisconnected:
		ev.Data = &JoystickTargetData{JoystickID: joystickID}
	case JoystickButtonMoved:
		index, err := d.ReadUint32()
		if err != nil {
			return err
		}
		state, err := d.ReadByte()
		if err != nil {
			return err
		}
		ev.Data = &JoystickButtonData{JoystickID: joystickID, ButtonIndex: index, State: ElementState(state)}
	case JoystickAxisMoved:
		index, err := d.ReadUint32()
		if err != nil {
			return err
		}
		value, err := d.ReadFloat32()
		if err != nil {
			return err
		}
		ev.Data = &JoystickAxisData{JoystickID: joystickID, AxisIndex: index, Value: value}
	case JoystickHatMoved:
		index, err := d.ReadUint32()
		if err != nil {
			return err
		}
		pos, err := d.ReadByte()
		if err != nil {
			return err
		}
		ev.Data = &JoystickHatData{JoystickID: joystickID, HatIndex: index, Position: HatPosition(pos)}
	default:
		return ErrUnknownEventKind
	}
	return nil
}
