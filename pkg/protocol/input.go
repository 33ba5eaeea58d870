package protocol

// Shared input enumerations. All discriminants are wire-stable: values are
// append-only and never reassigned.

// ElementState is the pressed/released state of a button or key.
type ElementState uint8

const (
	StateReleased ElementState = 0
	StatePressed  ElementState = 1
)

// String returns "Pressed" or "Released".
func (s ElementState) String() string {
	if s == StatePressed {
		return "Pressed"
	}
	return "Released"
}

// TouchPhase is the phase of a touch or gesture.
type TouchPhase uint8

const (
	PhaseStarted   TouchPhase = 0
	PhaseMoved     TouchPhase = 1
	PhaseEnded     TouchPhase = 2
	PhaseCancelled TouchPhase = 3
)

func (p TouchPhase) String() string {
	switch p {
	case PhaseStarted:
		return "Started"
	case PhaseMoved:
		return "Moved"
	case PhaseEnded:
		return "Ended"
	case PhaseCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// KeyLocation distinguishes physically duplicated keys.
type KeyLocation uint8

const (
	LocationStandard KeyLocation = 0
	LocationLeft     KeyLocation = 1
	LocationRight    KeyLocation = 2
	LocationNumpad   KeyLocation = 3
)

// PointerType unifies mouse, touch, and pen input.
type PointerType uint8

const (
	PointerTypeMouse PointerType = 0
	PointerTypeTouch PointerType = 1
	PointerTypePen   PointerType = 2
)

func (pt PointerType) String() string {
	switch pt {
	case PointerTypeMouse:
		return "Mouse"
	case PointerTypeTouch:
		return "Touch"
	case PointerTypePen:
		return "Pen"
	default:
		return "Unknown"
	}
}

// MouseButton identifies a pointer button. Values above ButtonForward are
// device-specific extra buttons passed through verbatim.
type MouseButton uint8

const (
	ButtonLeft    MouseButton = 0
	ButtonRight   MouseButton = 1
	ButtonMiddle  MouseButton = 2
	ButtonBack    MouseButton = 3
	ButtonForward MouseButton = 4
)

// Modifiers is the keyboard modifier bitmask.
type Modifiers uint8

const (
	ModShift Modifiers = 0x01
	ModCtrl  Modifiers = 0x02
	ModAlt   Modifiers = 0x04
	ModMeta  Modifiers = 0x08
)

// Has reports whether mod is set.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// GamepadButton follows the standard gamepad mapping. Values above
// PadDpadRight are controller-specific buttons passed through verbatim.
type GamepadButton uint8

const (
	// Face buttons
	PadSouth GamepadButton = 0 // A / Cross
	PadEast  GamepadButton = 1 // B / Circle
	PadWest  GamepadButton = 2 // X / Square
	PadNorth GamepadButton = 3 // Y / Triangle

	// Shoulder buttons
	PadLeftBumper   GamepadButton = 4
	PadRightBumper  GamepadButton = 5
	PadLeftTrigger  GamepadButton = 6
	PadRightTrigger GamepadButton = 7

	// Center buttons
	PadSelect GamepadButton = 8
	PadStart  GamepadButton = 9
	PadMode   GamepadButton = 10 // Guide / Home

	// Stick buttons
	PadLeftStick  GamepadButton = 11
	PadRightStick GamepadButton = 12

	// D-pad
	PadDpadUp    GamepadButton = 13
	PadDpadDown  GamepadButton = 14
	PadDpadLeft  GamepadButton = 15
	PadDpadRight GamepadButton = 16
)

// GamepadAxis identifies an analog axis. Values above AxisRightTrigger are
// controller-specific axes passed through verbatim.
type GamepadAxis uint8

const (
	AxisLeftStickX   GamepadAxis = 0
	AxisLeftStickY   GamepadAxis = 1
	AxisRightStickX  GamepadAxis = 2
	AxisRightStickY  GamepadAxis = 3
	AxisLeftTrigger  GamepadAxis = 4
	AxisRightTrigger GamepadAxis = 5
)

// HatPosition is a joystick hat/POV position.
type HatPosition uint8

const (
	HatCentered  HatPosition = 0
	HatUp        HatPosition = 1
	HatRightUp   HatPosition = 2
	HatRight     HatPosition = 3
	HatRightDown HatPosition = 4
	HatDown      HatPosition = 5
	HatLeftDown  HatPosition = 6
	HatLeft      HatPosition = 7
	HatLeftUp    HatPosition = 8
)

// WindowStateKind is the presentation state of a window.
type WindowStateKind uint8

const (
	WindowMinimized          WindowStateKind = 0
	WindowMaximized          WindowStateKind = 1
	WindowWindowed           WindowStateKind = 2
	WindowFullscreen         WindowStateKind = 3
	WindowWindowedFullscreen WindowStateKind = 4
)

func (w WindowStateKind) String() string {
	switch w {
	case WindowMinimized:
		return "Minimized"
	case WindowMaximized:
		return "Maximized"
	case WindowWindowed:
		return "Windowed"
	case WindowFullscreen:
		return "Fullscreen"
	case WindowWindowedFullscreen:
		return "WindowedFullscreen"
	default:
		return "Unknown"
	}
}

// CursorIcon names a platform cursor shape.
type CursorIcon uint8

const (
	CursorDefault    CursorIcon = 0
	CursorPointer    CursorIcon = 1
	CursorText       CursorIcon = 2
	CursorCrosshair  CursorIcon = 3
	CursorMove       CursorIcon = 4
	CursorGrab       CursorIcon = 5
	CursorGrabbing   CursorIcon = 6
	CursorNotAllowed CursorIcon = 7
	CursorWait       CursorIcon = 8
	CursorHelp       CursorIcon = 9
	CursorResizeEW   CursorIcon = 10
	CursorResizeNS   CursorIcon = 11
	CursorResizeNESW CursorIcon = 12
	CursorResizeNWSE CursorIcon = 13
)

// ModifiersState is the decoded modifier keys snapshot carried by keyboard
// events.
type ModifiersState struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// Bits packs the snapshot into the wire bitmask.
func (m ModifiersState) Bits() Modifiers {
	var b Modifiers
	if m.Shift {
		b |= ModShift
	}
	if m.Ctrl {
		b |= ModCtrl
	}
	if m.Alt {
		b |= ModAlt
	}
	if m.Meta {
		b |= ModMeta
	}
	return b
}

// ModifiersFromBits unpacks the wire bitmask.
func ModifiersFromBits(b Modifiers) ModifiersState {
	return ModifiersState{
		Shift: b.Has(ModShift),
		Ctrl:  b.Has(ModCtrl),
		Alt:   b.Has(ModAlt),
		Meta:  b.Has(ModMeta),
	}
}
