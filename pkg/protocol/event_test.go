package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func floatPtr(v float32) *float32 { return &v }
func strPtr(s string) *string     { return &s }

func sampleEvents() []*Event {
	return []*Event{
		{Category: CategoryWindow, Kind: WindowCreated, Data: &WindowCreatedData{WindowID: 1}},
		{Category: CategoryWindow, Kind: WindowResized, Data: &WindowResizedData{WindowID: 1, Width: 1280, Height: 720}},
		{Category: CategoryWindow, Kind: WindowMoved, Data: &WindowMovedData{WindowID: 1, Position: [2]int32{-5, 30}}},
		{Category: CategoryWindow, Kind: WindowCloseRequested, Data: &WindowTargetData{WindowID: 1}},
		{Category: CategoryWindow, Kind: WindowFocused, Data: &WindowFocusedData{WindowID: 1, Focused: true}},
		{Category: CategoryWindow, Kind: WindowScaleFactorChanged, Data: &WindowScaleFactorData{WindowID: 1, ScaleFactor: 2.0, NewWidth: 2560, NewHeight: 1440}},
		{Category: CategoryWindow, Kind: WindowOccluded, Data: &WindowOccludedData{WindowID: 1, Occluded: true}},
		{Category: CategoryWindow, Kind: WindowFileDropped, Data: &WindowFileData{WindowID: 1, Path: "/tmp/scene.gltf"}},
		{Category: CategoryWindow, Kind: WindowThemeChanged, Data: &WindowThemeData{WindowID: 1, DarkMode: true}},

		{Category: CategoryPointer, Kind: PointerMoved, Data: &PointerMovedData{WindowID: 1, PointerType: PointerTypeMouse, PointerID: 0, Position: [2]float32{640.5, 360.25}}},
		{Category: CategoryPointer, Kind: PointerEntered, Data: &PointerCrossData{WindowID: 1, PointerType: PointerTypePen, PointerID: 3}},
		{Category: CategoryPointer, Kind: PointerButton, Data: &PointerButtonData{WindowID: 1, PointerType: PointerTypeMouse, Button: ButtonLeft, State: StatePressed, Position: [2]float32{10, 20}}},
		{Category: CategoryPointer, Kind: PointerScroll, Data: &PointerScrollData{WindowID: 1, Delta: ScrollDelta{Kind: ScrollLine, Value: [2]float32{0, -3}}, Phase: PhaseMoved}},
		{Category: CategoryPointer, Kind: PointerScroll, Data: &PointerScrollData{WindowID: 1, Delta: ScrollDelta{Kind: ScrollPixel, Value: [2]float32{0, -120.5}}, Phase: PhaseEnded}},
		{Category: CategoryPointer, Kind: PointerTouch, Data: &PointerTouchData{WindowID: 1, PointerID: 9, Phase: PhaseStarted, Position: [2]float32{100, 200}, Pressure: floatPtr(0.75)}},
		{Category: CategoryPointer, Kind: PointerTouch, Data: &PointerTouchData{WindowID: 1, PointerID: 9, Phase: PhaseEnded, Position: [2]float32{100, 200}}},
		{Category: CategoryPointer, Kind: PointerPinch, Data: &PointerPinchData{WindowID: 1, Delta: 0.05, Phase: PhaseMoved}},
		{Category: CategoryPointer, Kind: PointerPan, Data: &PointerPanData{WindowID: 1, Delta: [2]float32{4, -2}, Phase: PhaseMoved}},
		{Category: CategoryPointer, Kind: PointerRotation, Data: &PointerRotationData{WindowID: 1, Delta: -1.5, Phase: PhaseMoved}},
		{Category: CategoryPointer, Kind: PointerDoubleTap, Data: &PointerDoubleTapData{WindowID: 1}},

		{Category: CategoryKeyboard, Kind: KeyboardInput, Data: &KeyboardInputData{WindowID: 1, Key: KeyA, State: StatePressed, Location: LocationStandard, Repeat: false, Text: strPtr("a"), Modifiers: ModifiersState{Shift: false}}},
		{Category: CategoryKeyboard, Kind: KeyboardInput, Data: &KeyboardInputData{WindowID: 1, Key: KeyShiftLeft, State: StatePressed, Location: LocationLeft, Modifiers: ModifiersState{Shift: true}}},
		{Category: CategoryKeyboard, Kind: KeyboardModifiersChanged, Data: &KeyboardModifiersData{WindowID: 1, Modifiers: ModifiersState{Ctrl: true, Alt: true}}},
		{Category: CategoryKeyboard, Kind: KeyboardImeEnabled, Data: &ImeTargetData{WindowID: 1}},
		{Category: CategoryKeyboard, Kind: KeyboardImePreedit, Data: &ImePreeditData{WindowID: 1, Text: "こん", CursorRange: &[2]uint32{0, 2}}},
		{Category: CategoryKeyboard, Kind: KeyboardImePreedit, Data: &ImePreeditData{WindowID: 1, Text: ""}},
		{Category: CategoryKeyboard, Kind: KeyboardImeCommit, Data: &ImeCommitData{WindowID: 1, Text: "こんにちは"}},

		{Category: CategoryGamepad, Kind: GamepadConnected, Data: &GamepadConnectedData{GamepadID: 0, Name: "Xbox Wireless Controller"}},
		{Category: CategoryGamepad, Kind: GamepadDisconnected, Data: &GamepadTargetData{GamepadID: 0}},
		{Category: CategoryGamepad, Kind: GamepadButtonMoved, Data: &GamepadButtonData{GamepadID: 0, Button: PadRightTrigger, State: StatePressed, Value: 0.62}},
		{Category: CategoryGamepad, Kind: GamepadAxisMoved, Data: &GamepadAxisData{GamepadID: 0, Axis: AxisLeftStickX, Value: -0.4}},

		{Category: CategoryJoystick, Kind: JoystickConnected, Data: &JoystickConnectedData{JoystickID: 2, Name: "Flight Stick", AxesCount: 6, Buttons: 12, Hats: 1}},
		{Category: CategoryJoystick, Kind: JoystickDisconnected, Data: &JoystickTargetData{JoystickID: 2}},
		{Category: CategoryJoystick, Kind: JoystickButtonMoved, Data: &JoystickButtonData{JoystickID: 2, ButtonIndex: 4, State: StateReleased}},
		{Category: CategoryJoystick, Kind: JoystickAxisMoved, Data: &JoystickAxisData{JoystickID: 2, AxisIndex: 3, Value: 0.99}},
		{Category: CategoryJoystick, Kind: JoystickHatMoved, Data: &JoystickHatData{JoystickID: 2, HatIndex: 0, Position: HatLeftUp}},

		{Category: CategorySystem, Kind: SystemResumed},
		{Category: CategorySystem, Kind: SystemSuspended},
		{Category: CategorySystem, Kind: SystemMemoryWarning},
		{Category: CategorySystem, Kind: SystemExiting},
	}
}

func TestEventRoundTrip(t *testing.T) {
	for _, ev := range sampleEvents() {
		data, err := EncodeEvent(ev)
		if err != nil {
			t.Fatalf("EncodeEvent(%s/%d) = %v", ev.Category, ev.Kind, err)
		}
		got, err := DecodeEvent(data)
		if err != nil {
			t.Fatalf("DecodeEvent(%s/%d) = %v", ev.Category, ev.Kind, err)
		}
		if !reflect.DeepEqual(got, ev) {
			t.Errorf("round trip %s/%d:\n got  %+v\n want %+v", ev.Category, ev.Kind, got, ev)
		}
	}
}

func TestEventOptionalFields(t *testing.T) {
	// Touch with no pressure decodes to a nil pointer, not zero.
	ev := &Event{Category: CategoryPointer, Kind: PointerTouch,
		Data: &PointerTouchData{WindowID: 1, PointerID: 2, Phase: PhaseMoved, Position: [2]float32{1, 2}}}
	data, err := EncodeEvent(ev)
	if err != nil {
		t.Fatalf("EncodeEvent() = %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() = %v", err)
	}
	if got.Data.(*PointerTouchData).Pressure != nil {
		t.Errorf("absent pressure decoded non-nil")
	}

	// Keyboard input with no text.
	ev = &Event{Category: CategoryKeyboard, Kind: KeyboardInput,
		Data: &KeyboardInputData{WindowID: 1, Key: KeyEscape, State: StatePressed}}
	data, err = EncodeEvent(ev)
	if err != nil {
		t.Fatalf("EncodeEvent() = %v", err)
	}
	got, err = DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() = %v", err)
	}
	if got.Data.(*KeyboardInputData).Text != nil {
		t.Errorf("absent text decoded non-nil")
	}
}

func TestDecodeEventUnknownCategory(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(0)
	e.WriteByte(0x7F)
	e.WriteByte(0x01)
	if _, err := DecodeEvent(e.Bytes()); !errors.Is(err, ErrUnknownEventCategory) {
		t.Errorf("DecodeEvent unknown category: err = %v; want ErrUnknownEventCategory", err)
	}
}

func TestDecodeEventUnknownKind(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(0)
	e.WriteByte(byte(CategorySystem))
	e.WriteByte(0x7F)
	if _, err := DecodeEvent(e.Bytes()); !errors.Is(err, ErrUnknownEventKind) {
		t.Errorf("DecodeEvent unknown kind: err = %v; want ErrUnknownEventKind", err)
	}
}

func TestEncodeEventWrongData(t *testing.T) {
	ev := &Event{Category: CategoryWindow, Kind: WindowResized, Data: &WindowCreatedData{WindowID: 1}}
	if _, err := EncodeEvent(ev); !errors.Is(err, ErrInvalidEventData) {
		t.Errorf("EncodeEvent mismatched data: err = %v; want ErrInvalidEventData", err)
	}
}

func TestKeyCodeString(t *testing.T) {
	if got := KeyA.String(); got != "KeyA" {
		t.Errorf("KeyA.String() = %q", got)
	}
	if got := KeyNumpadEnter.String(); got != "NumpadEnter" {
		t.Errorf("KeyNumpadEnter.String() = %q", got)
	}
	if got := KeyCode(60000).String(); got != "Unidentified" {
		t.Errorf("out-of-range KeyCode.String() = %q", got)
	}
}

func TestModifiersBits(t *testing.T) {
	m := ModifiersState{Shift: true, Meta: true}
	bits := m.Bits()
	if !bits.Has(ModShift) || !bits.Has(ModMeta) || bits.Has(ModCtrl) || bits.Has(ModAlt) {
		t.Errorf("Bits() = %04b", bits)
	}
	if got := ModifiersFromBits(bits); got != m {
		t.Errorf("ModifiersFromBits(Bits()) = %+v; want %+v", got, m)
	}
}
