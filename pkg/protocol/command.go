package protocol

import "errors"

// CommandTag identifies the command variant.
type CommandTag uint8

const (
	CmdWindowCreate           CommandTag = 0x01
	CmdWindowClose            CommandTag = 0x02
	CmdWindowSetTitle         CommandTag = 0x03
	CmdWindowSetSize          CommandTag = 0x04
	CmdWindowSetPosition      CommandTag = 0x05
	CmdWindowSetState         CommandTag = 0x06
	CmdWindowSetResizable     CommandTag = 0x07
	CmdWindowSetAlwaysOnTop   CommandTag = 0x08
	CmdWindowSetCursorIcon    CommandTag = 0x09
	CmdWindowSetCursorVisible CommandTag = 0x0A
	CmdWindowRequestAttention CommandTag = 0x0B
	CmdWindowRequestRedraw    CommandTag = 0x0C
)

// String returns the string representation of the command tag.
func (ct CommandTag) String() string {
	switch ct {
	case CmdWindowCreate:
		return "WindowCreate"
	case CmdWindowClose:
		return "WindowClose"
	case CmdWindowSetTitle:
		return "WindowSetTitle"
	case CmdWindowSetSize:
		return "WindowSetSize"
	case CmdWindowSetPosition:
		return "WindowSetPosition"
	case CmdWindowSetState:
		return "WindowSetState"
	case CmdWindowSetResizable:
		return "WindowSetResizable"
	case CmdWindowSetAlwaysOnTop:
		return "WindowSetAlwaysOnTop"
	case CmdWindowSetCursorIcon:
		return "WindowSetCursorIcon"
	case CmdWindowSetCursorVisible:
		return "WindowSetCursorVisible"
	case CmdWindowRequestAttention:
		return "WindowRequestAttention"
	case CmdWindowRequestRedraw:
		return "WindowRequestRedraw"
	default:
		return "Unknown"
	}
}

// Command argument types.

// WindowCreateArgs describes a window to create.
type WindowCreateArgs struct {
	Title        string
	Size         [2]uint32 // width, height in physical pixels
	Position     [2]int32
	Borderless   bool
	Resizable    bool
	AlwaysOnTop  bool
	InitialState WindowStateKind
}

// WindowTargetArgs addresses an existing window with no further data.
// Used by WindowClose and WindowRequestRedraw.
type WindowTargetArgs struct {
	WindowID uint32
}

// WindowSetTitleArgs changes a window title.
type WindowSetTitleArgs struct {
	WindowID uint32
	Title    string
}

// WindowSetSizeArgs resizes a window.
type WindowSetSizeArgs struct {
	WindowID uint32
	Size     [2]uint32
}

// WindowSetPositionArgs moves a window.
type WindowSetPositionArgs struct {
	WindowID uint32
	Position [2]int32
}

// WindowSetStateArgs changes the presentation state of a window.
type WindowSetStateArgs struct {
	WindowID uint32
	State    WindowStateKind
}

// WindowSetResizableArgs toggles user resizing.
type WindowSetResizableArgs struct {
	WindowID  uint32
	Resizable bool
}

// WindowSetAlwaysOnTopArgs toggles the always-on-top hint.
type WindowSetAlwaysOnTopArgs struct {
	WindowID    uint32
	AlwaysOnTop bool
}

// WindowSetCursorIconArgs changes the cursor shape over a window.
type WindowSetCursorIconArgs struct {
	WindowID uint32
	Icon     CursorIcon
}

// WindowSetCursorVisibleArgs shows or hides the cursor over a window.
type WindowSetCursorVisibleArgs struct {
	WindowID uint32
	Visible  bool
}

// WindowRequestAttentionArgs asks the platform to flag the window for user
// attention. Critical selects the platform's urgent variant.
type WindowRequestAttentionArgs struct {
	WindowID uint32
	Critical bool
}

// Command is one host request: a variant tag, a host-assigned identifier
// unique within its batch, and the variant's typed arguments.
type Command struct {
	ID   uint64
	Tag  CommandTag
	Args any
}

// Command encoding errors.
var (
	ErrUnknownCommandTag = errors.New("protocol: unknown command tag")
	ErrInvalidArgs       = errors.New("protocol: command args do not match tag")
)

// EncodeCommand encodes a single command to bytes.
func EncodeCommand(c *Command) ([]byte, error) {
	enc := NewEncoder()
	if err := EncodeCommandTo(enc, c); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// EncodeCommandTo encodes a command using the provided encoder.
func EncodeCommandTo(enc *Encoder, c *Command) error {
	enc.WriteUvarint(c.ID)
	enc.WriteByte(byte(c.Tag))

	switch c.Tag {
	case CmdWindowCreate:
		a, ok := c.Args.(*WindowCreateArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteString(a.Title)
		enc.WriteUVec2(a.Size)
		enc.WriteIVec2(a.Position)
		enc.WriteBool(a.Borderless)
		enc.WriteBool(a.Resizable)
		enc.WriteBool(a.AlwaysOnTop)
		enc.WriteByte(byte(a.InitialState))

	case CmdWindowClose, CmdWindowRequestRedraw:
		a, ok := c.Args.(*WindowTargetArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)

	case CmdWindowSetTitle:
		a, ok := c.Args.(*WindowSetTitleArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)
		enc.WriteString(a.Title)

	case CmdWindowSetSize:
		a, ok := c.Args.(*WindowSetSizeArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)
		enc.WriteUVec2(a.Size)

	case CmdWindowSetPosition:
		a, ok := c.Args.(*WindowSetPositionArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)
		enc.WriteIVec2(a.Position)

	case CmdWindowSetState:
		a, ok := c.Args.(*WindowSetStateArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)
		enc.WriteByte(byte(a.State))

	case CmdWindowSetResizable:
		a, ok := c.Args.(*WindowSetResizableArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)
		enc.WriteBool(a.Resizable)

	case CmdWindowSetAlwaysOnTop:
		a, ok := c.Args.(*WindowSetAlwaysOnTopArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)
		enc.WriteBool(a.AlwaysOnTop)

	case CmdWindowSetCursorIcon:
		a, ok := c.Args.(*WindowSetCursorIconArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)
		enc.WriteByte(byte(a.Icon))

	case CmdWindowSetCursorVisible:
		a, ok := c.Args.(*WindowSetCursorVisibleArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)
		enc.WriteBool(a.Visible)

	case CmdWindowRequestAttention:
		a, ok := c.Args.(*WindowRequestAttentionArgs)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(a.WindowID)
		enc.WriteBool(a.Critical)

	default:
		return ErrUnknownCommandTag
	}
	return nil
}

// DecodeCommand decodes a single command from bytes.
func DecodeCommand(data []byte) (*Command, error) {
	return DecodeCommandFrom(NewDecoder(data))
}

// DecodeCommandFrom decodes a command from a decoder. An unrecognized tag
// yields ErrUnknownCommandTag; batch decoding turns that into a skip.
func DecodeCommandFrom(d *Decoder) (*Command, error) {
	id, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	tagByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}

	c := &Command{ID: id, Tag: CommandTag(tagByte)}

	switch c.Tag {
	case CmdWindowCreate:
		a := &WindowCreateArgs{}
		if a.Title, err = d.ReadString(); err != nil {
			return nil, err
		}
		if a.Size, err = d.ReadUVec2(); err != nil {
			return nil, err
		}
		if a.Position, err = d.ReadIVec2(); err != nil {
			return nil, err
		}
		if a.Borderless, err = d.ReadBool(); err != nil {
			return nil, err
		}
		if a.Resizable, err = d.ReadBool(); err != nil {
			return nil, err
		}
		if a.AlwaysOnTop, err = d.ReadBool(); err != nil {
			return nil, err
		}
		state, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		a.InitialState = WindowStateKind(state)
		c.Args = a

	case CmdWindowClose, CmdWindowRequestRedraw:
		a := &WindowTargetArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		c.Args = a

	case CmdWindowSetTitle:
		a := &WindowSetTitleArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		if a.Title, err = d.ReadString(); err != nil {
			return nil, err
		}
		c.Args = a

	case CmdWindowSetSize:
		a := &WindowSetSizeArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		if a.Size, err = d.ReadUVec2(); err != nil {
			return nil, err
		}
		c.Args = a

	case CmdWindowSetPosition:
		a := &WindowSetPositionArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		if a.Position, err = d.ReadIVec2(); err != nil {
			return nil, err
		}
		c.Args = a

	case CmdWindowSetState:
		a := &WindowSetStateArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		state, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		a.State = WindowStateKind(state)
		c.Args = a

	case CmdWindowSetResizable:
		a := &WindowSetResizableArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		if a.Resizable, err = d.ReadBool(); err != nil {
			return nil, err
		}
		c.Args = a

	case CmdWindowSetAlwaysOnTop:
		a := &WindowSetAlwaysOnTopArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		if a.AlwaysOnTop, err = d.ReadBool(); err != nil {
			return nil, err
		}
		c.Args = a

	case CmdWindowSetCursorIcon:
		a := &WindowSetCursorIconArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		icon, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		a.Icon = CursorIcon(icon)
		c.Args = a

	case CmdWindowSetCursorVisible:
		a := &WindowSetCursorVisibleArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		if a.Visible, err = d.ReadBool(); err != nil {
			return nil, err
		}
		c.Args = a

	case CmdWindowRequestAttention:
		a := &WindowRequestAttentionArgs{}
		if a.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		if a.Critical, err = d.ReadBool(); err != nil {
			return nil, err
		}
		c.Args = a

	default:
		return nil, ErrUnknownCommandTag
	}

	return c, nil
}
