package protocol

import "errors"

// Response is the native core's answer to one command. It echoes the
// command's identifier and variant tag, carries a result code, and an
// optional variant payload.
type Response struct {
	ID      uint64
	Tag     CommandTag
	Code    ResultCode
	Payload any
}

// WindowCreateResult is the payload of a WindowCreate response.
type WindowCreateResult struct {
	WindowID uint32
}

// ErrUnknownResponseTag reports a response variant this build does not know.
var ErrUnknownResponseTag = errors.New("protocol: unknown response tag")

// OK reports whether the response denotes success.
func (r *Response) OK() bool {
	return r.Code.OK()
}

// NewAck builds a success response with no payload.
func NewAck(id uint64, tag CommandTag) *Response {
	return &Response{ID: id, Tag: tag, Code: ResultSuccess}
}

// NewErrorResponse builds a failed response carrying code.
func NewErrorResponse(id uint64, tag CommandTag, code ResultCode) *Response {
	return &Response{ID: id, Tag: tag, Code: code}
}

// EncodeResponse encodes a single response to bytes.
func EncodeResponse(r *Response) ([]byte, error) {
	enc := NewEncoder()
	if err := EncodeResponseTo(enc, r); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// EncodeResponseTo encodes a response using the provided encoder.
func EncodeResponseTo(enc *Encoder, r *Response) error {
	enc.WriteUvarint(r.ID)
	enc.WriteByte(byte(r.Tag))
	enc.WriteUint32(uint32(r.Code))

	switch r.Tag {
	case CmdWindowCreate:
		// Failed creates carry no payload.
		if !r.Code.OK() {
			return nil
		}
		p, ok := r.Payload.(*WindowCreateResult)
		if !ok {
			return ErrInvalidArgs
		}
		enc.WriteUint32(p.WindowID)

	case CmdWindowClose, CmdWindowSetTitle, CmdWindowSetSize,
		CmdWindowSetPosition, CmdWindowSetState, CmdWindowSetResizable,
		CmdWindowSetAlwaysOnTop, CmdWindowSetCursorIcon,
		CmdWindowSetCursorVisible, CmdWindowRequestAttention,
		CmdWindowRequestRedraw:
		// Bare acknowledgment, no payload.

	default:
		return ErrUnknownResponseTag
	}
	return nil
}

// DecodeResponse decodes a single response from bytes.
func DecodeResponse(data []byte) (*Response, error) {
	return DecodeResponseFrom(NewDecoder(data))
}

// DecodeResponseFrom decodes a response from a decoder.
func DecodeResponseFrom(d *Decoder) (*Response, error) {
	id, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	tagByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	code, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}

	r := &Response{ID: id, Tag: CommandTag(tagByte), Code: ResultCode(code)}

	switch r.Tag {
	case CmdWindowCreate:
		if !r.Code.OK() {
			return r, nil
		}
		p := &WindowCreateResult{}
		if p.WindowID, err = d.ReadUint32(); err != nil {
			return nil, err
		}
		r.Payload = p

	case CmdWindowClose, CmdWindowSetTitle, CmdWindowSetSize,
		CmdWindowSetPosition, CmdWindowSetState, CmdWindowSetResizable,
		CmdWindowSetAlwaysOnTop, CmdWindowSetCursorIcon,
		CmdWindowSetCursorVisible, CmdWindowRequestAttention,
		CmdWindowRequestRedraw:
		// No payload.

	default:
		return nil, ErrUnknownResponseTag
	}

	return r, nil
}
