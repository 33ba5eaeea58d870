package protocol

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

func TestCommandBatchRoundTrip(t *testing.T) {
	cmds := []*Command{
		{ID: 1, Tag: CmdWindowCreate, Args: &WindowCreateArgs{Title: "w", Size: [2]uint32{640, 480}, Resizable: true, InitialState: WindowWindowed}},
		{ID: 2, Tag: CmdWindowSetTitle, Args: &WindowSetTitleArgs{WindowID: 1, Title: "renamed"}},
		{ID: 3, Tag: CmdWindowClose, Args: &WindowTargetArgs{WindowID: 1}},
	}
	data, err := EncodeCommandBatch(cmds)
	if err != nil {
		t.Fatalf("EncodeCommandBatch() = %v", err)
	}
	got, skipped, err := DecodeCommandBatch(data)
	if err != nil {
		t.Fatalf("DecodeCommandBatch() = %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d; want 0", skipped)
	}
	if !reflect.DeepEqual(got, cmds) {
		t.Errorf("batch round trip:\n got  %+v\n want %+v", got, cmds)
	}
}

func TestEmptyBatch(t *testing.T) {
	data, err := EncodeCommandBatch(nil)
	if err != nil {
		t.Fatalf("EncodeCommandBatch(nil) = %v", err)
	}
	got, skipped, err := DecodeCommandBatch(data)
	if err != nil || skipped != 0 || len(got) != 0 {
		t.Errorf("empty batch: got %d cmds, %d skipped, %v", len(got), skipped, err)
	}
}

// A batch holding a variant tag from a newer peer must decode the entries we
// do know and count the rest, never fail.
func TestBatchSkipsUnknownEntries(t *testing.T) {
	known := &Command{ID: 1, Tag: CmdWindowRequestRedraw, Args: &WindowTargetArgs{WindowID: 4}}
	knownBytes, err := EncodeCommand(known)
	if err != nil {
		t.Fatalf("EncodeCommand() = %v", err)
	}

	// Hand-build an entry with tag 0xEE and an opaque payload.
	unknown := NewEncoder()
	unknown.WriteUvarint(2)
	unknown.WriteByte(0xEE)
	unknown.WriteBytes([]byte{0xCA, 0xFE, 0xBA, 0xBE})

	batch := NewEncoder()
	batch.WriteUvarint(3)
	appendEntry(batch, unknown.Bytes())
	appendEntry(batch, knownBytes)
	appendEntry(batch, unknown.Bytes())

	got, skipped, err := DecodeCommandBatch(batch.Bytes())
	if err != nil {
		t.Fatalf("DecodeCommandBatch() = %v", err)
	}
	if skipped != 2 {
		t.Errorf("skipped = %d; want 2", skipped)
	}
	if len(got) != 1 || !reflect.DeepEqual(got[0], known) {
		t.Errorf("decoded = %+v; want the one known command", got)
	}
}

func TestEventBatchSkipsUnknownCategory(t *testing.T) {
	known := &Event{Category: CategorySystem, Kind: SystemResumed}
	knownBytes, err := EncodeEvent(known)
	if err != nil {
		t.Fatalf("EncodeEvent() = %v", err)
	}

	unknown := NewEncoder()
	unknown.WriteUvarint(0)
	unknown.WriteByte(0x7F) // category from the future
	unknown.WriteByte(0x01)

	batch := NewEncoder()
	batch.WriteUvarint(2)
	appendEntry(batch, knownBytes)
	appendEntry(batch, unknown.Bytes())

	got, skipped, err := DecodeEventBatch(batch.Bytes())
	if err != nil {
		t.Fatalf("DecodeEventBatch() = %v", err)
	}
	if skipped != 1 || len(got) != 1 {
		t.Errorf("got %d events, %d skipped; want 1, 1", len(got), skipped)
	}
}

func TestResponseBatchRoundTrip(t *testing.T) {
	rs := []*Response{
		{ID: 1, Tag: CmdWindowCreate, Code: ResultSuccess, Payload: &WindowCreateResult{WindowID: 9}},
		NewErrorResponse(2, CmdWindowSetSize, ResultEventLoopNotReady),
	}
	data, err := EncodeResponseBatch(rs)
	if err != nil {
		t.Fatalf("EncodeResponseBatch() = %v", err)
	}
	got, skipped, err := DecodeResponseBatch(data)
	if err != nil || skipped != 0 {
		t.Fatalf("DecodeResponseBatch() = %d skipped, %v", skipped, err)
	}
	if !reflect.DeepEqual(got, rs) {
		t.Errorf("batch round trip:\n got  %+v\n want %+v", got, rs)
	}
}

func TestBatchTruncatedEntry(t *testing.T) {
	// Entry declares 100 bytes but the buffer ends.
	batch := NewEncoder()
	batch.WriteUvarint(1)
	batch.WriteUvarint(100)
	batch.WriteBytes([]byte{0x01, 0x02})

	if _, _, err := DecodeCommandBatch(batch.Bytes()); !errors.Is(err, ErrBatchTruncated) {
		t.Errorf("DecodeCommandBatch truncated: err = %v; want ErrBatchTruncated", err)
	}
}

func TestBatchMalformedEntryFails(t *testing.T) {
	// Known tag, payload cut short. This is corruption, not a version skew,
	// so the whole batch fails.
	entry := NewEncoder()
	entry.WriteUvarint(1)
	entry.WriteByte(byte(CmdWindowSetTitle))
	entry.WriteUint32(7)
	// missing the title

	batch := NewEncoder()
	batch.WriteUvarint(1)
	appendEntry(batch, entry.Bytes())

	if _, _, err := DecodeCommandBatch(batch.Bytes()); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("DecodeCommandBatch malformed: err = %v; want ErrUnexpectedEOF", err)
	}
}

func TestBatchCountOverLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxBatchEntries + 1)
	e.WriteBytes(make([]byte, 16))
	if _, _, err := DecodeCommandBatch(e.Bytes()); !errors.Is(err, ErrBatchTooLarge) {
		t.Errorf("DecodeCommandBatch over entry limit: err = %v; want ErrBatchTooLarge", err)
	}
}
