// Package profiling carries frame timing snapshots out of the core and
// archives them to pluggable sinks.
package profiling

import "github.com/kestrel-engine/kestrel-go/pkg/protocol"

// Snapshot is one profiling payload read from the core. Fields accumulate
// over the core's lifetime except the per-frame delta.
type Snapshot struct {
	Frames            uint64
	TimeMS            uint64
	DeltaMS           uint32
	CommandsProcessed uint64
	EventsEmitted     uint64
}

// Encode serializes the snapshot with the shared wire primitives.
func (s *Snapshot) Encode() []byte {
	enc := protocol.NewEncoder()
	enc.WriteUvarint(s.Frames)
	enc.WriteUint64(s.TimeMS)
	enc.WriteUint32(s.DeltaMS)
	enc.WriteUvarint(s.CommandsProcessed)
	enc.WriteUvarint(s.EventsEmitted)
	return enc.Bytes()
}

// DecodeSnapshot parses a profiling payload.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	d := protocol.NewDecoder(data)
	s := &Snapshot{}
	var err error
	if s.Frames, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if s.TimeMS, err = d.ReadUint64(); err != nil {
		return nil, err
	}
	if s.DeltaMS, err = d.ReadUint32(); err != nil {
		return nil, err
	}
	if s.CommandsProcessed, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if s.EventsEmitted, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	return s, nil
}
