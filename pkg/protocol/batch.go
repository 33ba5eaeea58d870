package protocol

import "errors"

// Batch framing: [count uvarint] then, per entry, [len uvarint][entry bytes].
// The per-entry length prefix lets a decoder skip entries whose tag it does
// not recognize and keep going, so older peers tolerate newer variants.
// Decoders report how many entries they skipped; callers surface that as a
// diagnostic rather than a failure.

// ErrBatchTruncated reports a batch whose declared entry length exceeds the
// remaining bytes.
var ErrBatchTruncated = errors.New("protocol: batch entry truncated")

func isUnknownVariant(err error) bool {
	return errors.Is(err, ErrUnknownCommandTag) ||
		errors.Is(err, ErrUnknownResponseTag) ||
		errors.Is(err, ErrUnknownEventCategory) ||
		errors.Is(err, ErrUnknownEventKind)
}

// appendEntry frames one pre-encoded entry into the batch encoder.
func appendEntry(batch *Encoder, entry []byte) {
	batch.WriteUvarint(uint64(len(entry)))
	batch.WriteBytes(entry)
}

// readEntry pulls one length-prefixed entry out of the batch and returns a
// decoder scoped to it.
func readEntry(d *Decoder) (*Decoder, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(d.Remaining()) {
		return nil, ErrBatchTruncated
	}
	entry, err := d.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	return NewDecoder(entry), nil
}

// EncodeCommandBatch encodes commands into a single batch.
func EncodeCommandBatch(cmds []*Command) ([]byte, error) {
	batch := NewEncoder()
	batch.WriteUvarint(uint64(len(cmds)))
	entry := NewEncoder()
	for _, c := range cmds {
		entry.Reset()
		if err := EncodeCommandTo(entry, c); err != nil {
			return nil, err
		}
		appendEntry(batch, entry.Bytes())
	}
	return batch.Bytes(), nil
}

// DecodeCommandBatch decodes a command batch. Entries with an unrecognized
// tag are skipped and counted; any other decode failure fails the batch.
func DecodeCommandBatch(data []byte) ([]*Command, int, error) {
	d := NewDecoder(data)
	count, err := d.ReadCount()
	if err != nil {
		return nil, 0, err
	}
	cmds := make([]*Command, 0, count)
	skipped := 0
	for i := 0; i < count; i++ {
		entry, err := readEntry(d)
		if err != nil {
			return nil, skipped, err
		}
		c, err := DecodeCommandFrom(entry)
		if err != nil {
			if isUnknownVariant(err) {
				skipped++
				continue
			}
			return nil, skipped, err
		}
		cmds = append(cmds, c)
	}
	return cmds, skipped, nil
}

// EncodeResponseBatch encodes responses into a single batch.
func EncodeResponseBatch(rs []*Response) ([]byte, error) {
	batch := NewEncoder()
	batch.WriteUvarint(uint64(len(rs)))
	entry := NewEncoder()
	for _, r := range rs {
		entry.Reset()
		if err := EncodeResponseTo(entry, r); err != nil {
			return nil, err
		}
		appendEntry(batch, entry.Bytes())
	}
	return batch.Bytes(), nil
}

// DecodeResponseBatch decodes a response batch with the same skip rules as
// DecodeCommandBatch.
func DecodeResponseBatch(data []byte) ([]*Response, int, error) {
	d := NewDecoder(data)
	count, err := d.ReadCount()
	if err != nil {
		return nil, 0, err
	}
	rs := make([]*Response, 0, count)
	skipped := 0
	for i := 0; i < count; i++ {
		entry, err := readEntry(d)
		if err != nil {
			return nil, skipped, err
		}
		r, err := DecodeResponseFrom(entry)
		if err != nil {
			if isUnknownVariant(err) {
				skipped++
				continue
			}
			return nil, skipped, err
		}
		rs = append(rs, r)
	}
	return rs, skipped, nil
}

// EncodeEventBatch encodes events into a single batch.
func EncodeEventBatch(evs []*Event) ([]byte, error) {
	batch := NewEncoder()
	batch.WriteUvarint(uint64(len(evs)))
	entry := NewEncoder()
	for _, ev := range evs {
		entry.Reset()
		if err := EncodeEventTo(entry, ev); err != nil {
			return nil, err
		}
		appendEntry(batch, entry.Bytes())
	}
	return batch.Bytes(), nil
}

// DecodeEventBatch decodes an event batch. Events from categories or kinds
// this build does not know are skipped and counted, never fatal.
func DecodeEventBatch(data []byte) ([]*Event, int, error) {
	d := NewDecoder(data)
	count, err := d.ReadCount()
	if err != nil {
		return nil, 0, err
	}
	evs := make([]*Event, 0, count)
	skipped := 0
	for i := 0; i < count; i++ {
		entry, err := readEntry(d)
		if err != nil {
			return nil, skipped, err
		}
		ev, err := DecodeEventFrom(entry)
		if err != nil {
			if isUnknownVariant(err) {
				skipped++
				continue
			}
			return nil, skipped, err
		}
		evs = append(evs, ev)
	}
	return evs, skipped, nil
}
