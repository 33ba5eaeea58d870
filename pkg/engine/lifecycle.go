package engine

// BufferTable is host-side bookkeeping of exchange buffer handles. It
// tracks which handles hold data so known-empty downloads can skip the
// boundary call; it never caches the bytes themselves, so a download always
// reads the core's current contents.
type BufferTable struct {
	live map[uint64]int // handle -> last uploaded length
}

// NewBufferTable returns an empty table.
func NewBufferTable() *BufferTable {
	return &BufferTable{live: make(map[uint64]int)}
}

// MarkUploaded records that handle now holds n bytes.
func (t *BufferTable) MarkUploaded(handle uint64, n int) {
	t.live[handle] = n
}

// MarkCleared records that handle no longer holds data. Clearing an
// untracked handle is a no-op.
func (t *BufferTable) MarkCleared(handle uint64) {
	delete(t.live, handle)
}

// KnownEmpty reports whether the host never uploaded to handle (or cleared
// it since). Such downloads resolve to an empty payload without a call.
func (t *BufferTable) KnownEmpty(handle uint64) bool {
	_, ok := t.live[handle]
	return !ok
}

// LastSize returns the length of the most recent upload to handle.
func (t *BufferTable) LastSize(handle uint64) (int, bool) {
	n, ok := t.live[handle]
	return n, ok
}

// Handles returns the live handle count.
func (t *BufferTable) Handles() int {
	return len(t.live)
}
