package profiling

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sink archives profiling snapshots. Implementations must tolerate being
// called once per frame.
type Sink interface {
	Store(ctx context.Context, snap *Snapshot) error
}

// FileSink appends snapshots as one encoded record per file under a
// directory, keyed by frame number.
type FileSink struct {
	dir string
}

// NewFileSink creates the directory if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("profiling: create sink directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// Store writes the snapshot to <dir>/frame-<n>.bin.
func (s *FileSink) Store(_ context.Context, snap *Snapshot) error {
	name := filepath.Join(s.dir, fmt.Sprintf("frame-%d.bin", snap.Frames))
	if err := os.WriteFile(name, snap.Encode(), 0o644); err != nil {
		return fmt.Errorf("profiling: write snapshot: %w", err)
	}
	return nil
}

// snapshotKey names an archived snapshot: a date-scoped prefix plus the
// frame counter, so object listings sort chronologically.
func snapshotKey(prefix string, snap *Snapshot, now time.Time) string {
	return fmt.Sprintf("%s%s/frame-%d.bin", prefix, now.UTC().Format("2006-01-02"), snap.Frames)
}
