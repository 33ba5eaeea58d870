package profiling

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestSnapshotRoundTrip(t *testing.T) {
	snap := &Snapshot{
		Frames:            120,
		TimeMS:            2000,
		DeltaMS:           16,
		CommandsProcessed: 42,
		EventsEmitted:     99,
	}
	got, err := DecodeSnapshot(snap.Encode())
	if err != nil {
		t.Fatalf("DecodeSnapshot() = %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip:\n got  %+v\n want %+v", got, snap)
	}
}

func TestDecodeSnapshotTruncated(t *testing.T) {
	data := (&Snapshot{Frames: 1}).Encode()
	if _, err := DecodeSnapshot(data[:3]); err == nil {
		t.Errorf("DecodeSnapshot on truncated payload succeeded")
	}
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(filepath.Join(dir, "prof"))
	if err != nil {
		t.Fatalf("NewFileSink() = %v", err)
	}

	snap := &Snapshot{Frames: 7, TimeMS: 112, DeltaMS: 16}
	if err := sink.Store(context.Background(), snap); err != nil {
		t.Fatalf("Store() = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "prof", "frame-7.bin"))
	if err != nil {
		t.Fatalf("ReadFile() = %v", err)
	}
	got, err := DecodeSnapshot(data)
	if err != nil || got.Frames != 7 {
		t.Errorf("stored snapshot = %+v, %v; want frame 7", got, err)
	}
}

// fakePutAPI records the last PutObject call.
type fakePutAPI struct {
	bucket string
	key    string
	body   int64
}

func (f *fakePutAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.bucket = *params.Bucket
	f.key = *params.Key
	f.body = int64(0)
	if params.Body != nil {
		buf := make([]byte, 256)
		n, _ := params.Body.Read(buf)
		f.body = int64(n)
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkKeyLayout(t *testing.T) {
	fake := &fakePutAPI{}
	sink := NewS3Sink(fake, "profiles", "kestrel/")
	sink.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	}

	snap := &Snapshot{Frames: 300, TimeMS: 5000, DeltaMS: 16}
	if err := sink.Store(context.Background(), snap); err != nil {
		t.Fatalf("Store() = %v", err)
	}
	if fake.bucket != "profiles" {
		t.Errorf("bucket = %q", fake.bucket)
	}
	if want := "kestrel/2025-03-14/frame-300.bin"; fake.key != want {
		t.Errorf("key = %q; want %q", fake.key, want)
	}
	if fake.body == 0 {
		t.Errorf("empty body uploaded")
	}
}
