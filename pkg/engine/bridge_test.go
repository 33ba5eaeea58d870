package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

func startedBridge(t *testing.T, opts ...Option) *Bridge {
	t.Helper()
	opts = append([]Option{WithLogger(testLogger())}, opts...)
	b := NewBridge(NewMemCore(), opts...)
	if err := b.Start(context.Background()); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	return b
}

func TestBridgeEndToEnd(t *testing.T) {
	ctx := context.Background()

	var resizedEvents []*protocol.WindowResizedData
	b := startedBridge(t,
		WithMetrics(WithRegistry(prometheus.NewRegistry())),
		WithHandlers(Handlers{
			Window: func(ev *protocol.Event) {
				if ev.Kind == protocol.WindowResized {
					resizedEvents = append(resizedEvents, ev.Data.(*protocol.WindowResizedData))
				}
			},
		}),
	)

	// Create a window.
	create := b.NewCommand(protocol.CmdWindowCreate, &protocol.WindowCreateArgs{
		Title: "bridge", Size: [2]uint32{800, 600}, Resizable: true,
	})
	if err := b.Submit(ctx, []*protocol.Command{create}); err != nil {
		t.Fatalf("Submit(create) = %v", err)
	}
	if b.PendingCommands() != 1 {
		t.Fatalf("PendingCommands() = %d; want 1", b.PendingCommands())
	}
	if err := b.Tick(ctx); err != nil {
		t.Fatalf("Tick() = %v", err)
	}

	resolved, err := b.PollResponses(ctx)
	if err != nil || len(resolved) != 1 {
		t.Fatalf("PollResponses() = %+v, %v; want one resolved", resolved, err)
	}
	if resolved[0].Command != create {
		t.Errorf("resolved command is not the submitted one")
	}
	windowID := resolved[0].Response.Payload.(*protocol.WindowCreateResult).WindowID
	if _, err := b.PollEvents(ctx); err != nil {
		t.Fatalf("PollEvents() = %v", err)
	}

	// Resize and watch the event arrive through the dispatcher.
	resize := b.NewCommand(protocol.CmdWindowSetSize, &protocol.WindowSetSizeArgs{
		WindowID: windowID, Size: [2]uint32{1920, 1080},
	})
	if err := b.Submit(ctx, []*protocol.Command{resize}); err != nil {
		t.Fatalf("Submit(resize) = %v", err)
	}
	if err := b.Tick(ctx); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if _, err := b.PollResponses(ctx); err != nil {
		t.Fatalf("PollResponses() = %v", err)
	}
	events, err := b.PollEvents(ctx)
	if err != nil || len(events) != 1 {
		t.Fatalf("PollEvents() = %d events, %v; want 1", len(events), err)
	}
	if len(resizedEvents) != 1 || resizedEvents[0].Width != 1920 {
		t.Fatalf("dispatched resize events = %+v; want one at 1920 wide", resizedEvents)
	}

	// Profiling reflects the two frames.
	snap, err := b.Profiling(ctx)
	if err != nil || snap == nil {
		t.Fatalf("Profiling() = %+v, %v", snap, err)
	}
	if snap.Frames != 2 || snap.CommandsProcessed != 2 {
		t.Errorf("snapshot = %+v; want 2 frames, 2 commands", snap)
	}

	if err := b.Close(ctx); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := b.Tick(ctx); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Tick after Close = %v; want ErrNotRunning", err)
	}
	if err := b.Close(ctx); !errors.Is(err, ErrNotRunning) {
		t.Errorf("second Close = %v; want ErrNotRunning", err)
	}
}

func TestBridgeDuplicateSubmission(t *testing.T) {
	ctx := context.Background()
	b := startedBridge(t)

	cmd := targetCmd(12)
	if err := b.Submit(ctx, []*protocol.Command{cmd}); err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	// Reusing the id while the first is still in flight is rejected before
	// the boundary call.
	err := b.Submit(ctx, []*protocol.Command{targetCmd(12)})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Submit duplicate id: err = %v; want ErrDuplicateID", err)
	}
}

func TestBridgeBufferRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := startedBridge(t)

	payload := []byte("geometry upload")
	if err := b.Upload(ctx, 3, payload); err != nil {
		t.Fatalf("Upload() = %v", err)
	}
	got, err := b.Download(ctx, 3)
	if err != nil || string(got) != string(payload) {
		t.Errorf("Download() = %q, %v; want %q", got, err, payload)
	}

	if err := b.Clear(ctx, 3); err != nil {
		t.Fatalf("Clear() = %v", err)
	}
	got, err = b.Download(ctx, 3)
	if err != nil || got != nil {
		t.Errorf("Download after Clear = %q, %v; want empty", got, err)
	}
}

// countingCore counts download calls crossing the boundary.
type countingCore struct {
	*MemCore
	downloads int
}

func (c *countingCore) DownloadBuffer(handle uint64, dst []byte, size *int) protocol.ResultCode {
	c.downloads++
	return c.MemCore.DownloadBuffer(handle, dst, size)
}

func TestBridgeElidesKnownEmptyDownloads(t *testing.T) {
	ctx := context.Background()
	core := &countingCore{MemCore: NewMemCore()}
	b := NewBridge(core, WithLogger(testLogger()))
	if err := b.Start(ctx); err != nil {
		t.Fatalf("Start() = %v", err)
	}

	// Never uploaded: resolved host-side.
	got, err := b.Download(ctx, 50)
	if err != nil || got != nil {
		t.Fatalf("Download() = %q, %v; want empty", got, err)
	}
	if core.downloads != 0 {
		t.Errorf("boundary downloads = %d; want 0", core.downloads)
	}

	// Uploaded handles always cross.
	if err := b.Upload(ctx, 50, []byte("x")); err != nil {
		t.Fatalf("Upload() = %v", err)
	}
	if _, err := b.Download(ctx, 50); err != nil {
		t.Fatalf("Download() = %v", err)
	}
	if core.downloads == 0 {
		t.Errorf("uploaded handle download did not cross the boundary")
	}
}

// recordingTap counts traffic records per direction.
type recordingTap struct {
	commands, responses, events int
}

func (r *recordingTap) Commands(cmds []*protocol.Command) { r.commands += len(cmds) }
func (r *recordingTap) Responses(resps []*protocol.Response) {
	r.responses += len(resps)
}
func (r *recordingTap) Events(events []*protocol.Event) { r.events += len(events) }

func TestBridgeTapSeesTraffic(t *testing.T) {
	ctx := context.Background()
	tap := &recordingTap{}
	b := startedBridge(t, WithTap(tap))

	create := b.NewCommand(protocol.CmdWindowCreate, &protocol.WindowCreateArgs{
		Title: "tapped", Size: [2]uint32{100, 100},
	})
	if err := b.Submit(ctx, []*protocol.Command{create}); err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	if err := b.Tick(ctx); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if _, err := b.PollResponses(ctx); err != nil {
		t.Fatalf("PollResponses() = %v", err)
	}
	if _, err := b.PollEvents(ctx); err != nil {
		t.Fatalf("PollEvents() = %v", err)
	}

	if tap.commands != 1 || tap.responses != 1 || tap.events != 1 {
		t.Errorf("tap saw %d/%d/%d; want 1/1/1",
			tap.commands, tap.responses, tap.events)
	}
}

func TestBridgeStartTwice(t *testing.T) {
	b := startedBridge(t)
	if err := b.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start = %v; want ErrAlreadyRunning", err)
	}
}

func TestBridgeNextIDMonotonic(t *testing.T) {
	b := NewBridge(NewMemCore(), WithLogger(testLogger()))
	a, c := b.NextID(), b.NextID()
	if a == 0 || c != a+1 {
		t.Errorf("NextID() = %d, %d; want nonzero and increasing", a, c)
	}
}
