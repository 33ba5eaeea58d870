package inspect

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kestrel-engine/kestrel-go/pkg/engine"
	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

var _ engine.Tap = (*Tap)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTraffic(t *Tap) {
	t.Commands([]*protocol.Command{
		{ID: 1, Tag: protocol.CmdWindowCreate, Args: &protocol.WindowCreateArgs{Title: "probe"}},
	})
	t.Responses([]*protocol.Response{
		protocol.NewAck(1, protocol.CmdWindowCreate),
	})
	t.Events([]*protocol.Event{
		{ID: 1, Category: protocol.CategoryWindow, Kind: protocol.WindowCreated,
			Data: &protocol.WindowCreatedData{WindowID: 9}},
	})
}

func TestTapHistory(t *testing.T) {
	tap := NewTap(0)
	sampleTraffic(tap)

	recent := tap.Recent()
	if len(recent) != 3 {
		t.Fatalf("Recent() = %d records; want 3", len(recent))
	}
	if recent[0].Direction != DirCommand || recent[0].Label != "WindowCreate" {
		t.Errorf("first record = %+v; want command WindowCreate", recent[0])
	}
	if recent[1].Direction != DirResponse || recent[1].ID != 1 {
		t.Errorf("second record = %+v; want response id 1", recent[1])
	}
	if recent[2].Direction != DirEvent || !strings.HasPrefix(recent[2].Label, "Window/") {
		t.Errorf("third record = %+v; want window event", recent[2])
	}
}

func TestTapHistoryBounded(t *testing.T) {
	tap := NewTap(2)
	for i := uint64(1); i <= 5; i++ {
		tap.Commands([]*protocol.Command{{ID: i, Tag: protocol.CmdWindowClose,
			Args: &protocol.WindowTargetArgs{WindowID: 1}}})
	}
	recent := tap.Recent()
	if len(recent) != 2 || recent[0].ID != 4 || recent[1].ID != 5 {
		t.Errorf("Recent() = %+v; want ids 4 and 5", recent)
	}
}

type fakeStatus struct {
	running bool
	pending int
}

func (f *fakeStatus) Running() bool        { return f.running }
func (f *fakeStatus) PendingCommands() int { return f.pending }

func TestServerEndpoints(t *testing.T) {
	tap := NewTap(0)
	sampleTraffic(tap)
	srv := NewServer(tap, &fakeStatus{running: true, pending: 2},
		WithGatherer(prometheus.NewRegistry()),
		WithServerLogger(testLogger()))

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /healthz = %v, %v", resp, err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/debug/state")
	if err != nil {
		t.Fatalf("GET /debug/state = %v", err)
	}
	var state stateResponse
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	resp.Body.Close()
	if !state.Running || state.PendingCommands != 2 || state.RecordsRetained != 3 {
		t.Errorf("state = %+v; want running, 2 pending, 3 retained", state)
	}

	resp, err = http.Get(ts.URL + "/debug/recent")
	if err != nil {
		t.Fatalf("GET /debug/recent = %v", err)
	}
	var recent []Record
	if err := json.NewDecoder(resp.Body).Decode(&recent); err != nil {
		t.Fatalf("decode recent: %v", err)
	}
	resp.Body.Close()
	if len(recent) != 3 {
		t.Errorf("recent = %d records; want 3", len(recent))
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /metrics = %v, %v", resp, err)
	}
	resp.Body.Close()
}

func TestTapWebSocketStream(t *testing.T) {
	tap := NewTap(0)
	srv := NewServer(tap, nil, WithServerLogger(testLogger()))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/debug/tap"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() = %v", err)
	}
	defer conn.Close()

	// The upgrade handshake races with the broadcast registration.
	deadline := time.Now().Add(time.Second)
	for tap.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if tap.ClientCount() != 1 {
		t.Fatalf("ClientCount() = %d; want 1", tap.ClientCount())
	}

	tap.Commands([]*protocol.Command{{ID: 77, Tag: protocol.CmdWindowRequestRedraw,
		Args: &protocol.WindowTargetArgs{WindowID: 1}}})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() = %v", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if rec.ID != 77 || rec.Direction != DirCommand {
		t.Errorf("streamed record = %+v; want command id 77", rec)
	}
}
