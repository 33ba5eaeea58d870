// Package inspect exposes a debug HTTP surface over a running bridge:
// Prometheus metrics, a JSON view of recent boundary traffic, and a
// WebSocket feed streaming traffic records as they happen.
package inspect

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

// Direction of a traffic record relative to the host.
const (
	DirCommand  = "command"
	DirResponse = "response"
	DirEvent    = "event"
)

// Record is one boundary entry rendered for inspection.
type Record struct {
	Time      time.Time `json:"time"`
	Direction string    `json:"direction"`
	ID        uint64    `json:"id"`
	Label     string    `json:"label"`
	Detail    string    `json:"detail,omitempty"`
}

const defaultHistory = 256

// Tap records boundary traffic into a bounded history and streams it to
// connected WebSocket clients. It satisfies the bridge's traffic observer
// interface. Safe for concurrent use.
type Tap struct {
	mu       sync.RWMutex
	history  []Record
	limit    int
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	now      func() time.Time
}

// NewTap creates a tap keeping the last `limit` records (0 means a default
// of 256).
func NewTap(limit int) *Tap {
	if limit <= 0 {
		limit = defaultHistory
	}
	return &Tap{
		limit:   limit,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // debug surface, bind it to localhost
			},
		},
		now: time.Now,
	}
}

// Commands records one submitted command batch.
func (t *Tap) Commands(cmds []*protocol.Command) {
	for _, c := range cmds {
		t.record(Record{
			Direction: DirCommand,
			ID:        c.ID,
			Label:     c.Tag.String(),
			Detail:    fmt.Sprintf("%+v", c.Args),
		})
	}
}

// Responses records one drained response batch.
func (t *Tap) Responses(resps []*protocol.Response) {
	for _, r := range resps {
		rec := Record{
			Direction: DirResponse,
			ID:        r.ID,
			Label:     r.Tag.String(),
			Detail:    r.Code.String(),
		}
		if r.Payload != nil {
			rec.Detail = fmt.Sprintf("%s %+v", r.Code, r.Payload)
		}
		t.record(rec)
	}
}

// Events records one drained event batch.
func (t *Tap) Events(events []*protocol.Event) {
	for _, ev := range events {
		t.record(Record{
			Direction: DirEvent,
			ID:        ev.ID,
			Label:     fmt.Sprintf("%s/%d", ev.Category, ev.Kind),
			Detail:    fmt.Sprintf("%+v", ev.Data),
		})
	}
}

func (t *Tap) record(rec Record) {
	rec.Time = t.now()

	t.mu.Lock()
	t.history = append(t.history, rec)
	if len(t.history) > t.limit {
		t.history = t.history[len(t.history)-t.limit:]
	}
	t.mu.Unlock()

	t.broadcast(rec)
}

// Recent returns a copy of the retained history, oldest first.
func (t *Tap) Recent() []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Record, len(t.history))
	copy(out, t.history)
	return out
}

// HandleWebSocket upgrades the request and streams records until the
// client disconnects.
func (t *Tap) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := t.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	t.mu.Lock()
	t.clients[conn] = true
	t.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	t.mu.Lock()
	delete(t.clients, conn)
	t.mu.Unlock()
	conn.Close()
}

func (t *Tap) broadcast(rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}

	t.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(t.clients))
	for client := range t.clients {
		clients = append(clients, client)
	}
	t.mu.RUnlock()

	for _, client := range clients {
		client.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			t.mu.Lock()
			delete(t.clients, client)
			t.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected stream clients.
func (t *Tap) ClientCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.clients)
}

// Close disconnects all stream clients.
func (t *Tap) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for client := range t.clients {
		client.Close()
		delete(t.clients, client)
	}
}
