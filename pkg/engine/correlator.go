package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

// ErrDuplicateID reports a submission reusing an identifier that is still
// in flight.
var ErrDuplicateID = errors.New("engine: duplicate command identifier")

// Correlator matches responses to in-flight commands by identifier.
// Responses arrive in any order; each resolves independently. It is not
// safe for concurrent use; the bridge serializes access.
type Correlator struct {
	log       *slog.Logger
	pending   map[uint64]*protocol.Command
	unmatched uint64
}

// NewCorrelator returns a correlator logging diagnostics to log.
func NewCorrelator(log *slog.Logger) *Correlator {
	return &Correlator{
		log:     log,
		pending: make(map[uint64]*protocol.Command),
	}
}

// Track registers commands before their batch crosses the boundary. If any
// identifier collides with an in-flight command the whole submission is
// rejected and nothing is tracked.
func (c *Correlator) Track(cmds []*protocol.Command) error {
	for _, cmd := range cmds {
		if _, exists := c.pending[cmd.ID]; exists {
			return fmt.Errorf("%w: %d (%s)", ErrDuplicateID, cmd.ID, cmd.Tag)
		}
	}
	// Duplicates within the submission itself also collide here.
	for i, cmd := range cmds {
		if _, exists := c.pending[cmd.ID]; exists {
			for _, prev := range cmds[:i] {
				delete(c.pending, prev.ID)
			}
			return fmt.Errorf("%w: %d (%s)", ErrDuplicateID, cmd.ID, cmd.Tag)
		}
		c.pending[cmd.ID] = cmd
	}
	return nil
}

// Untrack removes commands without resolving them, for submissions that
// never crossed the boundary.
func (c *Correlator) Untrack(cmds []*protocol.Command) {
	for _, cmd := range cmds {
		delete(c.pending, cmd.ID)
	}
}

// Resolve pairs a response with its tracked command. A response nobody is
// waiting for is logged and counted, never fatal: the matched flag tells
// the caller whether cmd is meaningful.
func (c *Correlator) Resolve(r *protocol.Response) (cmd *protocol.Command, matched bool) {
	cmd, matched = c.pending[r.ID]
	if !matched {
		c.unmatched++
		c.log.Warn("unmatched response",
			"id", r.ID,
			"tag", r.Tag.String(),
			"code", r.Code.String(),
		)
		return nil, false
	}
	delete(c.pending, r.ID)
	return cmd, true
}

// PendingCount returns the number of commands awaiting a response.
func (c *Correlator) PendingCount() int {
	return len(c.pending)
}

// UnmatchedCount returns how many responses arrived with no tracked command.
func (c *Correlator) UnmatchedCount() uint64 {
	return c.unmatched
}
