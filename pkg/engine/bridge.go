package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kestrel-engine/kestrel-go/pkg/profiling"
	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

// Default tracer name for bridge spans.
const defaultTracerName = "kestrel"

// Bridge errors.
var (
	ErrNotRunning     = errors.New("engine: bridge is not running")
	ErrAlreadyRunning = errors.New("engine: bridge is already running")
)

// Resolved pairs a response with the command it answers. Command is nil
// when the response matched nothing.
type Resolved struct {
	Command  *protocol.Command
	Response *protocol.Response
}

// Tap observes decoded traffic as it crosses the boundary. Calls happen on
// the bridge goroutine; implementations must not block.
type Tap interface {
	Commands(cmds []*protocol.Command)
	Responses(resps []*protocol.Response)
	Events(events []*protocol.Event)
}

// Bridge is the explicit handle over one core: identifier assignment,
// correlation, batch codec, buffer bookkeeping, and observability. It is
// not safe for concurrent use; the owning loop drives it from the
// goroutine that called Start.
type Bridge struct {
	core    Core
	log     *slog.Logger
	metrics *bridgeMetrics
	tracer  trace.Tracer

	correlator *Correlator
	dispatcher *Dispatcher
	buffers    *BufferTable
	tap        Tap

	nextID  uint64
	running bool
	started time.Time
	last    time.Time
}

type bridgeConfig struct {
	log         *slog.Logger
	tracerName  string
	metricsOpts []MetricsOption
	metricsOn   bool
	handlers    Handlers
	tap         Tap
}

// Option configures a Bridge.
type Option func(*bridgeConfig)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *bridgeConfig) {
		c.log = log
	}
}

// WithTracerName sets the tracer name resolved from the global provider.
func WithTracerName(name string) Option {
	return func(c *bridgeConfig) {
		c.tracerName = name
	}
}

// WithMetrics enables Prometheus metrics on the bridge.
func WithMetrics(opts ...MetricsOption) Option {
	return func(c *bridgeConfig) {
		c.metricsOn = true
		c.metricsOpts = opts
	}
}

// WithHandlers sets the per-category event handlers driven by PollEvents.
func WithHandlers(handlers Handlers) Option {
	return func(c *bridgeConfig) {
		c.handlers = handlers
	}
}

// WithTap registers a traffic observer for submitted commands and drained
// responses and events.
func WithTap(tap Tap) Option {
	return func(c *bridgeConfig) {
		c.tap = tap
	}
}

// NewBridge wraps core. The bridge owns no goroutines; the caller drives
// it frame by frame.
func NewBridge(core Core, opts ...Option) *Bridge {
	config := bridgeConfig{
		log:        slog.Default(),
		tracerName: defaultTracerName,
	}
	for _, opt := range opts {
		opt(&config)
	}

	b := &Bridge{
		core:       core,
		log:        config.log,
		tracer:     otel.Tracer(config.tracerName),
		correlator: NewCorrelator(config.log),
		dispatcher: NewDispatcher(config.log, config.handlers),
		buffers:    NewBufferTable(),
		tap:        config.tap,
		nextID:     1,
	}
	if config.metricsOn {
		b.metrics = newBridgeMetrics(config.metricsOpts...)
	}
	return b
}

// observe times one boundary call when metrics are enabled.
func (b *Bridge) observe(op string, start time.Time) {
	if b.metrics != nil {
		b.metrics.callDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// span opens a tracing span around one bridge operation.
func (b *Bridge) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return b.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Start initializes the core and binds the bridge to this goroutine.
func (b *Bridge) Start(ctx context.Context) error {
	if b.running {
		return ErrAlreadyRunning
	}
	_, span := b.span(ctx, "bridge.Start")
	start := time.Now()
	err := callErr("init", b.core.Init())
	b.observe("init", start)
	endSpan(span, err)
	if err != nil {
		return err
	}
	b.running = true
	b.started = time.Now()
	b.last = b.started
	b.log.Info("core initialized")
	return nil
}

// Close disposes the core. The bridge cannot be restarted.
func (b *Bridge) Close(ctx context.Context) error {
	if !b.running {
		return ErrNotRunning
	}
	_, span := b.span(ctx, "bridge.Close")
	start := time.Now()
	err := callErr("dispose", b.core.Dispose())
	b.observe("dispose", start)
	endSpan(span, err)
	if err != nil {
		return err
	}
	b.running = false
	if n := b.correlator.PendingCount(); n > 0 {
		b.log.Warn("disposed with commands in flight", "pending", n)
	}
	b.log.Info("core disposed")
	return nil
}

// NextID returns a fresh command identifier. Identifiers are unique within
// a batch by contract; the bridge assigns them monotonically over its
// lifetime so logs stay unambiguous.
func (b *Bridge) NextID() uint64 {
	id := b.nextID
	b.nextID++
	return id
}

// NewCommand builds a command with a bridge-assigned identifier.
func (b *Bridge) NewCommand(tag protocol.CommandTag, args any) *protocol.Command {
	return &protocol.Command{ID: b.NextID(), Tag: tag, Args: args}
}

// Submit encodes one command batch, registers it for correlation, and hands
// it to the core. On any failure nothing is tracked.
func (b *Bridge) Submit(ctx context.Context, cmds []*protocol.Command) error {
	if !b.running {
		return ErrNotRunning
	}
	_, span := b.span(ctx, "bridge.Submit",
		attribute.Int("batch.count", len(cmds)))

	err := b.submit(cmds)
	endSpan(span, err)
	return err
}

func (b *Bridge) submit(cmds []*protocol.Command) error {
	data, err := protocol.EncodeCommandBatch(cmds)
	if err != nil {
		return fmt.Errorf("engine: encode command batch: %w", err)
	}
	if err := b.correlator.Track(cmds); err != nil {
		return err
	}
	start := time.Now()
	code := b.core.SendQueue(data)
	b.observe("send_queue", start)
	if !code.OK() {
		// The batch never crossed; nothing will answer these ids.
		b.correlator.Untrack(cmds)
		return callErr("send_queue", code)
	}
	if b.metrics != nil {
		b.metrics.commandsSubmitted.Add(float64(len(cmds)))
	}
	if b.tap != nil {
		b.tap.Commands(cmds)
	}
	return nil
}

// Tick advances the core one frame using wall-clock time since Start.
func (b *Bridge) Tick(ctx context.Context) error {
	if !b.running {
		return ErrNotRunning
	}
	now := time.Now()
	elapsed := uint64(now.Sub(b.started).Milliseconds())
	delta := uint32(now.Sub(b.last).Milliseconds())
	b.last = now

	_, span := b.span(ctx, "bridge.Tick",
		attribute.Int64("tick.time_ms", int64(elapsed)))
	start := time.Now()
	err := callErr("tick", b.core.Tick(elapsed, delta))
	b.observe("tick", start)
	endSpan(span, err)
	if err != nil {
		return err
	}
	if b.metrics != nil {
		b.metrics.ticksTotal.Inc()
	}
	return nil
}

// PollResponses drains the response queue and resolves each response
// against its in-flight command. Unmatched responses are logged and
// excluded from the result.
func (b *Bridge) PollResponses(ctx context.Context) ([]Resolved, error) {
	if !b.running {
		return nil, ErrNotRunning
	}
	_, span := b.span(ctx, "bridge.PollResponses")

	start := time.Now()
	data, err := readAll("receive_queue", b.core.ReceiveQueue)
	b.observe("receive_queue", start)
	if err != nil {
		endSpan(span, err)
		return nil, err
	}
	if len(data) == 0 {
		endSpan(span, nil)
		return nil, nil
	}

	responses, skipped, err := protocol.DecodeResponseBatch(data)
	if err != nil {
		err = fmt.Errorf("engine: decode response batch: %w", err)
		endSpan(span, err)
		return nil, err
	}
	b.noteSkipped("response", skipped)
	if b.tap != nil {
		b.tap.Responses(responses)
	}

	resolved := make([]Resolved, 0, len(responses))
	for _, r := range responses {
		if b.metrics != nil {
			b.metrics.responsesTotal.WithLabelValues(r.Code.String()).Inc()
		}
		cmd, matched := b.correlator.Resolve(r)
		if !matched {
			if b.metrics != nil {
				b.metrics.unmatchedResponses.Inc()
			}
			continue
		}
		resolved = append(resolved, Resolved{Command: cmd, Response: r})
	}
	span.SetAttributes(attribute.Int("batch.count", len(responses)))
	endSpan(span, nil)
	return resolved, nil
}

// PollEvents drains the event queue, dispatches each event to the
// registered handlers, and returns the batch.
func (b *Bridge) PollEvents(ctx context.Context) ([]*protocol.Event, error) {
	if !b.running {
		return nil, ErrNotRunning
	}
	_, span := b.span(ctx, "bridge.PollEvents")

	start := time.Now()
	data, err := readAll("receive_events", b.core.ReceiveEvents)
	b.observe("receive_events", start)
	if err != nil {
		endSpan(span, err)
		return nil, err
	}
	if len(data) == 0 {
		endSpan(span, nil)
		return nil, nil
	}

	events, skipped, err := protocol.DecodeEventBatch(data)
	if err != nil {
		err = fmt.Errorf("engine: decode event batch: %w", err)
		endSpan(span, err)
		return nil, err
	}
	b.noteSkipped("event", skipped)
	if b.tap != nil {
		b.tap.Events(events)
	}

	if b.metrics != nil {
		for _, ev := range events {
			b.metrics.eventsReceived.WithLabelValues(ev.Category.String()).Inc()
		}
	}
	b.dispatcher.DispatchAll(events)

	span.SetAttributes(attribute.Int("batch.count", len(events)))
	endSpan(span, nil)
	return events, nil
}

func (b *Bridge) noteSkipped(kind string, skipped int) {
	if skipped == 0 {
		return
	}
	b.log.Warn("skipped unrecognized batch entries", "kind", kind, "count", skipped)
	if b.metrics != nil {
		b.metrics.entriesSkipped.Add(float64(skipped))
	}
}

// Upload replaces the exchange buffer at handle with data.
func (b *Bridge) Upload(ctx context.Context, handle uint64, data []byte) error {
	if !b.running {
		return ErrNotRunning
	}
	_, span := b.span(ctx, "bridge.Upload",
		attribute.Int64("buffer.handle", int64(handle)),
		attribute.Int("buffer.bytes", len(data)))

	start := time.Now()
	err := callErr("upload_buffer", b.core.UploadBuffer(handle, data))
	b.observe("upload_buffer", start)
	endSpan(span, err)
	if err != nil {
		return err
	}
	b.buffers.MarkUploaded(handle, len(data))
	if b.metrics != nil {
		b.metrics.bufferBytes.WithLabelValues("upload").Add(float64(len(data)))
		b.metrics.liveBuffers.Set(float64(b.buffers.Handles()))
	}
	return nil
}

// Download reads the exchange buffer at handle. An absent or cleared
// handle yields an empty payload. Handles the host never uploaded resolve
// locally without a boundary call.
func (b *Bridge) Download(ctx context.Context, handle uint64) ([]byte, error) {
	if !b.running {
		return nil, ErrNotRunning
	}
	if b.buffers.KnownEmpty(handle) {
		return nil, nil
	}
	_, span := b.span(ctx, "bridge.Download",
		attribute.Int64("buffer.handle", int64(handle)))

	start := time.Now()
	data, err := readAll("download_buffer", func(dst []byte, size *int) protocol.ResultCode {
		return b.core.DownloadBuffer(handle, dst, size)
	})
	b.observe("download_buffer", start)
	endSpan(span, err)
	if err != nil {
		return nil, err
	}
	if b.metrics != nil {
		b.metrics.bufferBytes.WithLabelValues("download").Add(float64(len(data)))
	}
	return data, nil
}

// Clear releases the exchange buffer at handle. Clearing an absent handle
// succeeds.
func (b *Bridge) Clear(ctx context.Context, handle uint64) error {
	if !b.running {
		return ErrNotRunning
	}
	_, span := b.span(ctx, "bridge.Clear",
		attribute.Int64("buffer.handle", int64(handle)))

	start := time.Now()
	err := callErr("clear_buffer", b.core.ClearBuffer(handle))
	b.observe("clear_buffer", start)
	endSpan(span, err)
	if err != nil {
		return err
	}
	b.buffers.MarkCleared(handle)
	if b.metrics != nil {
		b.metrics.liveBuffers.Set(float64(b.buffers.Handles()))
	}
	return nil
}

// Profiling reads and decodes the pending profiling snapshot, nil when
// the core has produced none since the last read.
func (b *Bridge) Profiling(ctx context.Context) (*profiling.Snapshot, error) {
	if !b.running {
		return nil, ErrNotRunning
	}
	_, span := b.span(ctx, "bridge.Profiling")

	start := time.Now()
	data, err := readAll("profiling", b.core.Profiling)
	b.observe("profiling", start)
	if err != nil {
		endSpan(span, err)
		return nil, err
	}
	if len(data) == 0 {
		endSpan(span, nil)
		return nil, nil
	}
	snap, err := profiling.DecodeSnapshot(data)
	if err != nil {
		err = fmt.Errorf("engine: decode profiling snapshot: %w", err)
	}
	endSpan(span, err)
	return snap, err
}

// Running reports whether Start succeeded and Close has not been called.
func (b *Bridge) Running() bool {
	return b.running
}

// PendingCommands returns how many submitted commands await responses.
func (b *Bridge) PendingCommands() int {
	return b.correlator.PendingCount()
}
