package updater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/patchwork/pkg/protocol"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

// ErrFailed is returned by Update once a previous apply has failed.
var ErrFailed = errors.New("updater: live tree out of sync after failed apply")

// Change is one published update.
type Change struct {
	Seq     uint64
	Patches []vdom.Patch
	Frame   []byte // Encoded Patches frame, shared; do not modify
}

// Subscriber receives changes in sequence order. It runs while the updater
// lock is held, so it must not block or call back into the Updater.
type Subscriber func(Change)

// Updater serializes diff and apply cycles for one view.
type Updater struct {
	mu      sync.Mutex
	current vdom.Node
	host    vdom.Applier
	seq     uint64
	err     error

	subs   map[int]Subscriber
	nextID int

	history *History
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics
}

// New creates an Updater whose current tree is initial. host may be nil,
// in which case patches are only published.
func New(initial vdom.Node, host vdom.Applier, opts ...Option) *Updater {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Updater{
		current: initial,
		host:    host,
		subs:    make(map[int]Subscriber),
		history: NewHistory(o.historySize),
		logger:  o.logger,
		tracer:  o.tracer(),
		metrics: newMetrics(o),
	}
}

// Update replaces the current tree with next and returns the patches that
// were applied and published. An update with no differences publishes
// nothing and keeps the sequence number. An update whose patch frame would
// exceed protocol.MaxPayloadSize is rejected with an error wrapping
// protocol.ErrFrameTooLarge and a nil next with vdom.ErrNilRoot; in both
// cases the host and current tree are left untouched.
func (u *Updater) Update(ctx context.Context, next vdom.Node) (uint64, []vdom.Patch, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.err != nil {
		return u.seq, nil, fmt.Errorf("%w: %w", ErrFailed, u.err)
	}
	if vdom.Size(next) == 0 {
		return u.seq, nil, fmt.Errorf("updater: %w", vdom.ErrNilRoot)
	}

	ctx, span := u.tracer.Start(ctx, "updater.update")
	defer span.End()
	start := time.Now()

	_, diffSpan := u.tracer.Start(ctx, "vdom.diff")
	patches := vdom.Diff(u.current, next)
	diffSpan.SetAttributes(attribute.Int("patchwork.patches", len(patches)))
	diffSpan.End()

	if len(patches) == 0 {
		u.current = next
		span.SetAttributes(attribute.Int64("patchwork.seq", int64(u.seq)))
		return u.seq, nil, nil
	}

	payload := protocol.EncodePatches(&protocol.PatchesFrame{Seq: u.seq + 1, Patches: patches})
	if len(payload) > protocol.MaxPayloadSize {
		err := fmt.Errorf("updater: seq %d: %w (%d bytes)", u.seq+1, protocol.ErrFrameTooLarge, len(payload))
		span.RecordError(err)
		span.SetStatus(codes.Error, "frame too large")
		u.logger.Warn("update rejected", "seq", u.seq+1, "patches", len(patches), "bytes", len(payload))
		return u.seq, nil, err
	}

	if u.host != nil {
		_, applySpan := u.tracer.Start(ctx, "vdom.apply")
		err := u.host.Apply(patches)
		if err != nil {
			applySpan.RecordError(err)
			applySpan.SetStatus(codes.Error, err.Error())
		}
		applySpan.End()

		if err != nil {
			u.err = err
			u.metrics.applyErrors.Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "apply failed")
			u.logger.Error("patch apply failed", "seq", u.seq+1, "patches", len(patches), "error", err)
			return u.seq, nil, err
		}
	}

	u.seq++
	u.current = next
	frame := protocol.NewFrame(protocol.FramePatches, payload).Encode()
	u.history.Add(u.seq, frame)

	change := Change{Seq: u.seq, Patches: patches, Frame: frame}
	for _, sub := range u.subs {
		sub(change)
	}

	elapsed := time.Since(start)
	u.metrics.updatesTotal.Inc()
	u.metrics.recordPatches(patches)
	u.metrics.updateDuration.Observe(elapsed.Seconds())
	span.SetAttributes(
		attribute.Int64("patchwork.seq", int64(u.seq)),
		attribute.Int("patchwork.patches", len(patches)),
	)
	u.logger.Debug("update applied", "seq", u.seq, "patches", len(patches), "duration", elapsed)

	return u.seq, patches, nil
}

// Current returns the current tree and its sequence number.
func (u *Updater) Current() (uint64, vdom.Node) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.seq, u.current
}

// Seq returns the sequence number of the last published change.
func (u *Updater) Seq() uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.seq
}

// Err returns the apply error that stopped the updater, if any.
func (u *Updater) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// History returns the frame history used for resync.
func (u *Updater) History() *History {
	return u.history
}

// Subscribe registers fn and returns the tree and sequence number it
// starts from. fn sees every change after seq. Call cancel to stop.
func (u *Updater) Subscribe(fn Subscriber) (seq uint64, root vdom.Node, cancel func()) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id := u.nextID
	u.nextID++
	u.subs[id] = fn
	u.metrics.subscribers.Inc()

	var once sync.Once
	cancel = func() {
		once.Do(func() {
			u.mu.Lock()
			defer u.mu.Unlock()
			delete(u.subs, id)
			u.metrics.subscribers.Dec()
		})
	}
	return u.seq, u.current, cancel
}
