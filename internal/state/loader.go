package state

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/five82/fledgling/internal/birds"
)

const tracerName = "github.com/five82/fledgling/internal/state"

// Loader runs the fetch routine against a Store. Failures never escape: they
// become the store's error state.
type Loader struct {
	store   *Store
	fetcher birds.Fetcher
	logger  hclog.Logger
	tracer  trace.Tracer
}

// NewLoader wires a Loader. A nil logger discards output; spans go to the
// global tracer provider.
func NewLoader(store *Store, fetcher birds.Fetcher, logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loader{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// WithTracer returns a copy of l that records spans on tracer.
func (l *Loader) WithTracer(tracer trace.Tracer) *Loader {
	dup := *l
	dup.tracer = tracer
	return &dup
}

// Load starts and completes a load in one call.
func (l *Loader) Load(ctx context.Context) bool {
	return l.Complete(ctx, l.store.Begin())
}

// Complete fetches for a token previously issued by Store.Begin and settles
// the store. It reports whether the result was applied; results for tokens
// superseded by a newer Begin are dropped.
func (l *Loader) Complete(ctx context.Context, seq uint64) bool {
	ctx, span := l.tracer.Start(ctx, "birds.load",
		trace.WithAttributes(attribute.Int64("fledgling.load.seq", int64(seq))))
	defer span.End()

	start := time.Now()
	l.logger.Debug("load started", "seq", seq)

	payload, err := l.fetcher.FetchBirds(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, FailureMessage(err))

		applied := l.store.Fail(seq, err)
		span.SetAttributes(attribute.Bool("fledgling.load.applied", applied))
		if !applied {
			l.logger.Debug("discarded stale failure", "seq", seq, "error", err)
			return false
		}
		l.logger.Warn("load failed", "seq", seq, "kind", errorKind(err), "error", err, "elapsed", time.Since(start))
		return true
	}

	listing := birds.Classify(payload)
	span.SetAttributes(
		attribute.String("fledgling.payload.shape", listing.Shape.String()),
		attribute.Int("fledgling.payload.entries", listing.Len()),
	)

	applied := l.store.Succeed(seq, payload)
	span.SetAttributes(attribute.Bool("fledgling.load.applied", applied))
	if !applied {
		l.logger.Debug("discarded stale response", "seq", seq)
		return false
	}
	l.logger.Info("load finished", "seq", seq, "shape", listing.Shape, "entries", listing.Len(), "elapsed", time.Since(start))
	if l.logger.IsTrace() {
		l.logger.Trace("payload", "body", string(payload.Raw))
	}
	return true
}

func errorKind(err error) string {
	var reqErr *birds.RequestError
	var trErr *birds.TransportError
	switch {
	case errors.As(err, &reqErr):
		return "request"
	case errors.As(err, &trErr):
		return "transport"
	default:
		return "other"
	}
}
