package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/eaip-etl/internal/domain"
	"github.com/couchcryptid/eaip-etl/internal/observability"
)

// BatchExtractor pulls raw AD section messages from the collector topic.
// A batch may be shorter than batchSize, or empty when nothing arrived
// within the flush interval.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer parses one raw section message into its sink form. An error
// means the message can never be parsed, not that the caller should retry.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader publishes parsed sections. A failed load is retried with the
// same sections, so implementations must tolerate duplicates.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Pipeline moves AD sections from the collector topic to the parsed topic.
// Offsets are committed only once a section is either published or known
// to be unparseable, so a crash replays at most the batch in flight.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	tracer      trace.Tracer
	ready       atomic.Bool
	batchSize   int
}

// New wires the three stages into a Pipeline reading batchSize messages at
// a time.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer(tracerName),
		batchSize:   batchSize,
	}
}

// CheckReadiness reports ready after the first parsed section reaches the
// sink. A run of unparseable messages alone does not make the service ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not loaded any sections yet")
	}
	return nil
}

// Run polls for batches until ctx is cancelled. Cancellation is a clean
// stop and returns nil.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	b := backoff{current: initialBackoff}
	for ctx.Err() == nil {
		if !p.cycle(ctx, &b) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// cycle extracts one batch and hands it on. Broker errors back off before
// the next poll. Returns false once ctx has ended.
func (p *Pipeline) cycle(ctx context.Context, b *backoff) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	switch {
	case err != nil && ctx.Err() != nil:
		return false
	case err != nil:
		p.logger.Error("extract batch failed", "error", err)
		return b.wait(ctx)
	case len(rawBatch) == 0:
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	b.reset()

	ctx, span := p.tracer.Start(ctx, "etl batch", trace.WithAttributes(attribute.Int("batch.size", len(rawBatch))))
	defer span.End()

	batch := p.parseBatch(ctx, rawBatch)
	span.SetAttributes(attribute.Int("batch.unparseable", batch.skipped))
	if len(batch.events) == 0 {
		return true
	}

	if err := p.loader.LoadBatch(ctx, batch.events); err != nil {
		p.logger.Error("load batch failed", "error", err, "batch_size", len(batch.events))
		span.SetAttributes(attribute.Int("batch.loaded", 0))
		return b.wait(ctx)
	}
	span.SetAttributes(attribute.Int("batch.loaded", len(batch.events)))
	p.metrics.MessagesProduced.Add(float64(len(batch.events)))

	for _, raw := range batch.sources {
		p.commit(ctx, raw)
	}
	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return true
}

// parsedBatch pairs each parsed section with the message it came from, so
// offsets are committed only for sections that were published.
type parsedBatch struct {
	events  []domain.OutputEvent
	sources []domain.RawEvent
	skipped int
}

// parseBatch runs the transformer over a batch in message order. An
// unparseable message is committed straight away so a bad table cannot
// stall its partition.
func (p *Pipeline) parseBatch(ctx context.Context, rawBatch []domain.RawEvent) parsedBatch {
	batch := parsedBatch{
		events:  make([]domain.OutputEvent, 0, len(rawBatch)),
		sources: make([]domain.RawEvent, 0, len(rawBatch)),
	}
	for _, raw := range rawBatch {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("unparseable section, skipping",
				"error", err,
				"key", string(raw.Key),
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commit(ctx, raw)
			batch.skipped++
			continue
		}
		batch.events = append(batch.events, out)
		batch.sources = append(batch.sources, raw)
	}
	return batch
}

// commit acknowledges raw to the broker. Messages without a commit hook
// are ignored.
func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// backoff doubles from initialBackoff up to maxBackoff across consecutive
// broker failures.
type backoff struct {
	current time.Duration
}

func (b *backoff) reset() {
	b.current = initialBackoff
}

// wait sleeps for the current delay and then doubles it. Returns false if
// ctx ended first.
func (b *backoff) wait(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if !retry.SleepWithContext(ctx, b.current) {
		return false
	}
	b.current = retry.NextBackoff(b.current, maxBackoff)
	return true
}
