package pipeline

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/couchcryptid/eaip-etl/internal/domain"
	"github.com/couchcryptid/eaip-etl/internal/observability"
)

const tracerName = "github.com/couchcryptid/eaip-etl/internal/pipeline"

// Parsed field names used as the "field" metric label.
const (
	fieldHours    = "hours"
	fieldLateral  = "lateral"
	fieldVertical = "vertical"
)

// SectionTransformer implements Transformer using the domain section parsers.
type SectionTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// NewTransformer creates a SectionTransformer. Spans go to the global
// tracer provider.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *SectionTransformer {
	return &SectionTransformer{
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
	}
}

func (t *SectionTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	_, span := t.tracer.Start(ctx, "transform section", trace.WithAttributes(
		attribute.String("messaging.kafka.topic", raw.Topic),
		attribute.Int("messaging.kafka.partition", raw.Partition),
		attribute.Int64("messaging.kafka.offset", raw.Offset),
	))
	defer span.End()

	sec, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, failSpan(span, err)
	}
	span.SetAttributes(
		attribute.String("eaip.airfield", sec.Airfield),
		attribute.String("eaip.section", sec.Section),
		attribute.Int("eaip.rows", len(sec.Rows)),
	)

	parsed, err := domain.ParseSection(sec)
	if err != nil {
		return domain.OutputEvent{}, failSpan(span, err)
	}
	parsed.RawPayload = raw.Value

	t.recordOutcomes(parsed)
	t.logger.Debug("section parsed",
		"id", parsed.ID,
		"airfield", parsed.Airfield,
		"section", parsed.Section,
		"rows_skipped", parsed.RowsSkipped,
	)

	out, err := domain.SerializeParsedSection(parsed)
	if err != nil {
		return domain.OutputEvent{}, failSpan(span, err)
	}
	return out, nil
}

func (t *SectionTransformer) recordOutcomes(p domain.ParsedSection) {
	if p.RowsSkipped > 0 {
		t.metrics.RowsSkipped.WithLabelValues(p.Section).Add(float64(p.RowsSkipped))
	}

	switch p.Section {
	case domain.SectionOperationHours:
		t.metrics.ObserveParse(fieldHours, p.Administration != nil)
	case domain.SectionAirspace:
		for _, vol := range p.Airspace {
			t.metrics.ObserveParse(fieldLateral, !vol.Lateral.IsEmpty())
			t.metrics.ObserveParse(fieldVertical, vol.UpperLimit != nil)
			t.metrics.ObserveParse(fieldVertical, vol.LowerLimit != nil)
			t.metrics.ObserveParse(fieldHours, vol.OperatingHours != nil)
		}
	case domain.SectionRadio:
		for _, rf := range p.Radios {
			t.metrics.ObserveParse(fieldHours, rf.OperatingHours != nil)
		}
	}
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
