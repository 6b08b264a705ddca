package api

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	draftRoute       = "/api/draft"
	draftSpanName    = "orderflow.draft.fetch"
	draftEventName   = "draft.request.metrics"
	draftEventDomain = "orderflow"
	tracerName       = "github.com/justnitesh531/orderflow/api"
)

// draftRequestMetrics records per-request observations for the draft read
// path and emits them both as a span and as a structured log record.
type draftRequestMetrics struct {
	logger         *log.Logger
	span           trace.Span
	start          time.Time
	fetchDuration  time.Duration
	encodeDuration time.Duration
	itemsReturned  int
	groupsReturned int
	errorStage     string
}

// newDraftRequestMetrics starts the request span and returns the span
// context to thread through downstream calls.
func newDraftRequestMetrics(ctx context.Context, logger *log.Logger) (*draftRequestMetrics, context.Context) {
	m := &draftRequestMetrics{
		logger: logger,
		start:  time.Now(),
	}
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, draftSpanName, trace.WithSpanKind(trace.SpanKindServer))
	m.span = span
	return m, spanCtx
}

func (m *draftRequestMetrics) ObserveFetch(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.fetchDuration = duration
}

func (m *draftRequestMetrics) ObserveEncode(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.encodeDuration = duration
}

func (m *draftRequestMetrics) SetItemsReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.itemsReturned = count
}

func (m *draftRequestMetrics) SetGroupsReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.groupsReturned = count
}

func (m *draftRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log finalises the span and writes the observability event. It must be
// called exactly once per request.
func (m *draftRequestMetrics) Log(status int, err error) {
	if m == nil {
		return
	}

	severityText, severityNumber := severityForStatus(status, err)

	attrs := []attribute.KeyValue{
		attribute.String("http.route", draftRoute),
		attribute.Int64("http.status_code", int64(status)),
		attribute.Float64("orderflow.draft.total_ms", durationToMillis(time.Since(m.start))),
		attribute.Int("orderflow.draft.items_returned", m.itemsReturned),
		attribute.Int("orderflow.draft.groups_returned", m.groupsReturned),
	}
	if m.fetchDuration > 0 {
		attrs = append(attrs, attribute.Float64("orderflow.draft.fetch_ms", durationToMillis(m.fetchDuration)))
	}
	if m.encodeDuration > 0 {
		attrs = append(attrs, attribute.Float64("orderflow.draft.encode_ms", durationToMillis(m.encodeDuration)))
	}
	if m.errorStage != "" {
		attrs = append(attrs, attribute.String("orderflow.draft.error_stage", m.errorStage))
	}
	if err != nil {
		attrs = append(attrs, attribute.String("error.message", err.Error()))
	}

	eventAttrs := append([]attribute.KeyValue{
		attribute.String("event.name", draftEventName),
		attribute.String("event.domain", draftEventDomain),
		attribute.String("severity_text", severityText),
		attribute.Int("severity_number", severityNumber),
	}, attrs...)

	if m.span != nil {
		m.span.SetAttributes(attrs...)
		m.span.AddEvent("observability.event", trace.WithAttributes(eventAttrs...))
		if err != nil {
			m.span.SetStatus(codes.Error, err.Error())
		} else if status >= http.StatusInternalServerError {
			m.span.SetStatus(codes.Error, http.StatusText(status))
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}

	fields := log.Fields{
		"event.name":      draftEventName,
		"event.domain":    draftEventDomain,
		"severity_text":   severityText,
		"severity_number": severityNumber,
		"attributes":      attributesToFieldMap(attrs),
	}
	if m.span != nil {
		sc := m.span.SpanContext()
		if sc.HasTraceID() {
			fields["trace_id"] = sc.TraceID().String()
		}
		if sc.HasSpanID() {
			fields["span_id"] = sc.SpanID().String()
		}
	}

	m.logger.WithFields(fields).Info("observability.event")
}

func severityForStatus(status int, err error) (string, int) {
	switch {
	case err != nil || status >= http.StatusInternalServerError:
		return "ERROR", 17
	case status >= http.StatusBadRequest:
		return "WARN", 13
	default:
		return "INFO", 9
	}
}

func attributesToFieldMap(attrs []attribute.KeyValue) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
