package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestCounter     metric.Int64Counter
	RequestDuration    metric.Float64Histogram
	DatasetLoads       metric.Int64Counter
	KeywordExtractions metric.Int64Counter
	ExportsGenerated   metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("port-inspection-analytics")

	requestCounter, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	datasetLoads, err := meter.Int64Counter(
		"dataset.loads.total",
		metric.WithDescription("Workbook loads, by cache outcome"),
	)
	if err != nil {
		return nil, err
	}

	keywordExtractions, err := meter.Int64Counter(
		"shipcheck.extractions.total",
		metric.WithDescription("RAKE keyword extraction runs"),
	)
	if err != nil {
		return nil, err
	}

	exportsGenerated, err := meter.Int64Counter(
		"export.csv.total",
		metric.WithDescription("CSV exports generated"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:     requestCounter,
		RequestDuration:    requestDuration,
		DatasetLoads:       datasetLoads,
		KeywordExtractions: keywordExtractions,
		ExportsGenerated:   exportsGenerated,
	}, nil
}

// RecordRequest records HTTP request metrics
func (m *Metrics) RecordRequest(method, path, status string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("http.status", status),
	}

	m.RequestCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	m.RequestDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

// RecordDatasetLoad records a workbook load and whether it hit the memo cache
func (m *Metrics) RecordDatasetLoad(table string, cacheHit bool) {
	attrs := []attribute.KeyValue{
		attribute.String("dataset.table", table),
		attribute.Bool("dataset.cache_hit", cacheHit),
	}

	m.DatasetLoads.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}

// RecordKeywordExtraction records one RAKE run for a vessel
func (m *Metrics) RecordKeywordExtraction(keywordCount int) {
	attrs := []attribute.KeyValue{
		attribute.Int("shipcheck.keywords", keywordCount),
	}

	m.KeywordExtractions.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}

// RecordExport records one generated CSV export
func (m *Metrics) RecordExport(authority string, rows int) {
	attrs := []attribute.KeyValue{
		attribute.String("export.authority", authority),
		attribute.Int("export.rows", rows),
	}

	m.ExportsGenerated.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}
