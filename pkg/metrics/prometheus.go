package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the journal service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	sizeBuckets    []float64
	constLabels    map[string]string
	prefix         string
	registry       prometheus.Registerer

	// Journal metrics
	recordsAppended      prometheus.Counter
	submissionsRejected  *prometheus.CounterVec
	submissionsDuplicate prometheus.Counter
	recordsLoaded        prometheus.Gauge

	// Store metrics
	storeReads        prometheus.Counter
	storeReadErrors   prometheus.Counter
	storeReadLatency  prometheus.Histogram
	storeWrites       prometheus.Counter
	storeWriteErrors  prometheus.Counter
	storeWriteLatency prometheus.Histogram
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	rowsDropped       prometheus.Counter

	// Analysis and report metrics
	analysisRenders  *prometheus.CounterVec
	emptyRenders     prometheus.Counter
	reportsGenerated prometheus.Counter
	reportsFailed    prometheus.Counter
	reportLatency    prometheus.Histogram
	reportSize       prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithRegistry the
// metrics register on prometheus.DefaultRegisterer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "mindlab",
		subsystem:      "journal",
		latencyBuckets: prometheus.ExponentialBuckets(1, 2, 14),
		sizeBuckets:    prometheus.ExponentialBuckets(1024, 2, 12),
		constLabels:    make(map[string]string),
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// NewMetricsManager is an alias for NewManager.
func NewMetricsManager(opts ...Option) *Manager {
	return NewManager(opts...)
}

func (m *Manager) name(n string) string {
	if m.prefix == "" {
		return n
	}
	return m.prefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts(m.counterOpts(name, help))
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.recordsAppended = auto.NewCounter(m.counterOpts("records_appended_total", "Total number of journal records persisted"))
	m.submissionsRejected = auto.NewCounterVec(m.counterOpts("submissions_rejected_total", "Submissions refused before reaching the store"), []string{"reason"})
	m.submissionsDuplicate = auto.NewCounter(m.counterOpts("submissions_duplicate_total", "Repeated submissions absorbed by the duplicate guard"))
	m.recordsLoaded = auto.NewGauge(m.gaugeOpts("records_loaded", "Records returned by the last uncached store load"))

	m.storeReads = auto.NewCounter(m.counterOpts("store_reads_total", "Total number of sheet reads"))
	m.storeReadErrors = auto.NewCounter(m.counterOpts("store_read_errors_total", "Total number of failed sheet reads"))
	m.storeReadLatency = auto.NewHistogram(m.histogramOpts("store_read_latency_milliseconds", "Sheet read latency in milliseconds", m.latencyBuckets))
	m.storeWrites = auto.NewCounter(m.counterOpts("store_writes_total", "Total number of sheet rewrites"))
	m.storeWriteErrors = auto.NewCounter(m.counterOpts("store_write_errors_total", "Total number of failed appends"))
	m.storeWriteLatency = auto.NewHistogram(m.histogramOpts("store_write_latency_milliseconds", "Append latency in milliseconds", m.latencyBuckets))
	m.cacheHits = auto.NewCounter(m.counterOpts("cache_hits_total", "Loads served from the time-boxed cache"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("cache_misses_total", "Loads that had to read the sheet"))
	m.rowsDropped = auto.NewCounter(m.counterOpts("rows_dropped_total", "Sheet rows dropped because a date or number did not parse"))

	m.analysisRenders = auto.NewCounterVec(m.counterOpts("analysis_renders_total", "Analyses rendered by period"), []string{"period"})
	m.emptyRenders = auto.NewCounter(m.counterOpts("analysis_empty_total", "Analyses whose window held no records"))
	m.reportsGenerated = auto.NewCounter(m.counterOpts("reports_generated_total", "Total number of PDF reports produced"))
	m.reportsFailed = auto.NewCounter(m.counterOpts("reports_failed_total", "Total number of failed report generations"))
	m.reportLatency = auto.NewHistogram(m.histogramOpts("report_latency_milliseconds", "Report generation latency in milliseconds", m.latencyBuckets))
	m.reportSize = auto.NewHistogram(m.histogramOpts("report_size_bytes", "Size of generated reports in bytes", m.sizeBuckets))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.latencyBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordRecordAppended increments the appended records counter.
func RecordRecordAppended() {
	globalManager.storeWrites.Inc()
	globalManager.recordsAppended.Inc()
}

// RecordSubmissionRejected counts a submission refused for reason.
func RecordSubmissionRejected(reason string) {
	globalManager.submissionsRejected.WithLabelValues(reason).Inc()
}

// RecordSubmissionDuplicate counts a repeated submission.
func RecordSubmissionDuplicate() {
	globalManager.submissionsDuplicate.Inc()
}

// UpdateRecordsLoaded sets the number of records the last load produced.
func UpdateRecordsLoaded(count int) {
	globalManager.recordsLoaded.Set(float64(count))
}

// Store Metrics Functions.

// RecordStoreReadLatency observes one sheet read.
func RecordStoreReadLatency(latencyMs float64) {
	globalManager.storeReads.Inc()
	globalManager.storeReadLatency.Observe(latencyMs)
}

// RecordStoreReadError increments the failed reads counter.
func RecordStoreReadError() {
	globalManager.storeReadErrors.Inc()
}

// RecordStoreWriteLatency observes one append.
func RecordStoreWriteLatency(latencyMs float64) {
	globalManager.storeWriteLatency.Observe(latencyMs)
}

// RecordStoreWriteError increments the failed appends counter.
func RecordStoreWriteError() {
	globalManager.storeWriteErrors.Inc()
}

// RecordCacheHit counts a load served from cache.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss counts a load that read the sheet.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordRowsDropped adds n dropped rows.
func RecordRowsDropped(n int) {
	globalManager.rowsDropped.Add(float64(n))
}

// Analysis and Report Metrics Functions.

// RecordAnalysisRender counts an analysis for period; empty marks a window
// with no records.
func RecordAnalysisRender(period string, empty bool) {
	globalManager.analysisRenders.WithLabelValues(period).Inc()
	if empty {
		globalManager.emptyRenders.Inc()
	}
}

// RecordReportGenerated observes a successful report.
func RecordReportGenerated(latencyMs float64, sizeBytes int) {
	globalManager.reportsGenerated.Inc()
	globalManager.reportLatency.Observe(latencyMs)
	globalManager.reportSize.Observe(float64(sizeBytes))
}

// RecordReportFailed increments the failed reports counter.
func RecordReportFailed() {
	globalManager.reportsFailed.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
