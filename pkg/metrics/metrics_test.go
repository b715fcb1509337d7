package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewMetricsManager(WithRegistry(registry))
			manager.recordsAppended.Inc()

			Convey("Then metrics use the journal namespace", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "mindlab_journal_records_appended_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithPrefix("x"),
				WithLatencyBuckets([]float64{0.1, 0.5, 1.0}),
				WithSizeBuckets([]float64{10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithRegistry(registry),
			)
			manager.cacheHits.Inc()

			Convey("Then names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() != "test_unit_x_cache_hits_total" {
						continue
					}
					found = true
					So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithPrefix(""),
				WithLatencyBuckets(nil),
				WithSizeBuckets([]float64{}),
				WithConstLabels(nil),
				WithRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "mindlab")
				So(manager.subsystem, ShouldEqual, "journal")
				So(manager.prefix, ShouldEqual, "")
				So(manager.latencyBuckets, ShouldResemble, prometheus.ExponentialBuckets(1, 2, 14))
				So(manager.constLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestJournalMetrics(t *testing.T) {
	Convey("Given the global manager", t, func() {
		m := globalManager

		Convey("When recording appends", func() {
			before := testutil.ToFloat64(m.recordsAppended)
			writes := testutil.ToFloat64(m.storeWrites)
			RecordRecordAppended()
			RecordRecordAppended()

			Convey("Then appends and writes advance together", func() {
				So(testutil.ToFloat64(m.recordsAppended)-before, ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.storeWrites)-writes, ShouldEqual, 2.0)
			})
		})

		Convey("When recording rejections by reason", func() {
			before := testutil.ToFloat64(m.submissionsRejected.WithLabelValues("validation"))
			RecordSubmissionRejected("validation")
			So(testutil.ToFloat64(m.submissionsRejected.WithLabelValues("validation"))-before, ShouldEqual, 1.0)
		})

		Convey("When recording dropped rows", func() {
			before := testutil.ToFloat64(m.rowsDropped)
			RecordRowsDropped(3)
			So(testutil.ToFloat64(m.rowsDropped)-before, ShouldEqual, 3.0)
		})

		Convey("When updating the loaded gauge", func() {
			UpdateRecordsLoaded(42)
			So(testutil.ToFloat64(m.recordsLoaded), ShouldEqual, 42.0)
		})

		Convey("When recording analyses", func() {
			renders := testutil.ToFloat64(m.analysisRenders.WithLabelValues("last_month"))
			empty := testutil.ToFloat64(m.emptyRenders)
			RecordAnalysisRender("last_month", false)
			RecordAnalysisRender("last_month", true)

			Convey("Then only empty windows count as empty renders", func() {
				So(testutil.ToFloat64(m.analysisRenders.WithLabelValues("last_month"))-renders, ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.emptyRenders)-empty, ShouldEqual, 1.0)
			})
		})

		Convey("When recording cache and store activity", func() {
			So(func() {
				RecordCacheHit()
				RecordCacheMiss()
				RecordStoreReadLatency(1.5)
				RecordStoreReadError()
				RecordStoreWriteLatency(4)
				RecordStoreWriteError()
				RecordSubmissionDuplicate()
				RecordReportGenerated(12, 2048)
				RecordReportFailed()
			}, ShouldNotPanic)
		})
	})
}

func TestOperationalMetrics(t *testing.T) {
	Convey("Given operational helpers", t, func() {
		Convey("Then HTTP metrics record", func() {
			So(func() {
				RecordHTTPRequest("/records", "POST", "201")
				RecordHTTPRequestDuration("/records", "POST", "201", 3.0)
			}, ShouldNotPanic)
		})

		Convey("Then error metrics record", func() {
			So(func() {
				RecordErrorByComponent("repository", "store_read")
				RecordErrorByType("validation", "warning")
				RecordErrorByEndpoint("/report", "GET", "report")
				RecordErrorLatency("report", "report", 25.0)
			}, ShouldNotPanic)
		})

		Convey("Then system metrics record", func() {
			So(func() {
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry gathers", func() {
			_, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
		})
	})
}
