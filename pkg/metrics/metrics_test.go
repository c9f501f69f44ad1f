package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty namespace", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithPrometheusRegistry(registry))

			Convey("Then it should keep the default namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "lankaconnect")
			})
		})

		Convey("When creating with nil histogram buckets", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then it should fall back to the default buckets", func() {
				So(manager, ShouldNotBeNil)
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})

		Convey("When creating with a nil registry", func() {
			manager := NewManager(
				WithNamespace("nilreg"),
				WithPrometheusRegistry(nil),
			)

			Convey("Then it should still be created", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording pipeline metrics", func() {
			Convey("Then it should record served recommendations", func() {
				So(func() {
					RecordRecommendationsServed("get_scored_recommendations", 5)
					RecordRecommendationsServed("get_recommendations_for_date", 3)
				}, ShouldNotPanic)
			})

			Convey("And it should record scored events", func() {
				So(func() {
					RecordEventsScored(100)
					RecordEventsScored(0)
				}, ShouldNotPanic)
			})

			Convey("And it should record fallback component scores", func() {
				So(func() {
					RecordEdgeCaseFallback("geographic")
					RecordEdgeCaseFallback("cultural")
				}, ShouldNotPanic)
			})

			Convey("And it should record filtered candidates", func() {
				So(func() {
					RecordCandidateFiltered("distance")
					RecordCandidateFiltered("cultural_floor")
					RecordCandidateFiltered("age")
				}, ShouldNotPanic)
			})

			Convey("And it should observe pipeline latency", func() {
				So(func() {
					ObservePipelineLatency("get_scored_recommendations", 12.5)
					ObservePipelineLatency("get_scored_recommendations", 30.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording conflict metrics", func() {
			Convey("Then it should record detected conflicts", func() {
				So(func() {
					RecordConflictDetected("time_overlap")
					RecordConflictDetected("cultural_floor")
				}, ShouldNotPanic)
			})

			Convey("And it should record resolved conflicts", func() {
				So(func() {
					RecordConflictResolved("time_overlap", "kept")
					RecordConflictResolved("time_overlap", "rejected")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording provider metrics", func() {
			Convey("Then it should observe provider latency", func() {
				So(func() {
					ObserveProviderLatency("calendar", 4.0)
					ObserveProviderLatency("geo", 7.5)
					ObserveProviderLatency("prefs", 1.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record provider errors", func() {
				So(func() {
					RecordProviderError("calendar")
					RecordProviderError("geo")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording with edge values", func() {
			Convey("Then zero and large counts should not panic", func() {
				So(func() {
					RecordRecommendationsServed("op", 0)
					RecordEventsScored(1000000)
					ObservePipelineLatency("op", 0.0)
					ObservePipelineLatency("op", 60000.0)
				}, ShouldNotPanic)
			})

			Convey("And empty label values should not panic", func() {
				So(func() {
					RecordEdgeCaseFallback("")
					RecordCandidateFiltered("")
					RecordConflictResolved("", "")
					RecordProviderError("")
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordEventsScored(1)
						RecordCandidateFiltered("distance")
						ObservePipelineLatency("get_scored_recommendations", float64(j))
						ObserveProviderLatency("calendar", float64(j))
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the engine registry", t, func() {
		Convey("When gathering metrics", func() {
			RecordEventsScored(1)
			families, err := Registry().Gather()

			Convey("Then the engine metrics should be exposed", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["lankaconnect_recommendation_events_scored_total"], ShouldBeTrue)
			})
		})
	})
}
