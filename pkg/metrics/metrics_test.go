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
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with an isolated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.rankingsTotal, ShouldNotBeNil)
				So(manager.sortComparisons, ShouldNotBeNil)
				So(manager.httpRequests, ShouldNotBeNil)
			})

			Convey("And the metrics should be gatherable", func() {
				manager.rankingsTotal.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithPrometheusRegistry(registry),
			)
			So(manager, ShouldNotBeNil)
			So(manager.namespace, ShouldEqual, "test")
			So(manager.subsystem, ShouldEqual, "sub")
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording through the package functions", func() {
			So(func() {
				RecordRanking(12.5)
				RecordRankingError()
				RecordEventsRanked(10)
				RecordEventsRemoved(2)
				RecordEventsExcluded(1)
				RecordFallbackSubstitutions(3)
				RecordSortComparisons(420)
				RecordHTTPRequest("rank_events", "POST", "200")
				RecordHTTPRequestDuration("rank_events", "POST", "200", 3.2)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry serves them", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
