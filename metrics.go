package chainmap

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mapPrometheusMetrics sync.Once

	mapRehashes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chainmap",
			Subsystem: "map",
			Name:      "rehashes_total",
			Help:      "Number of times the bucket store was reallocated and all entries redistributed",
		},
		[]string{"name"},
	)
	mapFindScanLength = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chainmap",
			Subsystem: "map",
			Name:      "find_scan_length",
			Help:      "Number of chain entries inspected per lookup, which grows when the hash function distributes keys poorly",
			Buckets:   prometheus.ExponentialBuckets(1.0, 2.0, 8),
		},
		[]string{"name", "outcome"},
	)
	mapCapacity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "chainmap",
			Subsystem: "map",
			Name:      "capacity",
			Help:      "Current number of buckets",
		},
		[]string{"name"},
	)
)

type metrics struct {
	rehashes prometheus.Counter
	found    prometheus.Observer
	notFound prometheus.Observer
	capacity prometheus.Gauge
}

func newMetrics(name string) *metrics {
	mapPrometheusMetrics.Do(func() {
		prometheus.MustRegister(mapRehashes)
		prometheus.MustRegister(mapFindScanLength)
		prometheus.MustRegister(mapCapacity)
	})

	return &metrics{
		rehashes: mapRehashes.WithLabelValues(name),
		found:    mapFindScanLength.WithLabelValues(name, "Found"),
		notFound: mapFindScanLength.WithLabelValues(name, "NotFound"),
		capacity: mapCapacity.WithLabelValues(name),
	}
}

// The methods below accept a nil receiver so that uninstrumented maps pay
// a single nil check.

func (m *metrics) observeFind(scanned int, found bool) {
	if m == nil {
		return
	}
	if found {
		m.found.Observe(float64(scanned))
	} else {
		m.notFound.Observe(float64(scanned))
	}
}

func (m *metrics) observeRehash(capacity int) {
	if m == nil {
		return
	}
	m.rehashes.Inc()
	m.capacity.Set(float64(capacity))
}

func (m *metrics) setCapacity(capacity int) {
	if m == nil {
		return
	}
	m.capacity.Set(float64(capacity))
}
