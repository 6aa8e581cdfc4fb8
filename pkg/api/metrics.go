package api

import (
	"sync"
	"time"

	foundation "github.com/estafette/estafette-foundation"
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

func UpdateMetrics(requestCount metrics.Counter, requestLatency metrics.Histogram, funcName string, begin time.Time) {
	funcName = foundation.ToLowerSnakeCase(funcName)

	requestCount.With("func", funcName).Add(1)
	requestLatency.With("func", funcName).Observe(time.Since(begin).Seconds())
}

var (
	metricsMutex      sync.Mutex
	requestCounters   = map[string]metrics.Counter{}
	requestHistograms = map[string]metrics.Histogram{}
	gcCounter         metrics.Counter
)

func NewRequestCounter(subsystem string) metrics.Counter {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	if _, ok := requestCounters[subsystem]; !ok {
		requestCounters[subsystem] = kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: subsystem,
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, []string{"func"})
	}

	return requestCounters[subsystem]
}

func NewRequestHistogram(subsystem string) metrics.Histogram {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	if _, ok := requestHistograms[subsystem]; !ok {
		requestHistograms[subsystem] = kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: subsystem,
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, []string{"func"})
	}

	return requestHistograms[subsystem]
}

// NewGarbageCollectionCounter counts deleted and failed-to-delete cloud resources by project, kind and outcome
func NewGarbageCollectionCounter() metrics.Counter {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	if gcCounter == nil {
		gcCounter = kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "gc",
			Name:      "resources_total",
			Help:      "Number of orphaned cloud resources handled by garbage collection.",
		}, []string{"project", "kind", "outcome"})
	}

	return gcCounter
}
