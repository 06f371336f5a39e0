// Package metrics holds the Prometheus collectors of the control plane.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dyndns"

var UpdateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "update",
	Name:      "requests_total",
	Help:      "Dynamic update requests by overall status (OK, KO).",
}, []string{"status"})

var UpdateNames = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "update",
	Name:      "names_total",
	Help:      "Owner names processed by the update protocol, by outcome.",
}, []string{"outcome"})

var LookupRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "lookup",
	Name:      "requests_total",
	Help:      "Lookup requests by result (answer, empty, error).",
}, []string{"result"})

var AdvancedMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "advanced",
	Name:      "mutations_total",
	Help:      "Advanced record mutations by operation and result.",
}, []string{"op", "result"})

var OrphansSwept = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "advanced",
	Name:      "orphan_domains_swept_total",
	Help:      "Advanced-owned domains removed because they had no records left.",
})

var cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "cache",
	Name:      "requests_total",
	Help:      "Named cache lookups by cache and result (hit, miss).",
}, []string{"cache", "result"})

// CacheObserver reports named cache hits and misses.
type CacheObserver struct{}

func (CacheObserver) CacheHit(name string)  { cacheRequests.WithLabelValues(name, "hit").Inc() }
func (CacheObserver) CacheMiss(name string) { cacheRequests.WithLabelValues(name, "miss").Inc() }

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
