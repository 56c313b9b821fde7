// Package metrics exposes Prometheus instrumentation for the data layer.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/five82/atlas/internal/apierr"
)

// Metrics holds all collectors. It satisfies cache.Observer and
// request.Observer.
type Metrics struct {
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	CacheEvictions *prometheus.CounterVec
	Retries        *prometheus.CounterVec
	RetryDelay     prometheus.Histogram
	Superseded     *prometheus.CounterVec
	Requests       *prometheus.CounterVec
	Refreshes      *prometheus.CounterVec
}

// New creates and registers all collectors on reg. A nil reg uses a private
// registry so tests and multiple instances never collide.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_cache_hits_total",
			Help: "Cache lookups that returned a live entry",
		}, []string{"op"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_cache_misses_total",
			Help: "Cache lookups that found nothing or an expired entry",
		}, []string{"op"}),
		CacheEvictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_cache_evictions_total",
			Help: "Entries removed from the cache",
		}, []string{"reason"}),
		Retries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_request_retries_total",
			Help: "Retries issued after transient failures",
		}, []string{"op"}),
		RetryDelay: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "atlas_request_retry_delay_seconds",
			Help:    "Backoff delay before each retry",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
		Superseded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_request_superseded_total",
			Help: "Requests cancelled because a newer request used the same key",
		}, []string{"op"}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_requests_total",
			Help: "Settled coordinated requests by outcome",
		}, []string{"op", "outcome"}),
		Refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_store_refreshes_total",
			Help: "Collection refreshes by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) CacheHit(key string)  { m.CacheHits.WithLabelValues(Op(key)).Inc() }
func (m *Metrics) CacheMiss(key string) { m.CacheMisses.WithLabelValues(Op(key)).Inc() }

func (m *Metrics) CacheEvict(_ string, expired bool) {
	reason := "capacity"
	if expired {
		reason = "expired"
	}
	m.CacheEvictions.WithLabelValues(reason).Inc()
}

func (m *Metrics) RequestRetried(key string, _ int, delay time.Duration) {
	m.Retries.WithLabelValues(Op(key)).Inc()
	m.RetryDelay.Observe(delay.Seconds())
}

func (m *Metrics) RequestSuperseded(key string) {
	m.Superseded.WithLabelValues(Op(key)).Inc()
}

func (m *Metrics) RequestFinished(key string, err error) {
	m.Requests.WithLabelValues(Op(key), Outcome(err)).Inc()
}

// ObserveRefresh records the outcome of a collection refresh.
func (m *Metrics) ObserveRefresh(err error) {
	m.Refreshes.WithLabelValues(Outcome(err)).Inc()
}

// Op reduces a cache or request key to its operation prefix so that label
// cardinality stays bounded ("country-FRA" becomes "country").
func Op(key string) string {
	if i := strings.IndexAny(key, "-/"); i > 0 {
		key = key[:i]
	}
	if key == "all" {
		return "all-countries"
	}
	return key
}

// Outcome labels an error by kind, or "success".
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	return apierr.KindOf(err).String()
}

// Totals sums each counter across its labels.
type Totals struct {
	CacheHits      float64
	CacheMisses    float64
	CacheEvictions float64
	Retries        float64
	Superseded     float64
	Requests       float64
	Refreshes      float64
}

// HitRatio returns hits / (hits + misses), or 0 before any lookup.
func (t Totals) HitRatio() float64 {
	lookups := t.CacheHits + t.CacheMisses
	if lookups == 0 {
		return 0
	}
	return t.CacheHits / lookups
}

// Totals collects the current counter values for the diagnostics view.
func (m *Metrics) Totals() Totals {
	return Totals{
		CacheHits:      sum(m.CacheHits),
		CacheMisses:    sum(m.CacheMisses),
		CacheEvictions: sum(m.CacheEvictions),
		Retries:        sum(m.Retries),
		Superseded:     sum(m.Superseded),
		Requests:       sum(m.Requests),
		Refreshes:      sum(m.Refreshes),
	}
}

// WriteFile dumps every metric gathered by g in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func WriteFile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, g)
}

func sum(c prometheus.Collector) float64 {
	ch := make(chan prometheus.Metric)
	go func() {
		c.Collect(ch)
		close(ch)
	}()
	var total float64
	for metric := range ch {
		var pb dto.Metric
		if err := metric.Write(&pb); err != nil {
			continue
		}
		if counter := pb.GetCounter(); counter != nil {
			total += counter.GetValue()
		}
	}
	return total
}
