package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kanso"

var (
	registerOnce sync.Once

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests served by the API.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "HTTP requests currently being handled.",
	})

	weekRollovers = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "week_rollovers_total",
		Help:      "Weeks started, by trigger (create, lazy, forced).",
	}, []string{"trigger"})

	weeksArchived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "weeks_archived_total",
		Help:      "Weeks pushed into a timetable's history.",
	})

	statusToggles = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_toggles_total",
		Help:      "Daily status toggles applied.",
	})

	catalogEdits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_edits_total",
		Help:      "Activity catalog replacements applied.",
	})

	statsCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_lookups_total",
		Help:      "Stats cache lookups, by result (hit, miss, stale).",
	}, []string{"result"})

	statsJobs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_jobs_total",
		Help:      "Stats worker jobs, by outcome (done, failed, dropped).",
	}, []string{"outcome"})
)

// MustRegister registers the package collectors once.
func MustRegister(registerer prometheus.Registerer) {
	registerOnce.Do(func() {
		registerer.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			httpRequestsInFlight,
			weekRollovers,
			weeksArchived,
			statusToggles,
			catalogEdits,
			statsCacheLookups,
			statsJobs,
		)
	})
}

func ObserveRollover(trigger string, archived bool) {
	weekRollovers.WithLabelValues(trigger).Inc()
	if archived {
		weeksArchived.Inc()
	}
}

func ObserveToggle() { statusToggles.Inc() }

func ObserveCatalogEdit() { catalogEdits.Inc() }

func ObserveStatsCache(result string) {
	statsCacheLookups.WithLabelValues(result).Inc()
}

func ObserveStatsJob(outcome string) {
	statsJobs.WithLabelValues(outcome).Inc()
}

// GinMiddleware records count, latency and in-flight requests. Paths are
// labelled with the route template so ids do not explode cardinality.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		status := c.Writer.Status()
		if status == 0 {
			status = http.StatusOK
		}

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		labels := []string{c.Request.Method, path, strconv.Itoa(status)}
		httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(labels...).Inc()
	}
}
