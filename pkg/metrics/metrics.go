package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdt"

var (
	DutyTransitions = register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "duty",
		Name:      "transitions_total",
		Help:      "Duty sessions opened and closed, by action.",
	}, []string{"action"})).(*prometheus.CounterVec)

	DispatchCalls = register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "calls_total",
		Help:      "Dispatch calls created, by priority and source.",
	}, []string{"priority", "source"})).(*prometheus.CounterVec)

	DispatchTransitions = register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "transitions_total",
		Help:      "Dispatch call status changes, by target status.",
	}, []string{"status"})).(*prometheus.CounterVec)

	ComplaintsSubmitted = register(prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "complaints",
		Name:      "submitted_total",
		Help:      "Complaints received through the public form.",
	})).(prometheus.Counter)

	Notifications = register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notify",
		Name:      "sent_total",
		Help:      "Outbound notifications, by channel and result.",
	}, []string{"channel", "result"})).(*prometheus.CounterVec)

	requestDuration = register(prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API latency, by method, route pattern and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "pattern", "status"})).(*prometheus.HistogramVec)
)

// register reuses an already registered collector instead of panicking.
func register(c prometheus.Collector) prometheus.Collector {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

func Priority(p int) string {
	return strconv.Itoa(p)
}

// GinMiddleware records request latency by matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		pattern := ctx.FullPath()
		if pattern == "" {
			pattern = "unmatched"
		}
		requestDuration.
			WithLabelValues(ctx.Request.Method, pattern, strconv.Itoa(ctx.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
