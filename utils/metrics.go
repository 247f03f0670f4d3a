package utils

import (
	"strconv"

	"github.com/kataras/iris/v12"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "residency",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route template, method and status.",
	}, []string{"route", "method", "status"})

	BookingTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "residency",
		Name:      "booking_transitions_total",
		Help:      "Bookings moved into each status.",
	}, []string{"status"})

	PaymentsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "residency",
		Name:      "payments_recorded_total",
		Help:      "Payments recorded by type.",
	}, []string{"type"})
)

var metricsRegistry = prometheus.NewRegistry()

func init() {
	metricsRegistry.MustRegister(
		httpRequests,
		BookingTransitions,
		PaymentsRecorded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// MetricsMiddleware counts every routed request once its handlers finish.
func MetricsMiddleware(ctx iris.Context) {
	ctx.Next()

	route := "unmatched"
	if r := ctx.GetCurrentRoute(); r != nil {
		route = r.Path()
	}
	httpRequests.WithLabelValues(route, ctx.Method(), strconv.Itoa(ctx.GetStatusCode())).Inc()
}

func MetricsHandler() iris.Handler {
	return iris.FromStd(promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
}
