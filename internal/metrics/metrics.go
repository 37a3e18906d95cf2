package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SMSSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldservice",
		Name:      "sms_sent_total",
		Help:      "Outbound SMS by message kind and delivery outcome.",
	}, []string{"kind", "outcome"})

	SMSDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fieldservice",
		Name:      "sms_dropped_total",
		Help:      "SMS discarded because the delivery queue was full.",
	})

	RemindersProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldservice",
		Name:      "reminders_processed_total",
		Help:      "Reminder sweep items by result.",
	}, []string{"result"})

	SchedulingConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldservice",
		Name:      "scheduling_conflicts_total",
		Help:      "Bookings refused because the technician slot was taken.",
	}, []string{"operation"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldservice",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status class.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fieldservice",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)
