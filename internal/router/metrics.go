package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "crm_client_realtime_events_total",
		Help: "Total number of realtime events received, by application outcome",
	},
	[]string{"event", "outcome"},
)

func recordEvent(event string, applied bool) {
	outcome := "applied"
	if !applied {
		outcome = "ignored"
	}
	eventsTotal.WithLabelValues(event, outcome).Inc()
}
