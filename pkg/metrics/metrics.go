package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RemoteRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postos",
		Name:      "remote_requests_total",
		Help:      "Requests sent to the station API, by operation and outcome.",
	}, []string{"op", "outcome"})

	RouteRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postos",
		Name:      "route_requests_total",
		Help:      "Requests sent to the routing service, by outcome.",
	}, []string{"outcome"})

	StaleResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "postos",
		Name:      "stale_responses_total",
		Help:      "Responses discarded because a newer request of the same kind was issued.",
	}, []string{"kind"})

	ActivePages = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "postos",
		Name:      "active_pages",
		Help:      "Viewer page sessions currently held in memory.",
	})
)

func init() {
	prometheus.MustRegister(RemoteRequests, RouteRequests, StaleResponses, ActivePages)
}

func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
