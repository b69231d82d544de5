package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchesTotal counts searches by map and outcome
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pathfinder",
		Subsystem: "search",
		Name:      "total",
		Help:      "Total path searches by map and outcome",
	}, []string{"map", "outcome"})

	// searchDuration tracks search latency
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pathfinder",
		Subsystem: "search",
		Name:      "duration_seconds",
		Help:      "Path search duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 16), // 10us to ~330ms
	}, []string{"map"})

	// searchExpanded tracks how many nodes each search expanded
	searchExpanded = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pathfinder",
		Subsystem: "search",
		Name:      "expanded_nodes",
		Help:      "Nodes expanded per path search",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"map"})

	// searchErrors counts rejected requests by reason
	searchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pathfinder",
		Subsystem: "search",
		Name:      "errors_total",
		Help:      "Rejected path requests by reason",
	}, []string{"reason"})
)
