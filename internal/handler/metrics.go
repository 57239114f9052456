package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamebook_imports_total",
		Help: "Total number of successful gamebook imports.",
	})

	playthroughsRestartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamebook_playthroughs_restarted_total",
		Help: "Total number of playthrough restarts.",
	})

	endingsReachedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamebook_endings_reached_total",
		Help: "Total number of playthroughs that reached an ending node.",
	})

	choicesAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamebook_choices_total",
			Help: "Total number of choice attempts by outcome.",
		},
		[]string{"outcome"},
	)
)
