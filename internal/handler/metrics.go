package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_sessions_started_total",
		Help: "Total number of started game sessions.",
	})

	choicesMadeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_choices_made_total",
		Help: "Total number of accepted player choices.",
	})

	gamesFinishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_sessions_finished_total",
			Help: "Total number of finished game sessions by outcome.",
		},
		[]string{"outcome"},
	)
)
