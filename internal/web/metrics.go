package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Zachkp/spotlight/internal/console"
)

var (
	metricKeyEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spotlight",
		Name:      "console_key_events_total",
		Help:      "Key events routed by the console, by outcome.",
	}, []string{"outcome"})
	metricTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spotlight",
		Name:      "console_view_transitions_total",
		Help:      "Active view changes, by destination view. Closing counts as \"none\".",
	}, []string{"view"})
	metricSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "spotlight",
		Name:      "console_sessions_active",
		Help:      "Console sessions currently held in memory.",
	})
	metricAnalyticsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "spotlight",
		Name:      "analytics_events_dropped_total",
		Help:      "Analytics events dropped because the writer queue was full.",
	})
)

func observeKey(res console.KeyResult) {
	outcome := "ignored"
	switch {
	case res.Signal == console.SignalReleaseFocus:
		outcome = "escape"
	case res.Signal == console.SignalRequestFocus:
		outcome = "focus"
	case res.PreventDefault:
		outcome = "shortcut"
	}
	metricKeyEvents.WithLabelValues(outcome).Inc()
}

func observeTransition(t console.Transition) {
	view := string(t.To)
	if t.To == console.ViewNone {
		view = "none"
	}
	metricTransitions.WithLabelValues(view).Inc()
}
