// Package metrics declares the Prometheus collectors shared by the tutor,
// the LLM layer and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeworkpal_llm_requests_total",
			Help: "Total number of LLM requests by purpose and outcome.",
		},
		[]string{"purpose", "outcome"},
	)

	llmLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homeworkpal_llm_request_duration_seconds",
			Help:    "LLM request latency by purpose.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"purpose"},
	)

	llmTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeworkpal_llm_tokens_total",
			Help: "Total number of LLM tokens by direction.",
		},
		[]string{"direction"},
	)

	turnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeworkpal_turns_total",
			Help: "Total number of assistant turns by stage.",
		},
		[]string{"stage"},
	)

	answersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeworkpal_answers_total",
			Help: "Total number of judged quiz answers by result.",
		},
		[]string{"result"},
	)

	questsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homeworkpal_quests_completed_total",
		Help: "Total number of quests played to the reward stage.",
	})

	narrationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homeworkpal_narration_failures_total",
		Help: "Total number of narration requests that produced no audio.",
	})

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeworkpal_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homeworkpal_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveLLM records one provider call.
func ObserveLLM(purpose string, ok bool, d time.Duration, inTokens, outTokens int) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	llmRequestsTotal.WithLabelValues(purpose, outcome).Inc()
	llmLatency.WithLabelValues(purpose).Observe(d.Seconds())
	if inTokens > 0 {
		llmTokensTotal.WithLabelValues("input").Add(float64(inTokens))
	}
	if outTokens > 0 {
		llmTokensTotal.WithLabelValues("output").Add(float64(outTokens))
	}
}

// ObserveTurn records an assistant turn at stage.
func ObserveTurn(stage string) {
	turnsTotal.WithLabelValues(stage).Inc()
}

// ObserveAnswer records a judged answer.
func ObserveAnswer(correct bool) {
	result := "wrong"
	if correct {
		result = "correct"
	}
	answersTotal.WithLabelValues(result).Inc()
}

// QuestCompleted records a session reaching the reward stage.
func QuestCompleted() {
	questsCompletedTotal.Inc()
}

// NarrationFailed records a narration call that returned no audio.
func NarrationFailed() {
	narrationFailuresTotal.Inc()
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, route, status string, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
