package summarizer

import "github.com/prometheus/client_golang/prometheus"

var (
	summariesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "khsumd",
			Subsystem: "summarizer",
			Name:      "summaries_total",
			Help:      "Total summaries served, by path",
		},
		[]string{"path"},
	)

	generationFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "khsumd",
			Subsystem: "summarizer",
			Name:      "generation_fallbacks_total",
			Help:      "Neural generation failures recovered by the extractive fallback",
		},
	)
)

func init() {
	prometheus.MustRegister(summariesTotal, generationFallbacksTotal)
}
