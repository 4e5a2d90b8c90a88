package distribution

import "github.com/prometheus/client_golang/prometheus"

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moneybox_distribution_runs_total",
			Help: "Number of distribution runs by savings mode and result",
		},
		[]string{"mode", "result"},
	)

	creditedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moneybox_distribution_credited_total",
			Help: "Sum of all amounts credited to moneyboxes by distribution runs",
		},
		[]string{"mode"},
	)
)

// Collectors returns the metrics of distribution runs for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{runsTotal, creditedTotal}
}
