package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the ledger's Prometheus collectors.
type Metrics struct {
	WagersPlaced      prometheus.Counter
	PlacementFailures *prometheus.CounterVec
	Stakes            prometheus.Histogram
	WagersSettled     *prometheus.CounterVec
	WalletOperations  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		WagersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_wagers_placed_total",
			Help: "Wagers accepted and funded.",
		}),
		PlacementFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_wager_placement_failures_total",
			Help: "Rejected wager placements by reason.",
		}, []string{"reason"}),
		Stakes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_wager_stake",
			Help:    "Stake of accepted wagers.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		WagersSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_wagers_settled_total",
			Help: "Settled wagers by final status.",
		}, []string{"status"}),
		WalletOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_wallet_operations_total",
			Help: "Balance mutations by ledger entry type.",
		}, []string{"type"}),
	}
	reg.MustRegister(m.WagersPlaced, m.PlacementFailures, m.Stakes, m.WagersSettled, m.WalletOperations)
	return m
}

// NewNop returns collectors that are not registered anywhere.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
