package metrics

import (
	"time"

	"github.com/goodnatureofminers/powredeem/internal/failure"
	"github.com/goodnatureofminers/powredeem/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	redemptionRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powredeem",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Count of redemption runs by outcome and failure kind.",
	}, []string{"network", "status", "kind"})

	redemptionRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "powredeem",
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "Duration of a redemption run.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"network", "status"})

	redeemedSatoshisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powredeem",
		Subsystem: "pipeline",
		Name:      "redeemed_satoshis_total",
		Help:      "Value moved into proof-of-work locked outputs.",
	}, []string{"network"})
)

// Redemption tracks metrics for the redemption pipeline.
type Redemption struct {
	network model.Network
}

// NewRedemption constructs a Redemption with defaults.
func NewRedemption(network model.Network) *Redemption {
	if network == "" {
		network = "unknown"
	}
	return &Redemption{network: network}
}

// ObserveRun records a run outcome, its failure kind and duration.
func (m Redemption) ObserveRun(err error, started time.Time) {
	status := statusOf(err)
	redemptionRunsTotal.WithLabelValues(string(m.network), status, kindOf(err)).Inc()
	redemptionRunDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

// ObserveRedeemed adds the value of a redeemed output.
func (m Redemption) ObserveRedeemed(value int64) {
	if value <= 0 {
		return
	}
	redeemedSatoshisTotal.WithLabelValues(string(m.network)).Add(float64(value))
}

// WriteTextfile dumps every registered metric to path in the node exporter
// textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

func kindOf(err error) string {
	if err == nil {
		return "none"
	}
	if kind := failure.KindOf(err); kind != "" {
		return string(kind)
	}
	return "unclassified"
}
