// Package metrics exposes Prometheus counters and histograms for the FRI
// and STARK engines, following the MetricsCollector/promauto pairing the
// rest of the corpus uses for telemetry.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/proteus-stark/proteus/errs"
)

// Collector holds the counters and histograms for one engine (FRI or
// STARK). Both the package-level FRI and Stark collectors share this
// shape but register under distinct metric name prefixes.
type Collector struct {
	ProofsGenerated     prometheus.Counter
	ProofsVerified      prometheus.Counter
	VerificationFailed  *prometheus.CounterVec // labeled by errs.Stage
	ProvingLatency      prometheus.Histogram
	VerificationLatency prometheus.Histogram
}

func newCollector(prefix, help string) *Collector {
	return &Collector{
		ProofsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_proofs_generated_total",
			Help: "Total number of " + help + " proofs successfully generated.",
		}),
		ProofsVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_proofs_verified_total",
			Help: "Total number of " + help + " proofs that passed verification.",
		}),
		VerificationFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_verification_failed_total",
			Help: "Total number of " + help + " verification failures, labeled by stage.",
		}, []string{"stage"}),
		ProvingLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    prefix + "_proving_duration_seconds",
			Help:    "Time spent producing a " + help + " proof.",
			Buckets: prometheus.DefBuckets,
		}),
		VerificationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    prefix + "_verification_duration_seconds",
			Help:    "Time spent verifying a " + help + " proof.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordProve observes proving latency and, on success, increments the
// generated-proof counter. err is the prover's returned error, nil on
// success.
func (c *Collector) RecordProve(duration time.Duration, err error) {
	c.ProvingLatency.Observe(duration.Seconds())
	if err == nil {
		c.ProofsGenerated.Inc()
	}
}

// RecordVerify observes verification latency and increments either the
// verified counter or the failed-by-stage counter.
func (c *Collector) RecordVerify(duration time.Duration, err error) {
	c.VerificationLatency.Observe(duration.Seconds())
	if err == nil {
		c.ProofsVerified.Inc()
		return
	}
	c.VerificationFailed.WithLabelValues(stageOf(err)).Inc()
}

// stageOf extracts the errs.Stage from a VerificationFailure, or "other"
// for a ParameterError/ProtocolViolation raised before a stage was reached.
func stageOf(err error) string {
	var vf *errs.VerificationFailure
	if errors.As(err, &vf) {
		return string(vf.Stage)
	}
	return "other"
}

// FRI and Stark are the package-level collectors fri.Prove/Verify and
// stark.Prove/Verify report against. promauto registers their metrics
// with the default Prometheus registry on package initialization.
var (
	FRI   = newCollector("proteus_fri", "FRI")
	Stark = newCollector("proteus_stark", "STARK")
)
