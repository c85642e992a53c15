// Package metrics provides optional Prometheus instrumentation around
// selector construction and reply decoding. It is entirely optional: the
// core packages never import it, and nothing is registered unless a
// caller supplies a prometheus.Registerer via New.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder wraps the counters and histograms exposed by the core's two
// parallel regions (spec §5).
type Recorder struct {
	slotsEncrypted   prometheus.Counter
	selectorBuild    prometheus.Histogram
	replyDecodeTime  prometheus.Histogram
	replyDecodeFails prometheus.Counter
}

// New registers a Recorder's metrics on reg and returns it.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		slotsEncrypted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "epir",
			Name:      "selector_slots_encrypted_total",
			Help:      "Number of selector ciphertext slots encrypted.",
		}),
		selectorBuild: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "epir",
			Name:      "selector_build_duration_seconds",
			Help:      "Time to build and encrypt a selector.",
			Buckets:   prometheus.DefBuckets,
		}),
		replyDecodeTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "epir",
			Name:      "reply_decode_duration_seconds",
			Help:      "Time to fully decode a reply across all phases.",
			Buckets:   prometheus.DefBuckets,
		}),
		replyDecodeFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "epir",
			Name:      "reply_decode_failures_total",
			Help:      "Number of reply decode calls that failed.",
		}),
	}

	reg.MustRegister(r.slotsEncrypted, r.selectorBuild, r.replyDecodeTime, r.replyDecodeFails)
	return r
}

// ObserveSelectorBuild records the duration of a SelectorCreate(Fast) call
// that encrypted n slots.
func (r *Recorder) ObserveSelectorBuild(seconds float64, n int) {
	if r == nil {
		return
	}
	r.selectorBuild.Observe(seconds)
	r.slotsEncrypted.Add(float64(n))
}

// ObserveReplyDecode records the duration of a ReplyDecrypt call, and
// whether it returned an error.
func (r *Recorder) ObserveReplyDecode(seconds float64, failed bool) {
	if r == nil {
		return
	}
	r.replyDecodeTime.Observe(seconds)
	if failed {
		r.replyDecodeFails.Inc()
	}
}
