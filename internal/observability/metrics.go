package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	packetsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rangelink",
			Subsystem: "protocol",
			Name:      "packets_decoded_total",
			Help:      "Checksum-verified packets completed by the decoder.",
		},
		[]string{"device"},
	)
	packetsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rangelink",
			Subsystem: "protocol",
			Name:      "packets_dropped_total",
			Help:      "Packets discarded by decoder resynchronization.",
		},
		[]string{"device"},
	)
	requestRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rangelink",
			Subsystem: "request",
			Name:      "retries_total",
			Help:      "Request attempts repeated after a response timeout.",
		},
		[]string{"device"},
	)
	requestTimeouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rangelink",
			Subsystem: "request",
			Name:      "timeouts_total",
			Help:      "Waits that expired without a matching response.",
		},
		[]string{"device"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(packetsDecoded, packetsDropped, requestRetries, requestTimeouts)
	})
}

func RecordPacket(device string) {
	RegisterMetrics()
	packetsDecoded.WithLabelValues(device).Inc()
}

func RecordDropped(device string, n uint64) {
	RegisterMetrics()
	packetsDropped.WithLabelValues(device).Add(float64(n))
}

func RecordRetry(device string) {
	RegisterMetrics()
	requestRetries.WithLabelValues(device).Inc()
}

func RecordTimeout(device string) {
	RegisterMetrics()
	requestTimeouts.WithLabelValues(device).Inc()
}
