package knxtp1

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the decode-outcome counters exposed to a Prometheus
// registry. A Metrics created with a nil Registerer (the default) still
// works, it just isn't scraped by anything.
type Metrics struct {
	framesDecoded  prometheus.Counter
	fcsErrors      prometheus.Counter
	parityErrors   prometheus.Counter
	stopErrors     prometheus.Counter
	unknownOpcodes prometheus.Counter
}

// NewMetrics builds the counter set and registers it with reg, if reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		framesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "knxtp1",
			Name:      "frames_decoded_total",
			Help:      "Link-layer frames successfully classified.",
		}),
		fcsErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "knxtp1",
			Name:      "fcs_errors_total",
			Help:      "Frames rejected for a frame check sequence mismatch.",
		}),
		parityErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "knxtp1",
			Name:      "parity_errors_total",
			Help:      "UART characters rejected for a parity mismatch.",
		}),
		stopErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "knxtp1",
			Name:      "stop_errors_total",
			Help:      "UART characters rejected for a missing stop bit.",
		}),
		unknownOpcodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "knxtp1",
			Name:      "unknown_apci_total",
			Help:      "Application-layer control fields with no matching opcode.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.framesDecoded, m.fcsErrors, m.parityErrors, m.stopErrors, m.unknownOpcodes)
	}
	return m
}
