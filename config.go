package knxtp1

import "github.com/sirupsen/logrus"

// options holds the decoder's configuration, built up by Option functions.
type options struct {
	polarity Polarity
	metrics  *Metrics
}

func defaultOptions() options {
	return options{
		polarity: PolarityNormal,
		metrics:  NewMetrics(nil),
	}
}

// Option configures a Decoder at construction time.
type Option func(*options)

// WithPolarity selects which logic-level transition marks a UART
// character's start bit. The default is PolarityNormal.
func WithPolarity(p Polarity) Option {
	return func(o *options) { o.polarity = p }
}

// WithLogger replaces the package-level logger used for decode
// diagnostics.
func WithLogger(lg *logrus.Logger) Option {
	return func(o *options) { SetLogger(lg) }
}

// WithMetrics attaches a Metrics instance (typically one registered with a
// Prometheus registry) to the decoder. Without this option the decoder
// builds its own unregistered Metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
