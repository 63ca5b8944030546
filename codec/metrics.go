package codec

import (
	gometrics "github.com/rcrowley/go-metrics"
)

// Metric names registered by WithMetrics.
const (
	MetricEncoded      = "udmi.codec.encoded"
	MetricDecoded      = "udmi.codec.decoded"
	MetricEncodeErrors = "udmi.codec.encode_errors"
	MetricDecodeErrors = "udmi.codec.decode_errors"
)

// Metrics holds the codec counters. A nil *Metrics counts nothing.
type Metrics struct {
	Encoded      gometrics.Counter
	Decoded      gometrics.Counter
	EncodeErrors gometrics.Counter
	DecodeErrors gometrics.Counter
}

// NewMetrics gets or registers the codec counters in registry. Codecs
// sharing a registry share counters.
func NewMetrics(registry gometrics.Registry) *Metrics {
	if registry == nil {
		registry = gometrics.DefaultRegistry
	}
	return &Metrics{
		Encoded:      gometrics.GetOrRegisterCounter(MetricEncoded, registry),
		Decoded:      gometrics.GetOrRegisterCounter(MetricDecoded, registry),
		EncodeErrors: gometrics.GetOrRegisterCounter(MetricEncodeErrors, registry),
		DecodeErrors: gometrics.GetOrRegisterCounter(MetricDecodeErrors, registry),
	}
}

func (m *Metrics) encoded() {
	if m != nil {
		m.Encoded.Inc(1)
	}
}

func (m *Metrics) decoded() {
	if m != nil {
		m.Decoded.Inc(1)
	}
}

func (m *Metrics) encodeFailed() {
	if m != nil {
		m.EncodeErrors.Inc(1)
	}
}

func (m *Metrics) decodeFailed() {
	if m != nil {
		m.DecodeErrors.Inc(1)
	}
}
