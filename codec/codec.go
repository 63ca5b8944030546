// Package codec maps records to and from their canonical JSON encoding.
//
// The canonical encoding:
//   - emits declared fields in declaration order
//   - omits absent fields entirely (never a null placeholder)
//   - encodes enum symbols as their external value
//   - encodes map entries with keys in ascending order
//
// Decoding is forward compatible: keys the descriptor does not declare are
// dropped silently. A required field missing after all keys are processed,
// an enum value outside its closed set, or a value whose shape does not fit
// its field fails the decode. Errors are returned to the caller and never
// retried here.
//
// Encode and Decode are pure and perform no I/O.
package codec

import (
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/faucetsdn/udmi-sub001/record"
)

// Codec encodes and decodes records. The zero value is not usable; use New.
// A Codec is safe for concurrent use.
type Codec struct {
	metrics          *Metrics
	validateOnEncode bool
	prefix           string
	indent           string
}

// Option configures a Codec.
type Option func(*Codec)

// WithMetrics counts encodes, decodes and failures in registry. A nil
// registry uses the go-metrics default registry.
func WithMetrics(registry gometrics.Registry) Option {
	return func(c *Codec) {
		c.metrics = NewMetrics(registry)
	}
}

// WithValidateOnEncode makes Encode refuse records missing required fields.
func WithValidateOnEncode() Option {
	return func(c *Codec) {
		c.validateOnEncode = true
	}
}

// WithIndent makes Encode produce indented output.
func WithIndent(prefix, indent string) Option {
	return func(c *Codec) {
		c.prefix = prefix
		c.indent = indent
	}
}

// New creates a codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Metrics returns the codec counters, or nil if metrics are disabled.
func (c *Codec) Metrics() *Metrics { return c.metrics }

var defaultCodec = New()

// Encode returns the compact canonical encoding of r.
func Encode(r *record.Record) ([]byte, error) {
	return defaultCodec.Encode(r)
}

// EncodeIndent is like Encode but indents the output.
func EncodeIndent(r *record.Record, prefix, indent string) ([]byte, error) {
	return New(WithIndent(prefix, indent)).Encode(r)
}

// Decode decodes canonical input into a record of type d.
func Decode(d *record.Descriptor, data []byte) (*record.Record, error) {
	return defaultCodec.Decode(d, data)
}

// DecodeValue decodes an already parsed JSON tree into a record of type d.
func DecodeValue(d *record.Descriptor, tree any) (*record.Record, error) {
	return defaultCodec.DecodeValue(d, tree)
}
