package zipcheck

import (
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/charlie-x/zipcheck/metrics"
)

// Option is a functional option for configuring a Validator.
type Option func(*Validator) error

// WithLogger sets the logger used for validation progress. The default is a
// nop logger; the decoder and checksum layers never log regardless.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) error {
		if logger == nil {
			return pkgerrors.New("zipcheck: nil logger")
		}
		v.logger = logger
		return nil
	}
}

// WithMetrics attaches a metrics collector. Each Validate call records its
// outcome and duration; failures are counted per code.
func WithMetrics(collector *metrics.Collector) Option {
	return func(v *Validator) error {
		if collector == nil {
			return pkgerrors.New("zipcheck: nil metrics collector")
		}
		v.metrics = collector
		return nil
	}
}
