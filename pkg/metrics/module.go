package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Subsystem prefixes every metric the service exports.
const Subsystem = "console"

var Module = fx.Options(
	fx.Provide(func() (*Business, error) {
		return NewBusiness(prometheus.DefaultRegisterer, Subsystem)
	}),
)
