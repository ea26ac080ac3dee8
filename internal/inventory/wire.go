//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/cafe-inventory/internal/config"
	"github.com/tair/cafe-inventory/internal/inventory/audit"
	"github.com/tair/cafe-inventory/internal/inventory/session"
	"github.com/tair/cafe-inventory/pkg/ratelimit"
)

// InitializeApp builds the service around externally owned resources:
// the session backend, the login limiter, the metrics registry and the
// audit sinks.
func InitializeApp(cfg *config.Config, sessions session.Store, limiter ratelimit.Limiter, reg *prometheus.Registry, sinks []audit.Sink) (*App, error) {
	wire.Build(
		RepositorySet,
		UsecaseSet,
		DeliverySet,
		MetricsSet,
		NewApp,
	)
	return nil, nil
}
