package inventory

import (
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/cafe-inventory/internal/config"
	"github.com/tair/cafe-inventory/internal/inventory/audit"
	delivery "github.com/tair/cafe-inventory/internal/inventory/delivery/http"
	"github.com/tair/cafe-inventory/internal/inventory/repository"
	"github.com/tair/cafe-inventory/internal/inventory/session"
	"github.com/tair/cafe-inventory/internal/inventory/usecase/command"
	"github.com/tair/cafe-inventory/pkg/ratelimit"
)

// App is the assembled café service.
type App struct {
	Store    *repository.Store
	Sessions *session.Service
	Router   http.Handler
}

// NewApp bundles the pieces main needs after wiring.
func NewApp(store *repository.Store, sessions *session.Service, router http.Handler) *App {
	return &App{Store: store, Sessions: sessions, Router: router}
}

// ProvideStore provides the in-memory inventory store
func ProvideStore() *repository.Store {
	return repository.NewStore()
}

// ProvideClock provides the wall clock used for defaults and expiry
func ProvideClock() func() time.Time {
	return time.Now
}

// ProvideRecorder provides the audit recorder with its optional sinks
func ProvideRecorder(store *repository.Store, reg prometheus.Registerer, sinks []audit.Sink) *audit.Recorder {
	return audit.NewRecorder(store, reg, sinks...)
}

// ProvideSessionService provides login and identity resolution
func ProvideSessionService(users session.UserDirectory, store session.Store, now func() time.Time) *session.Service {
	return session.NewService(users, store, session.WithClock(now))
}

// ProvideMiddlewareConfig provides the HTTP middleware settings
func ProvideMiddlewareConfig(cfg *config.Config) *delivery.MiddlewareConfig {
	return delivery.DefaultMiddlewareConfig(cfg.CORSAllowedOrigins)
}

// ProvideHandler provides the HTTP handler
func ProvideHandler(store *repository.Store, sessions *session.Service, ex *command.Executor, cfg *config.Config, limiter ratelimit.Limiter) *delivery.Handler {
	h := delivery.NewHandler(store, sessions, ex, cfg.CookieSecure)
	h.LimitLogins(limiter)
	return h
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideStore,
	wire.Bind(new(session.UserDirectory), new(*repository.Store)),
)

var UsecaseSet = wire.NewSet(
	ProvideClock,
	ProvideRecorder,
	wire.Bind(new(command.Auditor), new(*audit.Recorder)),
	command.NewExecutor,
	ProvideSessionService,
)

var DeliverySet = wire.NewSet(
	ProvideMiddlewareConfig,
	ProvideHandler,
	delivery.NewHTTPMetrics,
	delivery.NewRouter,
)

var MetricsSet = wire.NewSet(
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
)
