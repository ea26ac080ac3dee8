package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/tair/cafe-inventory/internal/inventory/audit"
	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/internal/inventory/repository"
	"github.com/tair/cafe-inventory/internal/inventory/session"
	"github.com/tair/cafe-inventory/internal/inventory/usecase/command"
	"github.com/tair/cafe-inventory/pkg/ratelimit"
)

func TestLoginThrottledPerClient(t *testing.T) {
	store := repository.NewStore()
	reg := prometheus.NewRegistry()
	h := NewHandler(store, session.NewService(store, session.NewMemoryStore(nil)),
		command.NewExecutor(audit.NewRecorder(store, reg), nil), false)
	h.LimitLogins(ratelimit.NewMemoryLimiter(2, time.Minute, nil))

	s := &testServer{t: t, store: store}
	s.router = NewRouter(h, DefaultMiddlewareConfig(nil), NewHTTPMetrics(reg), reg)
	s.addUser("maria", "espresso", domain.RoleStaff)

	wrong := map[string]string{"username": "maria", "password": "latte"}
	first := s.do("POST", "/api/login", "", wrong)
	assert.Equal(t, http.StatusUnauthorized, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusUnauthorized, s.do("POST", "/api/login", "", wrong).Code)

	blocked := s.do("POST", "/api/login", "", map[string]string{"username": "maria", "password": "espresso"})
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	// Registration has its own budget.
	register := s.do("POST", "/api/register", "", map[string]string{"username": "", "password": ""})
	assert.NotEqual(t, http.StatusTooManyRequests, register.Code)
}

func TestClientAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:51234"
	assert.Equal(t, "203.0.113.9", clientAddr(r))

	r.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientAddr(r))
}
