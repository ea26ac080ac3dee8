package http

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/tair/cafe-inventory/pkg/logger"
)

// throttle wraps next with the login limiter, keyed by scope and client
// address. Limiter errors let the request through.
func (h *Handler) throttle(scope string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.loginLimiter == nil {
			next(w, r)
			return
		}

		key := scope + ":" + clientAddr(r)
		res, err := h.loginLimiter.Allow(r.Context(), key)
		if err != nil {
			logger.Error(r.Context()).
				Err(err).
				Str("key", key).
				Msg("Rate limiter error")
			next(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset.Unix(), 10))

		if !res.Allowed {
			retry := int(math.Ceil(time.Until(res.Reset).Seconds()))
			if retry < 1 {
				retry = 1
			}
			logger.Warn(r.Context()).
				Str("key", key).
				Int("limit", res.Limit).
				Msg("Rate limit exceeded")

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			respondError(w, http.StatusTooManyRequests, fmt.Sprintf("Too many attempts. Try again in %ds", retry))
			return
		}

		next(w, r)
	}
}

// clientAddr returns the host part of the peer address.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
