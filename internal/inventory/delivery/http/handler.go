package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/internal/inventory/repository"
	"github.com/tair/cafe-inventory/internal/inventory/session"
	"github.com/tair/cafe-inventory/internal/inventory/usecase/command"
	"github.com/tair/cafe-inventory/internal/inventory/usecase/query"
	"github.com/tair/cafe-inventory/pkg/logger"
	"github.com/tair/cafe-inventory/pkg/ratelimit"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "cafe_session"

// Handler handles HTTP requests for the café admin API
type Handler struct {
	// Command handlers
	products *command.ProductHandler
	stock    *command.StockHandler
	recipes  *command.RecipeHandler
	staff    *command.StaffHandler

	// Query handlers
	metrics           *query.InventoryMetricsHandler
	lowStock          *query.LowStockIngredientsHandler
	lowStockItems     *query.LowStockItemsHandler
	recentActivity    *query.RecentActivityHandler
	activityLogs      *query.ActivityLogsHandler
	recipeDetail      *query.RecipeDetailHandler
	categoryBreakdown *query.CategoryBreakdownHandler
	categories        *query.ProductCategoriesHandler

	store        *repository.Store
	sessions     *session.Service
	cookieSecure bool
	loginLimiter ratelimit.Limiter
}

// NewHandler creates a new handler over store. Mutations go through ex so
// every write is gated and audited.
func NewHandler(store *repository.Store, sessions *session.Service, ex *command.Executor, cookieSecure bool) *Handler {
	return &Handler{
		products: command.NewProductHandler(ex, store),
		stock:    command.NewStockHandler(ex, store),
		recipes:  command.NewRecipeHandler(ex, store),
		staff:    command.NewStaffHandler(ex, store),

		metrics:           query.NewInventoryMetricsHandler(store),
		lowStock:          query.NewLowStockIngredientsHandler(store),
		lowStockItems:     query.NewLowStockItemsHandler(store),
		recentActivity:    query.NewRecentActivityHandler(store),
		activityLogs:      query.NewActivityLogsHandler(store, nil),
		recipeDetail:      query.NewRecipeDetailHandler(store),
		categoryBreakdown: query.NewCategoryBreakdownHandler(store),
		categories:        query.NewProductCategoriesHandler(store),

		store:        store,
		sessions:     sessions,
		cookieSecure: cookieSecure,
	}
}

// LimitLogins throttles login and registration attempts per client
// address. A nil limiter disables throttling.
func (h *Handler) LimitLogins(l ratelimit.Limiter) {
	h.loginLimiter = l
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondErr writes err with its mapped status. Server errors are logged
// and their detail is not echoed to the client.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status < http.StatusInternalServerError {
		respondError(w, status, err.Error())
		return
	}

	logger.Error(r.Context()).
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")

	message := "Internal server error"
	if errors.Is(err, domain.ErrAuditWrite) {
		message = "Change saved but activity could not be recorded"
	}
	respondError(w, status, message)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decode reads the JSON body into v. Malformed bodies are validation
// failures.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return nil
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id", domain.ErrValidation)
	}
	return uint(id), nil
}

// filterFrom builds a filter from the first of fields present in the query
// string.
func filterFrom(r *http.Request, fields ...string) domain.Filter {
	q := r.URL.Query()
	for _, f := range fields {
		if v := q.Get(f); v != "" {
			return domain.Where(f, v)
		}
	}
	return domain.NoFilter
}

// respondList writes a list result, never as JSON null.
func respondList[T any](w http.ResponseWriter, r *http.Request, items []T, err error) {
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	respondJSON(w, http.StatusOK, items)
}

// respondOne writes a single result.
func respondOne[T any](w http.ResponseWriter, r *http.Request, status int, item T, err error) {
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, status, item)
}

// deleteByID runs del for the {id} in the path and answers 204.
func deleteByID(w http.ResponseWriter, r *http.Request, del func(command.DeleteCommand) error) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := del(command.DeleteCommand{Actor: IdentityFrom(r.Context()), ID: id}); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
