package http

import (
	"net/http"
	"strconv"

	"github.com/tair/cafe-inventory/internal/inventory/usecase/query"
)

// InventoryMetrics handles GET /api/inventory/metrics
func (h *Handler) InventoryMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metrics.Handle(r.Context())
	respondOne(w, r, http.StatusOK, metrics, err)
}

// LowStockItems handles GET /api/inventory/low-stock
func (h *Handler) LowStockItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.lowStockItems.Handle(r.Context())
	respondList(w, r, items, err)
}

// CategoryBreakdown handles GET /api/inventory/categories
func (h *Handler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.categoryBreakdown.Handle(r.Context())
	respondOne(w, r, http.StatusOK, breakdown, err)
}

// ProductCategories handles GET /api/categories
func (h *Handler) ProductCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.Handle(r.Context())
	respondList(w, r, categories, err)
}

// RecentActivity handles GET /api/activity-logs/recent
func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.recentActivity.Handle(r.Context(), query.RecentActivityQuery{Limit: limit})
	respondList(w, r, entries, err)
}

// ActivityLogs handles GET /api/activity-logs
func (h *Handler) ActivityLogs(w http.ResponseWriter, r *http.Request) {
	rng, err := query.ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	entries, err := h.activityLogs.Handle(r.Context(), query.ActivityLogsQuery{
		Range:      rng,
		ActionType: r.URL.Query().Get("actionType"),
	})
	respondList(w, r, entries, err)
}
