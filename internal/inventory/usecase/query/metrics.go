package query

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// InventoryMetrics is the dashboard summary over ingredients, supplies and
// merchandise.
type InventoryMetrics struct {
	TotalItems      int `json:"totalItems"`
	LowStockCount   int `json:"lowStockCount"`
	RestockCount    int `json:"restockCount"`
	OutOfStockCount int `json:"outOfStockCount"`
}

func (m *InventoryMetrics) add(s domain.StockStatus) {
	m.TotalItems++
	switch s {
	case domain.StatusLow:
		m.LowStockCount++
	case domain.StatusRestock:
		m.RestockCount++
	case domain.StatusOut:
		m.OutOfStockCount++
	}
}

// InventoryMetricsHandler handles the metrics query
type InventoryMetricsHandler struct {
	repo Reader
}

// NewInventoryMetricsHandler creates a new inventory metrics handler
func NewInventoryMetricsHandler(repo Reader) *InventoryMetricsHandler {
	return &InventoryMetricsHandler{repo: repo}
}

// Handle recomputes the metrics from the current store contents.
func (h *InventoryMetricsHandler) Handle(ctx context.Context) (metrics InventoryMetrics, err error) {
	_, span := tracer.Start(ctx, "query.InventoryMetrics")
	defer func() { endSpan(span, err) }()

	ingredients, err := h.repo.ListIngredients(domain.NoFilter)
	if err != nil {
		return InventoryMetrics{}, fmt.Errorf("failed to list ingredients: %w", err)
	}
	supplies, err := h.repo.ListSupplies(domain.NoFilter)
	if err != nil {
		return InventoryMetrics{}, fmt.Errorf("failed to list supplies: %w", err)
	}
	merchandise, err := h.repo.ListMerchandise(domain.NoFilter)
	if err != nil {
		return InventoryMetrics{}, fmt.Errorf("failed to list merchandise: %w", err)
	}

	for _, i := range ingredients {
		metrics.add(i.Status)
	}
	for _, s := range supplies {
		metrics.add(s.Status)
	}
	for _, m := range merchandise {
		metrics.add(m.Status)
	}

	span.SetAttributes(
		attribute.Int("metrics.total_items", metrics.TotalItems),
		attribute.Int("metrics.low_stock", metrics.LowStockCount),
	)
	return metrics, nil
}
