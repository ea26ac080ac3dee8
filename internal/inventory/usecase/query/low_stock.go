package query

import (
	"context"
	"fmt"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// LowStockIngredientsHandler lists ingredients marked low.
type LowStockIngredientsHandler struct {
	repo Reader
}

// NewLowStockIngredientsHandler creates a new low stock ingredients handler
func NewLowStockIngredientsHandler(repo Reader) *LowStockIngredientsHandler {
	return &LowStockIngredientsHandler{repo: repo}
}

// Handle returns every ingredient whose status is low, by id.
func (h *LowStockIngredientsHandler) Handle(ctx context.Context) (items []domain.Ingredient, err error) {
	_, span := tracer.Start(ctx, "query.LowStockIngredients")
	defer func() { endSpan(span, err) }()

	items, err = h.repo.ListIngredients(domain.Where("status", string(domain.StatusLow)))
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return items, nil
}

// Item kinds reported by the cross-kind queries.
const (
	KindIngredient  = "ingredient"
	KindSupply      = "supply"
	KindMerchandise = "merchandise"
)

// StockItem is one row of the dashboard low stock table.
type StockItem struct {
	Kind     string             `json:"kind"`
	ID       uint               `json:"id"`
	Name     string             `json:"name"`
	Quantity float64            `json:"quantity"`
	Unit     string             `json:"unit,omitempty"`
	Status   domain.StockStatus `json:"status"`
	Label    string             `json:"statusLabel"`
}

func needsAttention(s domain.StockStatus) bool {
	return s == domain.StatusLow || s == domain.StatusRestock || s == domain.StatusOut
}

// LowStockItemsHandler lists low, restock and out items of every kind.
type LowStockItemsHandler struct {
	repo Reader
}

// NewLowStockItemsHandler creates a new low stock items handler
func NewLowStockItemsHandler(repo Reader) *LowStockItemsHandler {
	return &LowStockItemsHandler{repo: repo}
}

// Handle returns ingredients, then supplies, then merchandise, each by id.
func (h *LowStockItemsHandler) Handle(ctx context.Context) (items []StockItem, err error) {
	_, span := tracer.Start(ctx, "query.LowStockItems")
	defer func() { endSpan(span, err) }()

	ingredients, err := h.repo.ListIngredients(domain.NoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	supplies, err := h.repo.ListSupplies(domain.NoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplies: %w", err)
	}
	merchandise, err := h.repo.ListMerchandise(domain.NoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list merchandise: %w", err)
	}

	items = []StockItem{}
	for _, i := range ingredients {
		if needsAttention(i.Status) {
			items = append(items, StockItem{KindIngredient, i.ID, i.Name, i.Quantity, i.Measurement, i.Status, i.Status.Label()})
		}
	}
	for _, s := range supplies {
		if needsAttention(s.Status) {
			items = append(items, StockItem{KindSupply, s.ID, s.Name, s.Quantity, s.Measurement, s.Status, s.Status.Label()})
		}
	}
	for _, m := range merchandise {
		if needsAttention(m.Status) {
			items = append(items, StockItem{KindMerchandise, m.ID, m.Name, float64(m.Quantity), "", m.Status, m.Status.Label()})
		}
	}
	return items, nil
}
