package query

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// CategoryCount is one bar of a dashboard chart.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryBreakdown groups inventory by kind and products by category.
type CategoryBreakdown struct {
	Inventory []CategoryCount `json:"inventory"`
	Products  []CategoryCount `json:"products"`
}

// CategoryBreakdownHandler handles the category breakdown query
type CategoryBreakdownHandler struct {
	repo Reader
}

// NewCategoryBreakdownHandler creates a new category breakdown handler
func NewCategoryBreakdownHandler(repo Reader) *CategoryBreakdownHandler {
	return &CategoryBreakdownHandler{repo: repo}
}

// Handle counts items per kind and products per category, sorted by name.
func (h *CategoryBreakdownHandler) Handle(ctx context.Context) (breakdown CategoryBreakdown, err error) {
	_, span := tracer.Start(ctx, "query.CategoryBreakdown")
	defer func() { endSpan(span, err) }()

	ingredients, err := h.repo.ListIngredients(domain.NoFilter)
	if err != nil {
		return CategoryBreakdown{}, fmt.Errorf("failed to list ingredients: %w", err)
	}
	supplies, err := h.repo.ListSupplies(domain.NoFilter)
	if err != nil {
		return CategoryBreakdown{}, fmt.Errorf("failed to list supplies: %w", err)
	}
	merchandise, err := h.repo.ListMerchandise(domain.NoFilter)
	if err != nil {
		return CategoryBreakdown{}, fmt.Errorf("failed to list merchandise: %w", err)
	}
	products, err := h.repo.ListProducts(domain.NoFilter)
	if err != nil {
		return CategoryBreakdown{}, fmt.Errorf("failed to list products: %w", err)
	}

	breakdown.Inventory = []CategoryCount{
		{Name: KindIngredient, Count: len(ingredients)},
		{Name: KindSupply, Count: len(supplies)},
		{Name: KindMerchandise, Count: len(merchandise)},
	}

	counts := make(map[string]int)
	for _, p := range products {
		counts[strings.TrimSpace(p.Category)]++
	}
	breakdown.Products = make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		breakdown.Products = append(breakdown.Products, CategoryCount{Name: name, Count: n})
	}
	slices.SortFunc(breakdown.Products, func(a, b CategoryCount) int {
		return strings.Compare(a.Name, b.Name)
	})
	return breakdown, nil
}

// ProductCategoriesHandler lists distinct product categories.
type ProductCategoriesHandler struct {
	repo Reader
}

// NewProductCategoriesHandler creates a new product categories handler
func NewProductCategoriesHandler(repo Reader) *ProductCategoriesHandler {
	return &ProductCategoriesHandler{repo: repo}
}

// Handle returns the sorted set of categories.
func (h *ProductCategoriesHandler) Handle(ctx context.Context) (categories []string, err error) {
	_, span := tracer.Start(ctx, "query.ProductCategories")
	defer func() { endSpan(span, err) }()

	products, err := h.repo.ListProducts(domain.NoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	categories = []string{}
	for _, p := range products {
		if c := strings.TrimSpace(p.Category); !slices.Contains(categories, c) {
			categories = append(categories, c)
		}
	}
	slices.Sort(categories)
	return categories, nil
}
