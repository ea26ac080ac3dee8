// Package query holds the read-side handlers behind the dashboard: metrics,
// low stock, activity history and the recipe join.
package query

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-query")

// Reader is the read surface of the entity store.
type Reader interface {
	GetProduct(id uint) (domain.Product, error)
	ListProducts(f domain.Filter) ([]domain.Product, error)
	GetIngredient(id uint) (domain.Ingredient, error)
	ListIngredients(f domain.Filter) ([]domain.Ingredient, error)
	GetSupply(id uint) (domain.Supply, error)
	ListSupplies(f domain.Filter) ([]domain.Supply, error)
	ListMerchandise(f domain.Filter) ([]domain.Merchandise, error)
	GetRecipe(id uint) (domain.Recipe, error)
	ListRecipeIngredients(f domain.Filter) ([]domain.RecipeIngredient, error)
	ListRecipeSupplies(f domain.Filter) ([]domain.RecipeSupply, error)
	ListActivity(f domain.Filter) ([]domain.ActivityLog, error)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
