package query

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// IngredientLine is a recipe ingredient row with its resolved ingredient.
// Ingredient is nil when the referenced row has been deleted.
type IngredientLine struct {
	domain.RecipeIngredient
	Ingredient *domain.Ingredient `json:"ingredient"`
}

// SupplyLine is a recipe supply row with its resolved supply.
type SupplyLine struct {
	domain.RecipeSupply
	Supply *domain.Supply `json:"supply"`
}

// RecipeDetail joins a recipe with its product and lines.
type RecipeDetail struct {
	Recipe      domain.Recipe    `json:"recipe"`
	Product     *domain.Product  `json:"product"`
	Ingredients []IngredientLine `json:"ingredients"`
	Supplies    []SupplyLine     `json:"supplies"`
}

// RecipeDetailQuery represents the query for one recipe with its joins
type RecipeDetailQuery struct {
	RecipeID uint
}

// RecipeDetailHandler handles the recipe detail query
type RecipeDetailHandler struct {
	repo Reader
}

// NewRecipeDetailHandler creates a new recipe detail handler
func NewRecipeDetailHandler(repo Reader) *RecipeDetailHandler {
	return &RecipeDetailHandler{repo: repo}
}

// Handle returns the joined recipe or ErrNotFound.
func (h *RecipeDetailHandler) Handle(ctx context.Context, query RecipeDetailQuery) (detail RecipeDetail, err error) {
	_, span := tracer.Start(ctx, "query.RecipeDetail")
	span.SetAttributes(attribute.Int("recipe.id", int(query.RecipeID)))
	defer func() { endSpan(span, err) }()

	recipe, err := h.repo.GetRecipe(query.RecipeID)
	if err != nil {
		return RecipeDetail{}, err
	}
	detail.Recipe = recipe

	detail.Product, err = resolve(h.repo.GetProduct, recipe.ProductID)
	if err != nil {
		return RecipeDetail{}, err
	}

	byRecipe := domain.Where("recipeId", fmt.Sprint(recipe.ID))

	ingredientLines, err := h.repo.ListRecipeIngredients(byRecipe)
	if err != nil {
		return RecipeDetail{}, fmt.Errorf("failed to list recipe ingredients: %w", err)
	}
	detail.Ingredients = make([]IngredientLine, 0, len(ingredientLines))
	for _, line := range ingredientLines {
		ingredient, err := resolve(h.repo.GetIngredient, line.IngredientID)
		if err != nil {
			return RecipeDetail{}, err
		}
		detail.Ingredients = append(detail.Ingredients, IngredientLine{RecipeIngredient: line, Ingredient: ingredient})
	}

	supplyLines, err := h.repo.ListRecipeSupplies(byRecipe)
	if err != nil {
		return RecipeDetail{}, fmt.Errorf("failed to list recipe supplies: %w", err)
	}
	detail.Supplies = make([]SupplyLine, 0, len(supplyLines))
	for _, line := range supplyLines {
		supply, err := resolve(h.repo.GetSupply, line.SupplyID)
		if err != nil {
			return RecipeDetail{}, err
		}
		detail.Supplies = append(detail.Supplies, SupplyLine{RecipeSupply: line, Supply: supply})
	}

	span.SetAttributes(
		attribute.Int("recipe.ingredient_lines", len(detail.Ingredients)),
		attribute.Int("recipe.supply_lines", len(detail.Supplies)),
	)
	return detail, nil
}

// resolve looks up a referenced row, mapping a dangling reference to nil.
func resolve[T any](get func(uint) (T, error), id uint) (*T, error) {
	v, err := get(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
