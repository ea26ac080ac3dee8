package command

import (
	"context"
	"fmt"

	"github.com/tair/cafe-inventory/internal/inventory/access"
	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// CreateRecipeCommand creates a recipe together with its lines. The lines
// are validated with the recipe and nothing is stored if any is rejected.
type CreateRecipeCommand struct {
	Actor       domain.Identity
	Recipe      domain.Recipe
	Ingredients []domain.RecipeIngredient
	Supplies    []domain.RecipeSupply
}

// RecipeWithLines is the result of CreateRecipeCommand.
type RecipeWithLines struct {
	domain.Recipe
	Ingredients []domain.RecipeIngredient `json:"ingredients"`
	Supplies    []domain.RecipeSupply     `json:"supplies"`
}

// UpdateRecipeCommand represents the command to patch a recipe
type UpdateRecipeCommand struct {
	Actor domain.Identity
	ID    uint
	Patch domain.RecipePatch
}

// AddRecipeIngredientCommand represents the command to add an ingredient line
type AddRecipeIngredientCommand struct {
	Actor domain.Identity
	Line  domain.RecipeIngredient
}

// UpdateRecipeIngredientCommand represents the command to patch an ingredient line
type UpdateRecipeIngredientCommand struct {
	Actor domain.Identity
	ID    uint
	Patch domain.RecipeIngredientPatch
}

// AddRecipeSupplyCommand represents the command to add a supply line
type AddRecipeSupplyCommand struct {
	Actor domain.Identity
	Line  domain.RecipeSupply
}

// UpdateRecipeSupplyCommand represents the command to patch a supply line
type UpdateRecipeSupplyCommand struct {
	Actor domain.Identity
	ID    uint
	Patch domain.RecipeSupplyPatch
}

// RecipeHandler handles recipe and recipe line commands.
type RecipeHandler struct {
	ex    *Executor
	store RecipeStore
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(ex *Executor, store RecipeStore) *RecipeHandler {
	return &RecipeHandler{ex: ex, store: store}
}

// Create executes the create recipe command
func (h *RecipeHandler) Create(ctx context.Context, cmd CreateRecipeCommand) (RecipeWithLines, error) {
	return execute(ctx, h.ex, "CreateRecipe", cmd.Actor, access.CatalogWrite,
		func() (RecipeWithLines, error) {
			cmd.Recipe.ID = 0
			r, ingredients, supplies, err := h.store.CreateRecipeWithLines(cmd.Recipe, cmd.Ingredients, cmd.Supplies)
			if err != nil {
				return RecipeWithLines{}, err
			}
			return RecipeWithLines{Recipe: r, Ingredients: ingredients, Supplies: supplies}, nil
		},
		func(r RecipeWithLines) (string, string) {
			return domain.ActionRecipeCreated, fmt.Sprintf("Created recipe %d for product %d with %d ingredients and %d supplies",
				r.ID, r.ProductID, len(r.Ingredients), len(r.Supplies))
		},
	)
}

// Update executes the update recipe command
func (h *RecipeHandler) Update(ctx context.Context, cmd UpdateRecipeCommand) (domain.Recipe, error) {
	return execute(ctx, h.ex, "UpdateRecipe", cmd.Actor, access.CatalogWrite,
		func() (domain.Recipe, error) {
			return h.store.UpdateRecipe(cmd.ID, cmd.Patch)
		},
		func(r domain.Recipe) (string, string) {
			return domain.ActionRecipeUpdated, fmt.Sprintf("Updated recipe %d", r.ID)
		},
	)
}

// Delete executes the delete recipe command. The recipe's lines go with it.
func (h *RecipeHandler) Delete(ctx context.Context, cmd DeleteCommand) error {
	_, err := execute(ctx, h.ex, "DeleteRecipe", cmd.Actor, access.InventoryDelete,
		func() (uint, error) {
			return cmd.ID, deleted(h.store.DeleteRecipe(cmd.ID), "recipe", cmd.ID)
		},
		func(id uint) (string, string) {
			return domain.ActionRecipeDeleted, fmt.Sprintf("Deleted recipe %d", id)
		},
	)
	return err
}

// AddIngredient executes the add recipe ingredient command
func (h *RecipeHandler) AddIngredient(ctx context.Context, cmd AddRecipeIngredientCommand) (domain.RecipeIngredient, error) {
	return execute(ctx, h.ex, "AddRecipeIngredient", cmd.Actor, access.CatalogWrite,
		func() (domain.RecipeIngredient, error) {
			cmd.Line.ID = 0
			return h.store.CreateRecipeIngredient(cmd.Line)
		},
		func(l domain.RecipeIngredient) (string, string) {
			return domain.ActionRecipeIngredientAdded, fmt.Sprintf("Added ingredient %d to recipe %d", l.IngredientID, l.RecipeID)
		},
	)
}

// UpdateIngredient executes the update recipe ingredient command
func (h *RecipeHandler) UpdateIngredient(ctx context.Context, cmd UpdateRecipeIngredientCommand) (domain.RecipeIngredient, error) {
	return execute(ctx, h.ex, "UpdateRecipeIngredient", cmd.Actor, access.CatalogWrite,
		func() (domain.RecipeIngredient, error) {
			return h.store.UpdateRecipeIngredient(cmd.ID, cmd.Patch)
		},
		func(l domain.RecipeIngredient) (string, string) {
			return domain.ActionRecipeIngredientUpdated, fmt.Sprintf("Updated ingredient line %d of recipe %d", l.ID, l.RecipeID)
		},
	)
}

// RemoveIngredient executes the remove recipe ingredient command
func (h *RecipeHandler) RemoveIngredient(ctx context.Context, cmd DeleteCommand) error {
	_, err := execute(ctx, h.ex, "RemoveRecipeIngredient", cmd.Actor, access.InventoryDelete,
		func() (uint, error) {
			return cmd.ID, deleted(h.store.DeleteRecipeIngredient(cmd.ID), "recipe ingredient", cmd.ID)
		},
		func(id uint) (string, string) {
			return domain.ActionRecipeIngredientRemoved, fmt.Sprintf("Removed ingredient line %d", id)
		},
	)
	return err
}

// AddSupply executes the add recipe supply command
func (h *RecipeHandler) AddSupply(ctx context.Context, cmd AddRecipeSupplyCommand) (domain.RecipeSupply, error) {
	return execute(ctx, h.ex, "AddRecipeSupply", cmd.Actor, access.CatalogWrite,
		func() (domain.RecipeSupply, error) {
			cmd.Line.ID = 0
			return h.store.CreateRecipeSupply(cmd.Line)
		},
		func(l domain.RecipeSupply) (string, string) {
			return domain.ActionRecipeSupplyAdded, fmt.Sprintf("Added supply %d to recipe %d", l.SupplyID, l.RecipeID)
		},
	)
}

// UpdateSupply executes the update recipe supply command
func (h *RecipeHandler) UpdateSupply(ctx context.Context, cmd UpdateRecipeSupplyCommand) (domain.RecipeSupply, error) {
	return execute(ctx, h.ex, "UpdateRecipeSupply", cmd.Actor, access.CatalogWrite,
		func() (domain.RecipeSupply, error) {
			return h.store.UpdateRecipeSupply(cmd.ID, cmd.Patch)
		},
		func(l domain.RecipeSupply) (string, string) {
			return domain.ActionRecipeSupplyUpdated, fmt.Sprintf("Updated supply line %d of recipe %d", l.ID, l.RecipeID)
		},
	)
}

// RemoveSupply executes the remove recipe supply command
func (h *RecipeHandler) RemoveSupply(ctx context.Context, cmd DeleteCommand) error {
	_, err := execute(ctx, h.ex, "RemoveRecipeSupply", cmd.Actor, access.InventoryDelete,
		func() (uint, error) {
			return cmd.ID, deleted(h.store.DeleteRecipeSupply(cmd.ID), "recipe supply", cmd.ID)
		},
		func(id uint) (string, string) {
			return domain.ActionRecipeSupplyRemoved, fmt.Sprintf("Removed supply line %d", id)
		},
	)
	return err
}
