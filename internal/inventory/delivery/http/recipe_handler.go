package http

import (
	"net/http"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/internal/inventory/usecase/command"
	"github.com/tair/cafe-inventory/internal/inventory/usecase/query"
)

// ListRecipes handles GET /api/recipes
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListRecipes(filterFrom(r, "productId"))
	respondList(w, r, items, err)
}

// GetRecipe handles GET /api/recipes/{id} and returns the joined detail.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	detail, err := h.recipeDetail.Handle(r.Context(), query.RecipeDetailQuery{RecipeID: id})
	respondOne(w, r, http.StatusOK, detail, err)
}

// CreateRecipe handles POST /api/recipes. Lines may be nested in the body.
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		domain.Recipe
		Ingredients []domain.RecipeIngredient `json:"ingredients"`
		Supplies    []domain.RecipeSupply     `json:"supplies"`
	}
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.recipes.Create(r.Context(), command.CreateRecipeCommand{
		Actor:       IdentityFrom(r.Context()),
		Recipe:      req.Recipe,
		Ingredients: req.Ingredients,
		Supplies:    req.Supplies,
	})
	respondOne(w, r, http.StatusCreated, item, err)
}

// UpdateRecipe handles PUT/PATCH /api/recipes/{id}
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var patch domain.RecipePatch
	if err := decode(r, &patch); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.recipes.Update(r.Context(), command.UpdateRecipeCommand{
		Actor: IdentityFrom(r.Context()),
		ID:    id,
		Patch: patch,
	})
	respondOne(w, r, http.StatusOK, item, err)
}

// DeleteRecipe handles DELETE /api/recipes/{id}
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, func(cmd command.DeleteCommand) error {
		return h.recipes.Delete(r.Context(), cmd)
	})
}

// ListRecipeIngredients handles GET /api/recipe-ingredients
func (h *Handler) ListRecipeIngredients(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListRecipeIngredients(filterFrom(r, "recipeId", "ingredientId"))
	respondList(w, r, items, err)
}

// GetRecipeIngredient handles GET /api/recipe-ingredients/{id}
func (h *Handler) GetRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.store.GetRecipeIngredient(id)
	respondOne(w, r, http.StatusOK, item, err)
}

// CreateRecipeIngredient handles POST /api/recipe-ingredients
func (h *Handler) CreateRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	var req domain.RecipeIngredient
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.recipes.AddIngredient(r.Context(), command.AddRecipeIngredientCommand{
		Actor: IdentityFrom(r.Context()),
		Line:  req,
	})
	respondOne(w, r, http.StatusCreated, item, err)
}

// UpdateRecipeIngredient handles PUT/PATCH /api/recipe-ingredients/{id}
func (h *Handler) UpdateRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var patch domain.RecipeIngredientPatch
	if err := decode(r, &patch); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.recipes.UpdateIngredient(r.Context(), command.UpdateRecipeIngredientCommand{
		Actor: IdentityFrom(r.Context()),
		ID:    id,
		Patch: patch,
	})
	respondOne(w, r, http.StatusOK, item, err)
}

// DeleteRecipeIngredient handles DELETE /api/recipe-ingredients/{id}
func (h *Handler) DeleteRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, func(cmd command.DeleteCommand) error {
		return h.recipes.RemoveIngredient(r.Context(), cmd)
	})
}

// ListRecipeSupplies handles GET /api/recipe-supplies
func (h *Handler) ListRecipeSupplies(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListRecipeSupplies(filterFrom(r, "recipeId", "supplyId"))
	respondList(w, r, items, err)
}

// GetRecipeSupply handles GET /api/recipe-supplies/{id}
func (h *Handler) GetRecipeSupply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.store.GetRecipeSupply(id)
	respondOne(w, r, http.StatusOK, item, err)
}

// CreateRecipeSupply handles POST /api/recipe-supplies
func (h *Handler) CreateRecipeSupply(w http.ResponseWriter, r *http.Request) {
	var req domain.RecipeSupply
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.recipes.AddSupply(r.Context(), command.AddRecipeSupplyCommand{
		Actor: IdentityFrom(r.Context()),
		Line:  req,
	})
	respondOne(w, r, http.StatusCreated, item, err)
}

// UpdateRecipeSupply handles PUT/PATCH /api/recipe-supplies/{id}
func (h *Handler) UpdateRecipeSupply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var patch domain.RecipeSupplyPatch
	if err := decode(r, &patch); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.recipes.UpdateSupply(r.Context(), command.UpdateRecipeSupplyCommand{
		Actor: IdentityFrom(r.Context()),
		ID:    id,
		Patch: patch,
	})
	respondOne(w, r, http.StatusOK, item, err)
}

// DeleteRecipeSupply handles DELETE /api/recipe-supplies/{id}
func (h *Handler) DeleteRecipeSupply(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, func(cmd command.DeleteCommand) error {
		return h.recipes.RemoveSupply(r.Context(), cmd)
	})
}
