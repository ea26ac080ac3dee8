package http

import (
	"net/http"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/internal/inventory/usecase/command"
)

// --- products ---

// ListProducts handles GET /api/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListProducts(filterFrom(r, "category", "name"))
	respondList(w, r, items, err)
}

// GetProduct handles GET /api/products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.store.GetProduct(id)
	respondOne(w, r, http.StatusOK, item, err)
}

// CreateProduct handles POST /api/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.Product
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.products.Create(r.Context(), command.CreateProductCommand{
		Actor:   IdentityFrom(r.Context()),
		Product: req,
	})
	respondOne(w, r, http.StatusCreated, item, err)
}

// UpdateProduct handles PUT/PATCH /api/products/{id}
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var patch domain.ProductPatch
	if err := decode(r, &patch); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.products.Update(r.Context(), command.UpdateProductCommand{
		Actor: IdentityFrom(r.Context()),
		ID:    id,
		Patch: patch,
	})
	respondOne(w, r, http.StatusOK, item, err)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, func(cmd command.DeleteCommand) error {
		return h.products.Delete(r.Context(), cmd)
	})
}

// --- ingredients ---

// ListIngredients handles GET /api/ingredients
func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListIngredients(filterFrom(r, "status", "name"))
	respondList(w, r, items, err)
}

// LowStockIngredients handles GET /api/ingredients/low-stock
func (h *Handler) LowStockIngredients(w http.ResponseWriter, r *http.Request) {
	items, err := h.lowStock.Handle(r.Context())
	respondList(w, r, items, err)
}

// GetIngredient handles GET /api/ingredients/{id}
func (h *Handler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.store.GetIngredient(id)
	respondOne(w, r, http.StatusOK, item, err)
}

// CreateIngredient handles POST /api/ingredients
func (h *Handler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req domain.Ingredient
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.stock.CreateIngredient(r.Context(), command.CreateIngredientCommand{
		Actor:      IdentityFrom(r.Context()),
		Ingredient: req,
	})
	respondOne(w, r, http.StatusCreated, item, err)
}

// UpdateIngredient handles PUT/PATCH /api/ingredients/{id}
func (h *Handler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var patch domain.IngredientPatch
	if err := decode(r, &patch); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.stock.UpdateIngredient(r.Context(), command.UpdateIngredientCommand{
		Actor: IdentityFrom(r.Context()),
		ID:    id,
		Patch: patch,
	})
	respondOne(w, r, http.StatusOK, item, err)
}

// DeleteIngredient handles DELETE /api/ingredients/{id}
func (h *Handler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, func(cmd command.DeleteCommand) error {
		return h.stock.DeleteIngredient(r.Context(), cmd)
	})
}

// --- supplies ---

// ListSupplies handles GET /api/supplies
func (h *Handler) ListSupplies(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListSupplies(filterFrom(r, "status", "name"))
	respondList(w, r, items, err)
}

// GetSupply handles GET /api/supplies/{id}
func (h *Handler) GetSupply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.store.GetSupply(id)
	respondOne(w, r, http.StatusOK, item, err)
}

// CreateSupply handles POST /api/supplies
func (h *Handler) CreateSupply(w http.ResponseWriter, r *http.Request) {
	var req domain.Supply
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.stock.CreateSupply(r.Context(), command.CreateSupplyCommand{
		Actor:  IdentityFrom(r.Context()),
		Supply: req,
	})
	respondOne(w, r, http.StatusCreated, item, err)
}

// UpdateSupply handles PUT/PATCH /api/supplies/{id}
func (h *Handler) UpdateSupply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var patch domain.SupplyPatch
	if err := decode(r, &patch); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.stock.UpdateSupply(r.Context(), command.UpdateSupplyCommand{
		Actor: IdentityFrom(r.Context()),
		ID:    id,
		Patch: patch,
	})
	respondOne(w, r, http.StatusOK, item, err)
}

// DeleteSupply handles DELETE /api/supplies/{id}
func (h *Handler) DeleteSupply(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, func(cmd command.DeleteCommand) error {
		return h.stock.DeleteSupply(r.Context(), cmd)
	})
}

// --- merchandise ---

// ListMerchandise handles GET /api/merchandise
func (h *Handler) ListMerchandise(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMerchandise(filterFrom(r, "status", "name"))
	respondList(w, r, items, err)
}

// GetMerchandise handles GET /api/merchandise/{id}
func (h *Handler) GetMerchandise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.store.GetMerchandise(id)
	respondOne(w, r, http.StatusOK, item, err)
}

// CreateMerchandise handles POST /api/merchandise
func (h *Handler) CreateMerchandise(w http.ResponseWriter, r *http.Request) {
	var req domain.Merchandise
	if err := decode(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.stock.CreateMerchandise(r.Context(), command.CreateMerchandiseCommand{
		Actor:       IdentityFrom(r.Context()),
		Merchandise: req,
	})
	respondOne(w, r, http.StatusCreated, item, err)
}

// UpdateMerchandise handles PUT/PATCH /api/merchandise/{id}
func (h *Handler) UpdateMerchandise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var patch domain.MerchandisePatch
	if err := decode(r, &patch); err != nil {
		respondErr(w, r, err)
		return
	}
	item, err := h.stock.UpdateMerchandise(r.Context(), command.UpdateMerchandiseCommand{
		Actor: IdentityFrom(r.Context()),
		ID:    id,
		Patch: patch,
	})
	respondOne(w, r, http.StatusOK, item, err)
}

// DeleteMerchandise handles DELETE /api/merchandise/{id}
func (h *Handler) DeleteMerchandise(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, func(cmd command.DeleteCommand) error {
		return h.stock.DeleteMerchandise(r.Context(), cmd)
	})
}
