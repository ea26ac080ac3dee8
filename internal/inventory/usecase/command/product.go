package command

import (
	"context"
	"fmt"

	"github.com/tair/cafe-inventory/internal/inventory/access"
	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Actor   domain.Identity
	Product domain.Product
}

// UpdateProductCommand represents the command to patch a product
type UpdateProductCommand struct {
	Actor domain.Identity
	ID    uint
	Patch domain.ProductPatch
}

// ProductHandler handles product commands
type ProductHandler struct {
	ex    *Executor
	store CatalogStore
}

// NewProductHandler creates a new product handler
func NewProductHandler(ex *Executor, store CatalogStore) *ProductHandler {
	return &ProductHandler{ex: ex, store: store}
}

// Create executes the create product command
func (h *ProductHandler) Create(ctx context.Context, cmd CreateProductCommand) (domain.Product, error) {
	return execute(ctx, h.ex, "CreateProduct", cmd.Actor, access.CatalogWrite,
		func() (domain.Product, error) {
			cmd.Product.ID = 0
			return h.store.CreateProduct(cmd.Product)
		},
		func(p domain.Product) (string, string) {
			return domain.ActionProductCreated, fmt.Sprintf("Created product %q", p.Name)
		},
	)
}

// Update executes the update product command
func (h *ProductHandler) Update(ctx context.Context, cmd UpdateProductCommand) (domain.Product, error) {
	return execute(ctx, h.ex, "UpdateProduct", cmd.Actor, access.CatalogWrite,
		func() (domain.Product, error) {
			return h.store.UpdateProduct(cmd.ID, cmd.Patch)
		},
		func(p domain.Product) (string, string) {
			return domain.ActionProductUpdated, fmt.Sprintf("Updated product %q", p.Name)
		},
	)
}

// Delete executes the delete product command. Recipes that reference the
// product are left in place.
func (h *ProductHandler) Delete(ctx context.Context, cmd DeleteCommand) error {
	_, err := execute(ctx, h.ex, "DeleteProduct", cmd.Actor, access.InventoryDelete,
		func() (domain.Product, error) {
			p, err := h.store.GetProduct(cmd.ID)
			if err != nil {
				return p, err
			}
			return p, deleted(h.store.DeleteProduct(cmd.ID), "product", cmd.ID)
		},
		func(p domain.Product) (string, string) {
			return domain.ActionProductDeleted, fmt.Sprintf("Deleted product %q", p.Name)
		},
	)
	return err
}
