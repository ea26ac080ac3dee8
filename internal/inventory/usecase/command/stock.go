package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tair/cafe-inventory/internal/inventory/access"
	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// CreateIngredientCommand represents the command to create an ingredient
type CreateIngredientCommand struct {
	Actor      domain.Identity
	Ingredient domain.Ingredient
}

// UpdateIngredientCommand represents the command to patch an ingredient
type UpdateIngredientCommand struct {
	Actor domain.Identity
	ID    uint
	Patch domain.IngredientPatch
}

// CreateSupplyCommand represents the command to create a supply
type CreateSupplyCommand struct {
	Actor  domain.Identity
	Supply domain.Supply
}

// UpdateSupplyCommand represents the command to patch a supply
type UpdateSupplyCommand struct {
	Actor domain.Identity
	ID    uint
	Patch domain.SupplyPatch
}

// CreateMerchandiseCommand represents the command to create merchandise
type CreateMerchandiseCommand struct {
	Actor       domain.Identity
	Merchandise domain.Merchandise
}

// UpdateMerchandiseCommand represents the command to patch merchandise
type UpdateMerchandiseCommand struct {
	Actor domain.Identity
	ID    uint
	Patch domain.MerchandisePatch
}

// StockHandler handles ingredient, supply and merchandise commands.
type StockHandler struct {
	ex    *Executor
	store StockStore
}

// NewStockHandler creates a new stock handler
func NewStockHandler(ex *Executor, store StockStore) *StockHandler {
	return &StockHandler{ex: ex, store: store}
}

// CreateIngredient executes the create ingredient command. A missing status
// defaults to available.
func (h *StockHandler) CreateIngredient(ctx context.Context, cmd CreateIngredientCommand) (domain.Ingredient, error) {
	return execute(ctx, h.ex, "CreateIngredient", cmd.Actor, access.StockWrite,
		func() (domain.Ingredient, error) {
			in := cmd.Ingredient
			in.ID = 0
			in.Status = in.Status.OrDefault()
			return h.store.CreateIngredient(in)
		},
		func(i domain.Ingredient) (string, string) {
			return domain.ActionIngredientCreated, fmt.Sprintf("Added ingredient %q (%s %s)", i.Name, formatQuantity(i.Quantity), i.Measurement)
		},
	)
}

// UpdateIngredient executes the update ingredient command
func (h *StockHandler) UpdateIngredient(ctx context.Context, cmd UpdateIngredientCommand) (domain.Ingredient, error) {
	return execute(ctx, h.ex, "UpdateIngredient", cmd.Actor, access.StockWrite,
		func() (domain.Ingredient, error) {
			return h.store.UpdateIngredient(cmd.ID, cmd.Patch)
		},
		func(i domain.Ingredient) (string, string) {
			return domain.ActionIngredientUpdated, fmt.Sprintf("Updated ingredient %q (%s)", i.Name, i.Status.Label())
		},
	)
}

// DeleteIngredient executes the delete ingredient command
func (h *StockHandler) DeleteIngredient(ctx context.Context, cmd DeleteCommand) error {
	_, err := execute(ctx, h.ex, "DeleteIngredient", cmd.Actor, access.InventoryDelete,
		func() (domain.Ingredient, error) {
			i, err := h.store.GetIngredient(cmd.ID)
			if err != nil {
				return i, err
			}
			return i, deleted(h.store.DeleteIngredient(cmd.ID), "ingredient", cmd.ID)
		},
		func(i domain.Ingredient) (string, string) {
			return domain.ActionIngredientDeleted, fmt.Sprintf("Deleted ingredient %q", i.Name)
		},
	)
	return err
}

// CreateSupply executes the create supply command. Status defaults to
// available and the supply date to now.
func (h *StockHandler) CreateSupply(ctx context.Context, cmd CreateSupplyCommand) (domain.Supply, error) {
	return execute(ctx, h.ex, "CreateSupply", cmd.Actor, access.StockWrite,
		func() (domain.Supply, error) {
			in := cmd.Supply
			in.ID = 0
			in.Status = in.Status.OrDefault()
			if in.SupplyDate.IsZero() {
				in.SupplyDate = h.ex.now()
			}
			return h.store.CreateSupply(in)
		},
		func(s domain.Supply) (string, string) {
			return domain.ActionSupplyCreated, fmt.Sprintf("Added supply %q (%s %s)", s.Name, formatQuantity(s.Quantity), s.Measurement)
		},
	)
}

// UpdateSupply executes the update supply command
func (h *StockHandler) UpdateSupply(ctx context.Context, cmd UpdateSupplyCommand) (domain.Supply, error) {
	return execute(ctx, h.ex, "UpdateSupply", cmd.Actor, access.StockWrite,
		func() (domain.Supply, error) {
			return h.store.UpdateSupply(cmd.ID, cmd.Patch)
		},
		func(s domain.Supply) (string, string) {
			return domain.ActionSupplyUpdated, fmt.Sprintf("Updated supply %q (%s)", s.Name, s.Status.Label())
		},
	)
}

// DeleteSupply executes the delete supply command
func (h *StockHandler) DeleteSupply(ctx context.Context, cmd DeleteCommand) error {
	_, err := execute(ctx, h.ex, "DeleteSupply", cmd.Actor, access.InventoryDelete,
		func() (domain.Supply, error) {
			s, err := h.store.GetSupply(cmd.ID)
			if err != nil {
				return s, err
			}
			return s, deleted(h.store.DeleteSupply(cmd.ID), "supply", cmd.ID)
		},
		func(s domain.Supply) (string, string) {
			return domain.ActionSupplyDeleted, fmt.Sprintf("Deleted supply %q", s.Name)
		},
	)
	return err
}

// CreateMerchandise executes the create merchandise command. Status
// defaults to available and the date added to now.
func (h *StockHandler) CreateMerchandise(ctx context.Context, cmd CreateMerchandiseCommand) (domain.Merchandise, error) {
	return execute(ctx, h.ex, "CreateMerchandise", cmd.Actor, access.StockWrite,
		func() (domain.Merchandise, error) {
			in := cmd.Merchandise
			in.ID = 0
			in.Status = in.Status.OrDefault()
			if in.DateAdded.IsZero() {
				in.DateAdded = h.ex.now()
			}
			return h.store.CreateMerchandise(in)
		},
		func(m domain.Merchandise) (string, string) {
			return domain.ActionMerchandiseCreated, fmt.Sprintf("Added merchandise %q (%d units)", m.Name, m.Quantity)
		},
	)
}

// UpdateMerchandise executes the update merchandise command
func (h *StockHandler) UpdateMerchandise(ctx context.Context, cmd UpdateMerchandiseCommand) (domain.Merchandise, error) {
	return execute(ctx, h.ex, "UpdateMerchandise", cmd.Actor, access.StockWrite,
		func() (domain.Merchandise, error) {
			return h.store.UpdateMerchandise(cmd.ID, cmd.Patch)
		},
		func(m domain.Merchandise) (string, string) {
			return domain.ActionMerchandiseUpdated, fmt.Sprintf("Updated merchandise %q (%s)", m.Name, m.Status.Label())
		},
	)
}

// DeleteMerchandise executes the delete merchandise command
func (h *StockHandler) DeleteMerchandise(ctx context.Context, cmd DeleteCommand) error {
	_, err := execute(ctx, h.ex, "DeleteMerchandise", cmd.Actor, access.InventoryDelete,
		func() (domain.Merchandise, error) {
			m, err := h.store.GetMerchandise(cmd.ID)
			if err != nil {
				return m, err
			}
			return m, deleted(h.store.DeleteMerchandise(cmd.ID), "merchandise", cmd.ID)
		},
		func(m domain.Merchandise) (string, string) {
			return domain.ActionMerchandiseDeleted, fmt.Sprintf("Deleted merchandise %q", m.Name)
		},
	)
	return err
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
