package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/cafe-inventory/internal/inventory/audit"
	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/internal/inventory/repository"
	"github.com/tair/cafe-inventory/pkg/auth"
)

var fixedNow = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

type brokenLog struct{}

func (brokenLog) AppendActivity(domain.ActivityLog) (domain.ActivityLog, error) {
	return domain.ActivityLog{}, errors.New("log unavailable")
}

type env struct {
	store   *repository.Store
	ex      *Executor
	admin   domain.Identity
	manager domain.Identity
	staff   domain.Identity
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := repository.NewStore(repository.WithClock(func() time.Time { return fixedNow }))
	e := &env{
		store: store,
		ex:    NewExecutor(audit.NewRecorder(store, nil), func() time.Time { return fixedNow }),
	}
	e.admin = e.addUser(t, "root", domain.RoleAdmin)
	e.manager = e.addUser(t, "mgr", domain.RoleManager)
	e.staff = e.addUser(t, "barista", domain.RoleStaff)
	return e
}

func (e *env) addUser(t *testing.T, username string, role domain.Role) domain.Identity {
	t.Helper()
	u, err := e.store.CreateUser(domain.User{
		Username: username,
		Password: "hash.salt",
		Role:     role,
		FullName: username,
		Email:    username + "@cafe.test",
		IsActive: true,
	})
	require.NoError(t, err)
	return u.Identity()
}

func (e *env) activity(t *testing.T) []domain.ActivityLog {
	t.Helper()
	entries, err := e.store.ListActivity(domain.NoFilter)
	require.NoError(t, err)
	return entries
}

func TestCreateProductRecordsActivity(t *testing.T) {
	e := newEnv(t)
	h := NewProductHandler(e.ex, e.store)

	p, err := h.Create(context.Background(), CreateProductCommand{
		Actor:   e.manager,
		Product: domain.Product{Name: "Latte", Category: "Coffee", Size: "12oz"},
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	entries := e.activity(t)
	require.Len(t, entries, 1)
	assert.Equal(t, e.manager.UserID, entries[0].UserID)
	assert.Equal(t, domain.ActionProductCreated, entries[0].ActionType)
	assert.Contains(t, entries[0].Description, "Latte")
	assert.Equal(t, fixedNow, entries[0].Timestamp)
}

func TestForbiddenMutationLeavesStoreUntouched(t *testing.T) {
	e := newEnv(t)
	h := NewProductHandler(e.ex, e.store)

	_, err := h.Create(context.Background(), CreateProductCommand{
		Actor:   e.staff,
		Product: domain.Product{Name: "Latte", Category: "Coffee"},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	products, err := e.store.ListProducts(domain.NoFilter)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, e.activity(t))
}

func TestAnonymousMutationIsUnauthenticated(t *testing.T) {
	e := newEnv(t)
	h := NewStockHandler(e.ex, e.store)

	_, err := h.CreateIngredient(context.Background(), CreateIngredientCommand{
		Ingredient: domain.Ingredient{Name: "Milk", Quantity: 1, Measurement: "L"},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestInvalidMutationWritesNoAudit(t *testing.T) {
	e := newEnv(t)
	h := NewStockHandler(e.ex, e.store)

	_, err := h.CreateIngredient(context.Background(), CreateIngredientCommand{
		Actor:      e.staff,
		Ingredient: domain.Ingredient{Name: "", Quantity: 1, Measurement: "L"},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, e.activity(t))
}

func TestAuditFailureKeepsMutation(t *testing.T) {
	store := repository.NewStore()
	ex := NewExecutor(audit.NewRecorder(brokenLog{}, nil), nil)
	u, err := store.CreateUser(domain.User{
		Username: "mgr", Password: "hash.salt", Role: domain.RoleManager,
		FullName: "Manager", Email: "mgr@cafe.test", IsActive: true,
	})
	require.NoError(t, err)

	p, err := NewProductHandler(ex, store).Create(context.Background(), CreateProductCommand{
		Actor:   u.Identity(),
		Product: domain.Product{Name: "Mocha", Category: "Coffee"},
	})
	assert.ErrorIs(t, err, domain.ErrAuditWrite)

	got, err := store.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mocha", got.Name)
}

func TestStockDefaults(t *testing.T) {
	e := newEnv(t)
	h := NewStockHandler(e.ex, e.store)
	ctx := context.Background()

	i, err := h.CreateIngredient(ctx, CreateIngredientCommand{
		Actor:      e.staff,
		Ingredient: domain.Ingredient{Name: "Milk", Quantity: 4, Measurement: "L"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, i.Status)

	s, err := h.CreateSupply(ctx, CreateSupplyCommand{
		Actor:  e.staff,
		Supply: domain.Supply{Name: "Cups", Quantity: 200, Measurement: "pcs", Status: domain.StatusLow},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLow, s.Status)
	assert.Equal(t, fixedNow, s.SupplyDate)

	m, err := h.CreateMerchandise(ctx, CreateMerchandiseCommand{
		Actor:       e.staff,
		Merchandise: domain.Merchandise{Name: "Mug", Quantity: 6},
	})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, m.DateAdded)

	actions := make([]string, 0, 3)
	for _, entry := range e.activity(t) {
		actions = append(actions, entry.ActionType)
	}
	assert.Equal(t, []string{domain.ActionIngredientCreated, domain.ActionSupplyCreated, domain.ActionMerchandiseCreated}, actions)
}

func TestStaffCanUpdateButNotDeleteStock(t *testing.T) {
	e := newEnv(t)
	h := NewStockHandler(e.ex, e.store)
	ctx := context.Background()

	i, err := h.CreateIngredient(ctx, CreateIngredientCommand{
		Actor:      e.staff,
		Ingredient: domain.Ingredient{Name: "Milk", Quantity: 4, Measurement: "L"},
	})
	require.NoError(t, err)

	low := domain.StatusLow
	updated, err := h.UpdateIngredient(ctx, UpdateIngredientCommand{Actor: e.staff, ID: i.ID, Patch: domain.IngredientPatch{Status: &low}})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLow, updated.Status)
	assert.Equal(t, 4.0, updated.Quantity)

	err = h.DeleteIngredient(ctx, DeleteCommand{Actor: e.staff, ID: i.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, h.DeleteIngredient(ctx, DeleteCommand{Actor: e.manager, ID: i.ID}))
	_, err = e.store.GetIngredient(i.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	e := newEnv(t)

	err := NewProductHandler(e.ex, e.store).Delete(context.Background(), DeleteCommand{Actor: e.admin, ID: 42})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = NewRecipeHandler(e.ex, e.store).Delete(context.Background(), DeleteCommand{Actor: e.admin, ID: 42})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, e.activity(t))
}

func TestCreateRecipeWithLines(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, err := e.store.CreateProduct(domain.Product{Name: "Latte", Category: "Coffee"})
	require.NoError(t, err)
	milk, err := e.store.CreateIngredient(domain.Ingredient{Name: "Milk", Quantity: 5, Measurement: "L", Status: domain.StatusAvailable})
	require.NoError(t, err)
	cup, err := e.store.CreateSupply(domain.Supply{Name: "Cup", Quantity: 50, Measurement: "pcs", Status: domain.StatusAvailable})
	require.NoError(t, err)

	h := NewRecipeHandler(e.ex, e.store)
	r, err := h.Create(ctx, CreateRecipeCommand{
		Actor:       e.manager,
		Recipe:      domain.Recipe{ProductID: p.ID, BestBefore: "4 hours"},
		Ingredients: []domain.RecipeIngredient{{IngredientID: milk.ID, Quantity: 0.25, Measurement: "L"}},
		Supplies:    []domain.RecipeSupply{{SupplyID: cup.ID, Quantity: 1, Measurement: "pcs"}},
	})
	require.NoError(t, err)
	require.Len(t, r.Ingredients, 1)
	require.Len(t, r.Supplies, 1)
	assert.Equal(t, r.ID, r.Ingredients[0].RecipeID)
	assert.Equal(t, r.ID, r.Supplies[0].RecipeID)

	entries := e.activity(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionRecipeCreated, entries[0].ActionType)

	line, err := h.AddIngredient(ctx, AddRecipeIngredientCommand{
		Actor: e.manager,
		Line:  domain.RecipeIngredient{RecipeID: r.ID, IngredientID: milk.ID, Quantity: 0.1, Measurement: "L"},
	})
	require.NoError(t, err)
	require.NoError(t, h.RemoveIngredient(ctx, DeleteCommand{Actor: e.manager, ID: line.ID}))
	require.NoError(t, h.Delete(ctx, DeleteCommand{Actor: e.manager, ID: r.ID}))

	lines, err := e.store.ListRecipeIngredients(domain.NoFilter)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCreateRecipeRejectsUnknownIngredient(t *testing.T) {
	e := newEnv(t)
	p, err := e.store.CreateProduct(domain.Product{Name: "Latte", Category: "Coffee"})
	require.NoError(t, err)

	_, err = NewRecipeHandler(e.ex, e.store).Create(context.Background(), CreateRecipeCommand{
		Actor:       e.admin,
		Recipe:      domain.Recipe{ProductID: p.ID},
		Ingredients: []domain.RecipeIngredient{{IngredientID: 77, Quantity: 1, Measurement: "g"}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	recipes, err := e.store.ListRecipes(domain.NoFilter)
	require.NoError(t, err)
	assert.Empty(t, recipes)
	assert.Empty(t, e.activity(t))
}

func TestStaffLifecycle(t *testing.T) {
	e := newEnv(t)
	h := NewStaffHandler(e.ex, e.store)
	ctx := context.Background()

	u, err := h.Create(ctx, CreateStaffCommand{
		Actor:    e.admin,
		User:     domain.User{Username: "ana", FullName: "Ana", Email: "ana@cafe.test", Position: "Barista"},
		Password: "flatwhite",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, u.Role)
	assert.True(t, u.IsActive)
	assert.Equal(t, fixedNow, u.JoinDate)
	assert.True(t, auth.CheckPassword(u.Password, "flatwhite"))

	newPassword := "cortado"
	position := "Shift lead"
	u, err = h.Update(ctx, UpdateStaffCommand{
		Actor:    e.admin,
		ID:       u.ID,
		Patch:    domain.UserPatch{Position: &position},
		Password: &newPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Shift lead", u.Position)
	assert.True(t, auth.CheckPassword(u.Password, "cortado"))

	u, err = h.SetActive(ctx, SetStaffActiveCommand{Actor: e.admin, ID: u.ID, Active: false})
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	u, err = h.SetActive(ctx, SetStaffActiveCommand{Actor: e.admin, ID: u.ID, Active: true})
	require.NoError(t, err)
	assert.True(t, u.IsActive)

	var actions []string
	for _, entry := range e.activity(t) {
		actions = append(actions, entry.ActionType)
	}
	assert.Equal(t, []string{
		domain.ActionStaffCreated,
		domain.ActionStaffUpdated,
		domain.ActionStaffArchived,
		domain.ActionStaffRestored,
	}, actions)
}

func TestManagerCannotWriteStaff(t *testing.T) {
	e := newEnv(t)

	_, err := NewStaffHandler(e.ex, e.store).Create(context.Background(), CreateStaffCommand{
		Actor:    e.manager,
		User:     domain.User{Username: "ana", FullName: "Ana", Email: "ana@cafe.test"},
		Password: "flatwhite",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCannotArchiveSelf(t *testing.T) {
	e := newEnv(t)

	_, err := NewStaffHandler(e.ex, e.store).SetActive(context.Background(), SetStaffActiveCommand{Actor: e.admin, ID: e.admin.UserID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDuplicateUsernameConflicts(t *testing.T) {
	e := newEnv(t)

	_, err := NewStaffHandler(e.ex, e.store).Create(context.Background(), CreateStaffCommand{
		Actor:    e.admin,
		User:     domain.User{Username: "Barista", FullName: "Dup", Email: "dup@cafe.test"},
		Password: "x",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterCreatesStaffAndAuditsAsSelf(t *testing.T) {
	e := newEnv(t)

	u, err := NewStaffHandler(e.ex, e.store).Register(context.Background(), RegisterCommand{
		Username: "newbie",
		Password: "macchiato",
		FullName: "New Bie",
		Email:    "newbie@cafe.test",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, u.Role)
	assert.True(t, u.IsActive)

	entries := e.activity(t)
	require.Len(t, entries, 1)
	assert.Equal(t, u.ID, entries[0].UserID)
	assert.Equal(t, domain.ActionUserRegistered, entries[0].ActionType)
}

func TestRegisterRequiresPassword(t *testing.T) {
	e := newEnv(t)

	_, err := NewStaffHandler(e.ex, e.store).Register(context.Background(), RegisterCommand{
		Username: "newbie", FullName: "New Bie", Email: "newbie@cafe.test",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
