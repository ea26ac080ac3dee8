package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

func ptr[T any](v T) *T { return &v }

func seedUser(t *testing.T, s *Store, username string) domain.User {
	t.Helper()
	u, err := s.CreateUser(domain.User{
		Username: username,
		Password: "hash.salt",
		Role:     domain.RoleStaff,
		FullName: "Test " + username,
		Email:    username + "@cafe.test",
		IsActive: true,
	})
	require.NoError(t, err)
	return u
}

func TestCreateThenGetReturnsInputWithID(t *testing.T) {
	s := NewStore()
	best := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	in := domain.Ingredient{
		Name:        "Oat milk",
		Quantity:    12.5,
		Measurement: "L",
		BestBefore:  &best,
		Status:      domain.StatusAvailable,
	}
	created, err := s.CreateIngredient(in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := s.GetIngredient(created.ID)
	require.NoError(t, err)

	want := in
	want.ID = created.ID
	assert.Equal(t, want, got)
}

func TestIdentifiersAreMonotonicAcrossDeletes(t *testing.T) {
	s := NewStore()

	first, err := s.CreateProduct(domain.Product{Name: "Latte", Category: "Coffee"})
	require.NoError(t, err)
	second, err := s.CreateProduct(domain.Product{Name: "Mocha", Category: "Coffee"})
	require.NoError(t, err)
	require.True(t, s.DeleteProduct(second.ID))

	third, err := s.CreateProduct(domain.Product{Name: "Chai", Category: "Tea"})
	require.NoError(t, err)

	assert.Less(t, first.ID, second.ID)
	assert.Less(t, second.ID, third.ID)
}

func TestRejectedCreateDoesNotConsumeIdentifier(t *testing.T) {
	s := NewStore()

	_, err := s.CreateProduct(domain.Product{Name: ""})
	require.ErrorIs(t, err, domain.ErrValidation)

	p, err := s.CreateProduct(domain.Product{Name: "Latte", Category: "Coffee"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
}

func TestUpdateChangesOnlyPresentFields(t *testing.T) {
	s := NewStore()
	created, err := s.CreateSupply(domain.Supply{
		Name:        "Paper cups",
		Quantity:    500,
		Measurement: "pcs",
		SupplyDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusAvailable,
	})
	require.NoError(t, err)

	updated, err := s.UpdateSupply(created.ID, domain.SupplyPatch{
		Quantity: ptr(40.0),
		Status:   ptr(domain.StatusLow),
	})
	require.NoError(t, err)

	want := created
	want.Quantity = 40
	want.Status = domain.StatusLow
	assert.Equal(t, want, updated)

	got, err := s.GetSupply(created.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUpdateRejectsInvalidMergeAndKeepsRow(t *testing.T) {
	s := NewStore()
	created, err := s.CreateMerchandise(domain.Merchandise{Name: "Mug", Quantity: 10, Status: domain.StatusAvailable})
	require.NoError(t, err)

	_, err = s.UpdateMerchandise(created.ID, domain.MerchandisePatch{Quantity: ptr(-1)})
	require.ErrorIs(t, err, domain.ErrValidation)

	got, err := s.GetMerchandise(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	s := NewStore()

	_, err := s.UpdateProduct(42, domain.ProductPatch{Name: ptr("Flat white")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	s := NewStore()
	m, err := s.CreateMerchandise(domain.Merchandise{Name: "Tote bag", Quantity: 3, Status: domain.StatusAvailable})
	require.NoError(t, err)

	assert.True(t, s.DeleteMerchandise(m.ID))
	_, err = s.GetMerchandise(m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.False(t, s.DeleteMerchandise(m.ID))
	assert.False(t, s.DeleteMerchandise(999))
}

func TestConcurrentCreatesGetDistinctIdentifiers(t *testing.T) {
	s := NewStore()
	const n = 200

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		ids   = make(chan uint, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			p, err := s.CreateProduct(domain.Product{Name: "Espresso", Category: "Coffee"})
			if err == nil {
				ids <- p.ID
			}
		}()
	}
	close(start)
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	for id := uint(1); id <= n; id++ {
		assert.True(t, seen[id], "missing id %d", id)
	}
}

func TestListFilterExactMatch(t *testing.T) {
	s := NewStore()
	for _, st := range []domain.StockStatus{domain.StatusLow, domain.StatusAvailable, domain.StatusLow} {
		_, err := s.CreateIngredient(domain.Ingredient{Name: "Beans", Quantity: 1, Measurement: "kg", Status: st})
		require.NoError(t, err)
	}

	low, err := s.ListIngredients(domain.Where("status", "low"))
	require.NoError(t, err)
	assert.Len(t, low, 2)
	assert.Equal(t, uint(1), low[0].ID)
	assert.Equal(t, uint(3), low[1].ID)

	byLabel, err := s.ListIngredients(domain.Where("status", "Low Stock"))
	require.NoError(t, err)
	assert.Equal(t, low, byLabel)

	all, err := s.ListIngredients(domain.NoFilter)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = s.ListIngredients(domain.Where("colour", "red"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUsernameIsUnique(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "barista")
	other := seedUser(t, s, "manager")

	_, err := s.CreateUser(domain.User{
		Username: "Barista",
		Password: "x.y",
		Role:     domain.RoleStaff,
		FullName: "Dup",
		Email:    "dup@cafe.test",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.UpdateUser(other.ID, domain.UserPatch{Username: ptr("barista")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	renamed, err := s.UpdateUser(other.ID, domain.UserPatch{Username: ptr("head-barista")})
	require.NoError(t, err)
	assert.Equal(t, "head-barista", renamed.Username)
}

func TestArchiveAndRestoreUser(t *testing.T) {
	s := NewStore()
	u := seedUser(t, s, "barista")

	archived, err := s.SetUserActive(u.ID, false)
	require.NoError(t, err)
	assert.False(t, archived.IsActive)

	active, err := s.ListUsers(domain.Where("isActive", "true"))
	require.NoError(t, err)
	assert.Empty(t, active)

	restored, err := s.SetUserActive(u.ID, true)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
}

func TestReferencesAreCheckedAtWriteTime(t *testing.T) {
	s := NewStore()

	_, err := s.CreateRecipe(domain.Recipe{ProductID: 7})
	assert.ErrorIs(t, err, domain.ErrValidation)

	product, err := s.CreateProduct(domain.Product{Name: "Latte", Category: "Coffee"})
	require.NoError(t, err)
	recipe, err := s.CreateRecipe(domain.Recipe{ProductID: product.ID})
	require.NoError(t, err)

	_, err = s.CreateRecipeIngredient(domain.RecipeIngredient{
		RecipeID: recipe.ID, IngredientID: 9, Quantity: 1, Measurement: "g",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.UpdateRecipe(recipe.ID, domain.RecipePatch{ProductID: ptr(uint(99))})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.AppendActivity(domain.ActivityLog{UserID: 5, ActionType: "X", Description: "y"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeletingProductLeavesRecipeReference(t *testing.T) {
	s := NewStore()
	product, err := s.CreateProduct(domain.Product{Name: "Latte", Category: "Coffee"})
	require.NoError(t, err)
	recipe, err := s.CreateRecipe(domain.Recipe{ProductID: product.ID})
	require.NoError(t, err)

	require.True(t, s.DeleteProduct(product.ID))

	got, err := s.GetRecipe(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ProductID)
}

func TestCreateRecipeWithLinesAndCascadeDelete(t *testing.T) {
	s := NewStore()
	product, _ := s.CreateProduct(domain.Product{Name: "Latte", Category: "Coffee"})
	milk, _ := s.CreateIngredient(domain.Ingredient{Name: "Milk", Quantity: 10, Measurement: "L", Status: domain.StatusAvailable})
	cup, _ := s.CreateSupply(domain.Supply{Name: "Cup", Quantity: 100, Measurement: "pcs", Status: domain.StatusAvailable})

	_, _, _, err := s.CreateRecipeWithLines(
		domain.Recipe{ProductID: product.ID},
		[]domain.RecipeIngredient{{IngredientID: milk.ID, Quantity: 0.2, Measurement: "L"}, {IngredientID: 77, Quantity: 1, Measurement: "g"}},
		nil,
	)
	require.ErrorIs(t, err, domain.ErrValidation)
	recipes, _ := s.ListRecipes(domain.NoFilter)
	assert.Empty(t, recipes, "a rejected line must not leave a recipe behind")

	recipe, lines, supplies, err := s.CreateRecipeWithLines(
		domain.Recipe{ProductID: product.ID, BestBefore: "2 hours"},
		[]domain.RecipeIngredient{{IngredientID: milk.ID, Quantity: 0.2, Measurement: "L"}},
		[]domain.RecipeSupply{{SupplyID: cup.ID, Quantity: 1, Measurement: "pcs"}},
	)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Len(t, supplies, 1)
	assert.Equal(t, recipe.ID, lines[0].RecipeID)
	assert.Equal(t, recipe.ID, supplies[0].RecipeID)

	require.True(t, s.DeleteRecipe(recipe.ID))
	remaining, err := s.ListRecipeIngredients(domain.Where("recipeId", "1"))
	require.NoError(t, err)
	assert.Empty(t, remaining)
	_, err = s.GetRecipeSupply(supplies[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLinesNeverOutliveDeletedRecipe(t *testing.T) {
	s := NewStore()
	product, _ := s.CreateProduct(domain.Product{Name: "Latte", Category: "Coffee"})
	milk, _ := s.CreateIngredient(domain.Ingredient{Name: "Milk", Quantity: 10, Measurement: "L", Status: domain.StatusAvailable})
	cup, _ := s.CreateSupply(domain.Supply{Name: "Cup", Quantity: 100, Measurement: "pcs", Status: domain.StatusAvailable})

	const workers, rounds = 8, 500
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				recipe, err := s.CreateRecipe(domain.Recipe{ProductID: product.ID})
				if err != nil {
					t.Error(err)
					return
				}

				var inner sync.WaitGroup
				inner.Add(3)
				go func() {
					defer inner.Done()
					_, _ = s.CreateRecipeIngredient(domain.RecipeIngredient{
						RecipeID: recipe.ID, IngredientID: milk.ID, Quantity: 0.2, Measurement: "L",
					})
				}()
				go func() {
					defer inner.Done()
					_, _ = s.CreateRecipeSupply(domain.RecipeSupply{
						RecipeID: recipe.ID, SupplyID: cup.ID, Quantity: 1, Measurement: "pcs",
					})
				}()
				go func() {
					defer inner.Done()
					s.DeleteRecipe(recipe.ID)
				}()
				inner.Wait()
			}
		}()
	}
	wg.Wait()

	recipes, err := s.ListRecipes(domain.NoFilter)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	lines, err := s.ListRecipeIngredients(domain.NoFilter)
	require.NoError(t, err)
	assert.Empty(t, lines, "ingredient lines point at deleted recipes")

	supplies, err := s.ListRecipeSupplies(domain.NoFilter)
	require.NoError(t, err)
	assert.Empty(t, supplies, "supply lines point at deleted recipes")
}

func TestDeleteWaitsForReferenceCheck(t *testing.T) {
	s := NewStore()
	product, _ := s.CreateProduct(domain.Product{Name: "Latte", Category: "Coffee"})

	release := s.linking()
	deleted := make(chan bool, 1)
	go func() { deleted <- s.DeleteProduct(product.ID) }()

	select {
	case <-deleted:
		t.Fatal("delete ran while a reference check was in progress")
	case <-time.After(20 * time.Millisecond):
	}

	release()
	assert.True(t, <-deleted)
}

func TestAppendActivityStampsServerTime(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return fixed }))
	u := seedUser(t, s, "barista")

	entry, err := s.AppendActivity(domain.ActivityLog{
		UserID:      u.ID,
		ActionType:  domain.ActionProductCreated,
		Description: "Created product Latte",
		Timestamp:   time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, fixed, entry.Timestamp)
}
