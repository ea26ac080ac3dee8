package command

import "github.com/tair/cafe-inventory/internal/inventory/domain"

// CatalogStore is the write surface for products.
type CatalogStore interface {
	GetProduct(id uint) (domain.Product, error)
	CreateProduct(p domain.Product) (domain.Product, error)
	UpdateProduct(id uint, patch domain.ProductPatch) (domain.Product, error)
	DeleteProduct(id uint) bool
}

// StockStore is the write surface for ingredients, supplies and merchandise.
type StockStore interface {
	GetIngredient(id uint) (domain.Ingredient, error)
	CreateIngredient(i domain.Ingredient) (domain.Ingredient, error)
	UpdateIngredient(id uint, patch domain.IngredientPatch) (domain.Ingredient, error)
	DeleteIngredient(id uint) bool

	GetSupply(id uint) (domain.Supply, error)
	CreateSupply(s domain.Supply) (domain.Supply, error)
	UpdateSupply(id uint, patch domain.SupplyPatch) (domain.Supply, error)
	DeleteSupply(id uint) bool

	GetMerchandise(id uint) (domain.Merchandise, error)
	CreateMerchandise(m domain.Merchandise) (domain.Merchandise, error)
	UpdateMerchandise(id uint, patch domain.MerchandisePatch) (domain.Merchandise, error)
	DeleteMerchandise(id uint) bool
}

// RecipeStore is the write surface for recipes and their lines.
type RecipeStore interface {
	CreateRecipeWithLines(r domain.Recipe, ingredients []domain.RecipeIngredient, supplies []domain.RecipeSupply) (domain.Recipe, []domain.RecipeIngredient, []domain.RecipeSupply, error)
	UpdateRecipe(id uint, patch domain.RecipePatch) (domain.Recipe, error)
	DeleteRecipe(id uint) bool

	CreateRecipeIngredient(l domain.RecipeIngredient) (domain.RecipeIngredient, error)
	UpdateRecipeIngredient(id uint, patch domain.RecipeIngredientPatch) (domain.RecipeIngredient, error)
	DeleteRecipeIngredient(id uint) bool

	CreateRecipeSupply(l domain.RecipeSupply) (domain.RecipeSupply, error)
	UpdateRecipeSupply(id uint, patch domain.RecipeSupplyPatch) (domain.RecipeSupply, error)
	DeleteRecipeSupply(id uint) bool
}

// UserStore is the write surface for staff accounts.
type UserStore interface {
	CreateUser(u domain.User) (domain.User, error)
	UpdateUser(id uint, patch domain.UserPatch) (domain.User, error)
	SetUserActive(id uint, active bool) (domain.User, error)
}
