package repository

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// Store holds every entity kind in process memory. It is created once at
// startup and shared by reference; each kind has its own lock, and no
// method holds two table locks at the same time.
//
// relations is taken before any table lock. Writes that check a reference
// hold it shared from the check until the row is stored; deletes of a
// referenced kind hold it exclusively.
type Store struct {
	relations sync.RWMutex

	users             *table[domain.User]
	products          *table[domain.Product]
	ingredients       *table[domain.Ingredient]
	supplies          *table[domain.Supply]
	merchandise       *table[domain.Merchandise]
	recipes           *table[domain.Recipe]
	recipeIngredients *table[domain.RecipeIngredient]
	recipeSupplies    *table[domain.RecipeSupply]
	activity          *table[domain.ActivityLog]

	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp activity entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		users:             newTable("user", func(v *domain.User) *uint { return &v.ID }),
		products:          newTable("product", func(v *domain.Product) *uint { return &v.ID }),
		ingredients:       newTable("ingredient", func(v *domain.Ingredient) *uint { return &v.ID }),
		supplies:          newTable("supply", func(v *domain.Supply) *uint { return &v.ID }),
		merchandise:       newTable("merchandise", func(v *domain.Merchandise) *uint { return &v.ID }),
		recipes:           newTable("recipe", func(v *domain.Recipe) *uint { return &v.ID }),
		recipeIngredients: newTable("recipe ingredient", func(v *domain.RecipeIngredient) *uint { return &v.ID }),
		recipeSupplies:    newTable("recipe supply", func(v *domain.RecipeSupply) *uint { return &v.ID }),
		activity:          newTable("activity log", func(v *domain.ActivityLog) *uint { return &v.ID }),
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the store. All state is in memory, so there is nothing
// to flush.
func (s *Store) Close() error {
	return nil
}

// --- users ---

// CreateUser inserts a user. Usernames are unique, ignoring case.
func (s *Store) CreateUser(u domain.User) (domain.User, error) {
	if err := u.Validate(); err != nil {
		return domain.User{}, err
	}
	return s.users.insert(u, uniqueUsername)
}

// GetUser retrieves a user by ID
func (s *Store) GetUser(id uint) (domain.User, error) {
	return s.users.get(id)
}

// FindUserByUsername retrieves a user by username, ignoring case.
func (s *Store) FindUserByUsername(username string) (domain.User, error) {
	found := s.users.list(func(u domain.User) bool {
		return strings.EqualFold(u.Username, username)
	})
	if len(found) == 0 {
		return domain.User{}, fmt.Errorf("%w: user %q", domain.ErrNotFound, username)
	}
	return found[0], nil
}

// ListUsers lists users matching f.
func (s *Store) ListUsers(f domain.Filter) ([]domain.User, error) {
	return listFiltered(s.users, f)
}

// UpdateUser merges patch onto the user.
func (s *Store) UpdateUser(id uint, patch domain.UserPatch) (domain.User, error) {
	return s.users.update(id, func(u *domain.User) error {
		patch.Apply(u)
		return u.Validate()
	}, uniqueUsername)
}

// SetUserActive archives (false) or restores (true) a user.
func (s *Store) SetUserActive(id uint, active bool) (domain.User, error) {
	return s.users.update(id, func(u *domain.User) error {
		u.IsActive = active
		return nil
	}, nil)
}

// CountUsers returns the number of users, archived included.
func (s *Store) CountUsers() int {
	return s.users.count(nil)
}

func uniqueUsername(candidate domain.User, rows map[uint]domain.User) error {
	for id, u := range rows {
		if id != candidate.ID && strings.EqualFold(u.Username, candidate.Username) {
			return fmt.Errorf("%w: username %q already exists", domain.ErrConflict, candidate.Username)
		}
	}
	return nil
}
