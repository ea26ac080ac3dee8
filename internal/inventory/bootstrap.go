package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/tair/cafe-inventory/internal/config"
	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/internal/inventory/repository"
	"github.com/tair/cafe-inventory/pkg/auth"
	"github.com/tair/cafe-inventory/pkg/logger"
)

// SeedAdmin creates the configured admin account when ADMIN_PASSWORD is
// set and no user has that username yet. It reports whether a user was
// created.
func SeedAdmin(store *repository.Store, cfg *config.Config) (bool, error) {
	if cfg.AdminPassword == "" {
		return false, nil
	}

	_, err := store.FindUserByUsername(cfg.AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return false, err
	}

	admin, err := store.CreateUser(domain.User{
		Username: cfg.AdminUsername,
		Password: hash,
		Role:     domain.RoleAdmin,
		FullName: cfg.AdminFullName,
		Email:    cfg.AdminEmail,
		JoinDate: time.Now(),
		IsActive: true,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	logger.Logger.Info().
		Uint("user_id", admin.ID).
		Str("username", admin.Username).
		Msg("Bootstrap admin created")
	return true, nil
}
