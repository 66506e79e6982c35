package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/harikrishnagadicharla/unicart/internal/users"
	"github.com/harikrishnagadicharla/unicart/pkg/config"
	"github.com/harikrishnagadicharla/unicart/pkg/db"
	"github.com/harikrishnagadicharla/unicart/pkg/db/models"
	pkgerrors "github.com/harikrishnagadicharla/unicart/pkg/errors"
	"github.com/harikrishnagadicharla/unicart/pkg/logger"
	"github.com/harikrishnagadicharla/unicart/pkg/security"
	"gorm.io/gorm"
)

// EnsureAdmin creates the configured admin account if it does not exist yet.
// It runs on startup when the seed flag is enabled and is idempotent.
func EnsureAdmin(ctx context.Context, client *db.Client, passwordCfg config.PasswordConfig, storefrontCfg config.StorefrontConfig, logg *logger.Logger) error {
	if client == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}

	email := strings.ToLower(strings.TrimSpace(storefrontCfg.AdminEmail))
	if email == "" || storefrontCfg.AdminPassword == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "admin email and password are required")
	}

	return client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check admin email")
		}

		passwordHash, err := security.HashPassword(storefrontCfg.AdminPassword, passwordCfg)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash admin password")
		}

		user, err := repo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    "Admin",
			LastName:     "User",
			Role:         models.RoleAdmin,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin user")
		}

		if logg != nil {
			logCtx := logg.WithFields(ctx, map[string]any{"user_id": user.ID.String()})
			logg.Info(logCtx, "auth.admin_seeded")
		}
		return nil
	})
}
