package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/app/models/dto"
	"github.com/yigit/nbadocs/internal/app/services"
	"github.com/yigit/nbadocs/internal/config"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

// CreateDefaultAdmin creates the configured administrator account if it doesn't exist.
// Nothing is created when no admin email or password is configured.
func CreateDefaultAdmin(ctx context.Context, userService *services.UserService, users services.UserStore, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		lgr.Debug().Msg("No default admin configured, skipping seed")
		return nil
	}

	lgr.Info().Str("email", cfg.Seed.AdminEmail).Msg("Checking/Creating default admin...")

	_, err := users.GetByEmail(ctx, cfg.Seed.AdminEmail)
	switch {
	case err == nil:
		lgr.Info().Msg("Default admin already exists")
		return nil
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return fmt.Errorf("error looking up default admin: %w", err)
	}

	admin, err := userService.CreateUser(ctx, &dto.CreateUserRequest{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil
		}
		return fmt.Errorf("error creating default admin: %w", err)
	}

	lgr.Info().Int64("userID", admin.ID).Msg("Default admin created")
	return nil
}
