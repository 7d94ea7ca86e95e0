package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/rockymountnc/licensetracker/internal/config"
	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/repository"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminUsername == "" || adminEmail == "" || adminPassword == "" {
			return errors.New("--username, --email and --password are required")
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, cleanup, err := openRepository(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate user ID: %w", err)
		}

		now := time.Now().UTC()
		user := &models.User{
			ID:           id.String(),
			Username:     adminUsername,
			Email:        adminEmail,
			PasswordHash: string(hash),
			Groups:       []string{models.GroupAdmin},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := repo.CreateUser(context.Background(), user); err != nil {
			if errors.Is(err, repository.ErrUserExists) {
				return fmt.Errorf("user %q already exists", adminUsername)
			}
			return fmt.Errorf("failed to create admin: %w", err)
		}

		slog.Info("Admin account created",
			slog.String("username", user.Username),
			slog.String("id", user.ID),
		)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "admin username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	rootCmd.AddCommand(createAdminCmd)
}
