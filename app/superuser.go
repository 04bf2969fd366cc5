package app

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/infrastructure/config"
	"github.com/authgrid/auth-service/internal/infrastructure/db/gormdb"
	"github.com/authgrid/auth-service/pkg/logger"
)

func init() { //nolint: gochecknoinits
	superuserCmd.Flags().StringVar(&superuserEmail, "email", "", "email address of the superuser account")
	superuserCmd.Flags().StringVar(&superuserPassword, "password", "", "password for the superuser account")
	_ = superuserCmd.MarkFlagRequired("email")
	_ = superuserCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(superuserCmd)
}

var (
	superuserEmail    string
	superuserPassword string
)

var superuserCmd = &cobra.Command{
	Use:   "superuser",
	Short: "Create a user with the superuser role",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if _, err := mail.ParseAddress(superuserEmail); err != nil {
			return fmt.Errorf("invalid email %q: %w", superuserEmail, err)
		}
		if superuserPassword == "" {
			return errors.New("password must not be empty")
		}

		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}

		log := logger.Init(logger.Options{
			Level:  cfg.LogLevel,
			Pretty: cfg.Env == "development",
		})

		db, err := gormdb.Connect(gormdb.Config{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
		if err != nil {
			return err
		}

		role, err := gormdb.NewRoleRepository(db).FindRoleByName(ctx, domain.RoleSuperuser)
		if err != nil {
			if errors.Is(err, domain.ErrRoleNotFound) {
				return errors.New("superuser role is not seeded, run `auth-service bootstrap` first")
			}
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(superuserPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		users := gormdb.NewCredentialRepository(db)
		user, err := users.CreateUser(ctx, &domain.User{
			Email:        superuserEmail,
			PasswordHash: string(hash),
			RoleID:       role.ID,
		})
		if err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				return fmt.Errorf("user %q already exists", superuserEmail)
			}
			return err
		}

		log.Info().Str("id", user.ID).Str("email", user.Email).Msg("superuser created")
		return nil
	},
}
