package app

import (
	"github.com/spf13/cobra"

	"github.com/authgrid/auth-service/internal/core/service"
	"github.com/authgrid/auth-service/internal/infrastructure/config"
	"github.com/authgrid/auth-service/internal/infrastructure/db/gormdb"
	"github.com/authgrid/auth-service/pkg/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(bootstrapCmd)
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Seed the permission catalog and built-in roles",
	Long: `Populates the credential store with the permission catalog and the
built-in roles (superuser, user, non_registered) with their default
grants. Safe to re-run: existing entries are kept, missing ones are
created.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

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

		seeder := service.NewSeedService(gormdb.NewRoleRepository(db), log)
		report, err := seeder.Seed(ctx)
		if err != nil {
			return err
		}

		created := 0
		for _, p := range report.Permissions {
			if p.Created {
				created++
			}
		}
		log.Info().
			Int("permissions_total", len(report.Permissions)).
			Int("permissions_created", created).
			Int("roles_total", len(report.Roles)).
			Msg("bootstrap complete")
		return nil
	},
}
