package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/authgrid/auth-service/internal/api"
	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/infrastructure/config"
	"github.com/authgrid/auth-service/internal/infrastructure/db/gormdb"
	mongodb "github.com/authgrid/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/authgrid/auth-service/internal/infrastructure/db/redis"
	"github.com/authgrid/auth-service/pkg/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the auth-service HTTP API",
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

		if cfg.JWTSecret == "" {
			log.Fatal().Msg("JWT_SECRET is required")
		}

		db, err := gormdb.Connect(gormdb.Config{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
		if err != nil {
			log.Fatal().Err(err).Msg("credential store unavailable")
		}

		// A missing default role means bootstrap never ran; refuse to
		// start instead of failing every registration at runtime.
		roles := gormdb.NewRoleRepository(db)
		if _, err := roles.FindRoleByName(ctx, domain.DefaultRoleName); err != nil {
			if errors.Is(err, domain.ErrRoleNotFound) {
				log.Fatal().Str("role", domain.DefaultRoleName).
					Msg("default role is not seeded, run `auth-service bootstrap` first")
			}
			log.Fatal().Err(err).Msg("default role lookup failed")
		}

		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}

		mongoClient, mdb, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongodb unavailable")
		}
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()

		e := api.NewRouter(cfg, db, mdb, rdb, log)

		go func() {
			if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("server stopped")
			}
		}()
		log.Info().Str("port", cfg.Port).Msg("auth-service started")

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}
