package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/secretkeeper/pkg/config"
	"github.com/dmitrymomot/secretkeeper/pkg/mongo"
	"github.com/dmitrymomot/secretkeeper/pkg/pg"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

func migrateCmd() *cobra.Command {
	var driver string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create indexes (mongo) or apply schema migrations (postgres)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			appCfg, log, err := loadAppConfig()
			if err != nil {
				return err
			}
			if driver == "" {
				driver = appCfg.StoreDriver
			}
			ctx := cmd.Context()

			switch driver {
			case driverMongo:
				var cfg mongo.Config
				if err := config.Load(&cfg); err != nil {
					return err
				}
				db, err := mongo.NewWithDatabase(ctx, cfg)
				if err != nil {
					return err
				}
				defer func() { _ = db.Client().Disconnect(context.Background()) }()
				if err := users.NewMongoStorage(db).EnsureIndexes(ctx); err != nil {
					return err
				}

			case driverPostgres:
				var cfg pg.Config
				if err := config.Load(&cfg); err != nil {
					return err
				}
				pool, err := pg.Connect(ctx, cfg)
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := pg.Migrate(ctx, pool, cfg, users.Migrations, log); err != nil {
					return err
				}

			default:
				return fmt.Errorf("%w: %q has no schema", errUnknownDriver, driver)
			}

			log.InfoContext(ctx, "migration complete", slog.String("driver", driver))
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "store driver to migrate (defaults to STORE_DRIVER)")
	return cmd
}
