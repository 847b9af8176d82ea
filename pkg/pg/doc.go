// Package pg opens a pgx connection pool with retry, applies goose
// migrations from an fs.FS, and classifies common PostgreSQL errors.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, users.Migrations, log); err != nil {
//		return err
//	}
package pg
