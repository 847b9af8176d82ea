// Package mongo connects to MongoDB with retry and exposes a health check.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	ready := mongo.Healthcheck(db.Client())
//
// Configuration comes from MONGODB_* environment variables (see Config).
package mongo
