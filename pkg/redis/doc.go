// Package redis connects to Redis with retry and exposes a health check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// The session package uses the returned client as a session store backend.
package redis
