// Package config loads application configuration from environment variables
// into env-tagged structs.
//
// Values are parsed with github.com/caarlos0/env/v11. A `.env` file in the
// working directory is loaded once via github.com/joho/godotenv before the
// first parse; a missing file is not an error.
//
// Each configuration type is parsed at most once per process and cached, so
// packages can call Load for the same struct type from several places without
// re-reading the environment:
//
//	var cfg httpserver.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Reset drops the cache and is intended for tests.
package config
