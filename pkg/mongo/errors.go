package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrEmptyConnectionURL     = errors.New("empty mongo connection url, use MONGODB_URL env var")
)
