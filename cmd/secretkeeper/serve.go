package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/secretkeeper/modules/secrets"
	"github.com/dmitrymomot/secretkeeper/pkg/auth"
	"github.com/dmitrymomot/secretkeeper/pkg/config"
	"github.com/dmitrymomot/secretkeeper/pkg/cookie"
	"github.com/dmitrymomot/secretkeeper/pkg/httpserver"
	"github.com/dmitrymomot/secretkeeper/pkg/logger"
	"github.com/dmitrymomot/secretkeeper/pkg/metrics"
	"github.com/dmitrymomot/secretkeeper/pkg/redis"
	"github.com/dmitrymomot/secretkeeper/pkg/session"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	appCfg, log, err := loadAppConfig()
	if err != nil {
		return err
	}

	var (
		httpCfg    httpserver.Config
		cookieCfg  cookie.Config
		sessionCfg session.Config
		secretsCfg secrets.Config
	)
	if err := config.Load(&httpCfg); err != nil {
		return err
	}
	if err := config.Load(&cookieCfg); err != nil {
		return err
	}
	if err := config.Load(&sessionCfg); err != nil {
		return err
	}
	if err := config.Load(&secretsCfg); err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, appCfg.StoreDriver, log)
	if err != nil {
		return err
	}
	checks := []httpserver.Check{store.check}

	sessionOpts := []session.Option{
		session.WithCookieManager(cookies),
		session.WithLogger(log.With(logger.Component("session"))),
	}
	if sessionCfg.Store == session.StoreRedis {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			store.close()
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			store.close()
			return err
		}
		defer func() { _ = client.Close() }()
		sessionOpts = append(sessionOpts, session.WithStore(
			session.NewRedisStore(client, session.WithKeyPrefix(sessionCfg.RedisKeyPrefix)),
		))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}
	sessions := session.NewFromConfig(sessionCfg, sessionOpts...)

	m := metrics.New()
	local := auth.NewLocalStrategy(store,
		auth.WithLocalLogger(log.With(logger.Component("auth"))),
	)

	svcOpts := []secrets.Option{
		secrets.WithConfig(secretsCfg),
		secrets.WithFlash(cookies),
		secrets.WithMetrics(m),
		secrets.WithReadinessChecks(checks...),
		secrets.WithLogger(log),
	}
	if appCfg.GoogleEnabled {
		var googleCfg auth.GoogleOAuthConfig
		if err := config.Load(&googleCfg); err != nil {
			store.close()
			return err
		}
		federated := auth.NewFederatedStrategy(store, auth.NewGoogleAdapter(googleCfg),
			auth.WithUsernamePrefix(secretsCfg.UsernamePrefix),
			auth.WithFederatedLogger(log.With(logger.Component("auth"))),
		)
		svcOpts = append(svcOpts, secrets.WithFederated(federated, auth.NewStateCookie(cookies, googleCfg.StateTTL)))
	}

	svc := secrets.NewService(store, local, sessions, svcOpts...)

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func() { _ = sessions.Close() }),
		httpserver.WithStopHook(store.close),
	)
	return srv.Run(ctx, svc.Router())
}
