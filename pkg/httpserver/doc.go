// Package httpserver runs an http.Handler with configured timeouts and
// graceful shutdown on context cancellation, SIGINT or SIGTERM.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// LivenessHandler and ReadinessHandler serve /health/live and /health/ready;
// readiness runs every named Check (database ping, Redis ping) under a
// deadline and reports 503 when one fails.
package httpserver
