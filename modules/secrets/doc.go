// Package secrets is the web front of secretkeeper: registration and login
// (local and Google), the per-user secret list and the submit form.
//
// The Service is assembled from the credential store, the authentication
// strategies and the session manager, and exposes a chi router:
//
//	svc := secrets.NewService(storage, local, sessions,
//		secrets.WithFederated(google, auth.NewStateCookie(cookies, 10*time.Minute)),
//		secrets.WithFlash(cookies),
//		secrets.WithMetrics(m),
//		secrets.WithLogger(log),
//	)
//	srv.Run(ctx, svc.Router())
//
// Every request is resolved to an Identity, rebuilt from the store on each
// request, or to anonymous. Protected routes redirect anonymous callers to
// /login with 303 and never reach their handler.
package secrets
