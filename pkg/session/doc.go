// Package session binds an opaque browser token to an authenticated user id.
//
// A Manager issues a fresh token on every login, keeps it in an encrypted
// cookie and looks the bound user id up on later requests. Sessions expire
// after an idle timeout and never outlive the configured maximum lifetime.
// Any backend that satisfies Store can hold session state; an in-memory store
// and a Redis store are provided.
//
//	cookies, _ := cookie.New([]string{secret})
//	sessions := session.New(
//	    session.WithCookieManager(cookies),
//	    session.WithStore(session.NewRedisStore(rdb)),
//	)
//
//	r.Use(sessions.Middleware)
//
//	// after credentials were verified
//	_ = sessions.Login(ctx, w, r, user.ID)
//
//	// in a handler
//	if sess, ok := session.FromContext(r.Context()); ok {
//	    _ = sess.UserID
//	}
//
// Errors returned by the package:
//
//   - ErrSessionNotFound: no session is associated with the token
//   - ErrSessionExpired: the session passed its expiry
//   - ErrInvalidSession: the session value is malformed
package session
