// Package handler provides typed HTTP handlers for server-rendered pages.
//
// A HandlerFunc receives a Context and a request struct filled by binders,
// and returns a Response. Wrap turns it into an http.HandlerFunc:
//
//	type SubmitRequest struct {
//		Secret string `form:"secret"`
//	}
//
//	func submit(ctx handler.Context, req SubmitRequest) handler.Response {
//		if err := store.AppendSecret(ctx, userID, req.Secret); err != nil {
//			return handler.Redirect("/login")
//		}
//		return handler.Redirect("/secrets")
//	}
//
//	r.Post("/submit", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, SubmitRequest](binder.Form()),
//		handler.WithErrorHandler[handler.Context, SubmitRequest](errorHandler),
//	))
//
// Templ renders an a-h/templ component as a full HTML page, or as an element
// patch over server-sent events when the request comes from a DataStar
// client. Redirect does the same for redirects.
//
// Errors returned by binders or by Response.Render go to the ErrorHandler.
// NewErrorHandler builds one that logs the failure and renders an error page;
// HTTPError values choose the status code.
package handler
