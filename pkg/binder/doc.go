// Package binder fills request structs from HTTP form and query data.
//
// Fields are matched by struct tag (`form:"name"` or `query:"name"`); a
// missing tag falls back to the lower-cased field name and "-" skips the
// field. Strings, integers, floats, booleans, pointers to those and slices of
// them are supported.
//
//	type LoginRequest struct {
//	    Username string `form:"username"`
//	    Password string `form:"password"`
//	}
//
//	http.HandleFunc("/login", handler.Wrap(login,
//	    handler.WithBinders[handler.Context, LoginRequest](binder.Form()),
//	))
package binder
