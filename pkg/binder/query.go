package binder

import "net/http"

// Query binds URL query parameters using `query` tags.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.URL.RawQuery == "" {
			return ErrBinderNotApplicable
		}
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
