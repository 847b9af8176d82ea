package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies. It reports ErrBinderNotApplicable for requests without a body.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
			return ErrBinderNotApplicable
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			if r.ContentLength == 0 {
				return ErrBinderNotApplicable
			}
			return fmt.Errorf("%w: missing content-type header", ErrUnsupportedMediaType)
		}

		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		var values map[string][]string
		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
		}

		return bindToStruct(v, "form", values, ErrInvalidForm)
	}
}
