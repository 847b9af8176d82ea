package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidForm          = errors.New("failed to parse form data")
	ErrInvalidQuery         = errors.New("failed to parse query parameters")

	// ErrBinderNotApplicable tells the caller to skip this binder for the
	// request, e.g. a form binder on a GET request.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
