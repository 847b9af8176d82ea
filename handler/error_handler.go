package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/secretkeeper/pkg/binder"
	"github.com/dmitrymomot/secretkeeper/pkg/logger"
)

// ErrorPageParams contains data for rendering error pages
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// classifyError maps err to a status code, a user-safe message and a log level.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	case errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrInvalidQuery):
		info.StatusCode = http.StatusBadRequest
		info.Message = "The submitted data could not be read"
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Message = "Unsupported content type"
	}

	info.LogLevel = slog.LevelError
	if isClientError(info.StatusCode) {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler returns an ErrorHandler that logs err with request
// details and renders page, or a plain-text error when page is nil.
func NewErrorHandler(log *slog.Logger, page func(ErrorPageParams) templ.Component) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := middleware.GetReqID(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if page == nil {
			http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
			return
		}

		component := page(ErrorPageParams{
			Error:      info.Message,
			StatusCode: info.StatusCode,
			RequestID:  requestID,
		})
		if renderErr := TemplWithStatus(info.StatusCode, component).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error page",
				logger.Error(renderErr),
				logger.Event("render_error_page"),
			)
		}
	}
}
