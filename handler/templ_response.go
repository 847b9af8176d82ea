package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption is an alias for datastar's PatchElementOption
type TemplOption = datastar.PatchElementOption

type templResponse struct {
	component templ.Component
	status    int
	options   []datastar.PatchElementOption
}

// Render outputs component via SSE for DataStar or HTML for regular requests
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		return sse.PatchElementTempl(t.component, t.options...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 && t.status != http.StatusOK {
		w.WriteHeader(t.status)
	}
	return t.component.Render(r.Context(), w)
}

// Templ renders component with status 200.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{component: component, status: http.StatusOK, options: opts}
}

// TemplWithStatus renders component with the given status for regular
// requests. DataStar patches always use 200.
func TemplWithStatus(status int, component templ.Component, opts ...TemplOption) Response {
	return templResponse{component: component, status: status, options: opts}
}
