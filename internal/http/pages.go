package httpx

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	"github.com/target/carematch-ui/internal/domain/navigation"
	"github.com/target/carematch-ui/internal/ports"
)

// pageTemplate is the shell served for every page the guard lets through. The
// page content itself is rendered client side.
var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body data-route="{{.Route}}" data-policy="{{.Policy}}" data-role="{{.Role}}">
<main id="app" data-path="{{.Path}}"></main>
</body>
</html>
`))

type pageData struct {
	Title  string
	Route  string
	Policy string
	Path   string
	Role   string
}

// PageHandler serves the page shell for a route of the table.
type PageHandler struct {
	Descriptor navigation.RouteDescriptor
	Logger     *slog.Logger
}

func (h *PageHandler) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := decisionFromContext(r.Context()); !ok {
		// Pages are only reachable through Guard.
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "unguarded_page",
			Err:     errors.New("page served without navigation guard"),
		})
		return
	}

	data := pageData{
		Title:  h.Descriptor.Name,
		Route:  h.Descriptor.Path,
		Policy: string(h.Descriptor.Policy),
		Path:   r.URL.Path,
	}
	if data.Title == "" {
		data.Title = h.Descriptor.Path
	}
	if state, ok := GetClientStateFromContext(r.Context()); ok && state.Sessions != nil {
		if role, ok := state.Sessions.Role(r.Context()); ok {
			data.Role = string(role)
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render page failed", "route", h.Descriptor.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = buf.WriteTo(w)
}

// anonymousSessions is the session store of a request without a browser context.
type anonymousSessions struct{}

var _ ports.SessionStore = anonymousSessions{}

func (anonymousSessions) Token(context.Context) (string, bool)         { return "", false }
func (anonymousSessions) Role(context.Context) (domainauth.Role, bool) { return "", false }
func (anonymousSessions) Snapshot(context.Context) domainauth.Session  { return domainauth.Session{} }
func (anonymousSessions) ClearSession(context.Context) error           { return nil }
func (anonymousSessions) SetSession(context.Context, string, domainauth.Role) error {
	return errors.New("anonymous request has no browser context")
}
