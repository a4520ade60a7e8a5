// Package navigation maps client paths to guarded pages.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/wolfeidau/inventario/internal/api"
	"github.com/wolfeidau/inventario/internal/guard"
	"github.com/wolfeidau/inventario/internal/session"
)

// ErrNotFound is returned for paths no route matches.
var ErrNotFound = errors.New("no route for path")

// Public password pages. The reset and create pages take the emailed token
// as their only trailing segment.
const (
	RecoverPasswordPath = "/recuperar-password"
	ResetPasswordPath   = "/reset-password"
	CreatePasswordPath  = "/crear-password"
)

// LoadFunc fetches the data a page shows.
type LoadFunc func(ctx context.Context, client *api.Client) (any, error)

// Page is a view reachable by path. A nil Load renders the title only.
type Page struct {
	Path  string
	Title string
	Load  LoadFunc
}

// Section groups pages under one prefix behind one guard.
type Section struct {
	Prefix string
	Guard  guard.Guard
	// Pages is keyed by sub-path; "" is the section index.
	Pages map[string]Page
}

// Outcome is either the page to render or a redirect.
type Outcome = guard.Decision[Page]

// Router resolves paths against the current session.
type Router struct {
	sessions  guard.Reader
	sections  []Section
	public    map[string]Page
	// withToken is keyed by prefix; the page path gains the token.
	withToken map[string]Page
}

// NewRouter builds a router over the given sections.
func NewRouter(sessions guard.Reader, sections ...Section) *Router {
	r := &Router{
		sessions: sessions,
		public: map[string]Page{
			session.LoginPath:   {Path: session.LoginPath, Title: "Iniciar sesión"},
			RecoverPasswordPath: {Path: RecoverPasswordPath, Title: "Recuperar contraseña"},
		},
		withToken: map[string]Page{
			ResetPasswordPath:  {Title: "Restablecer contraseña"},
			CreatePasswordPath: {Title: "Crear contraseña"},
		},
	}

	for _, s := range sections {
		prefix := "/" + strings.Trim(s.Prefix, "/")
		pages := make(map[string]Page, len(s.Pages))
		for sub, p := range s.Pages {
			p.Path = prefix
			if sub != "" {
				p.Path += "/" + sub
			}
			pages[sub] = p
		}
		r.sections = append(r.sections, Section{Prefix: prefix, Guard: s.Guard, Pages: pages})
	}

	return r
}

// Navigate resolves path. Guarded sections decide before the sub-path is
// looked up, so a denied session is redirected even for unknown sub-paths.
func (r *Router) Navigate(path string) (Outcome, error) {
	clean := "/" + strings.Trim(path, "/")

	if clean == "/" {
		return guard.Deny[Page](session.LoginPath), nil
	}

	if p, ok := r.public[clean]; ok {
		return guard.Allow(p), nil
	}

	for prefix, p := range r.withToken {
		if token, ok := within(clean, prefix); ok && token != "" && !strings.Contains(token, "/") {
			p.Path = clean
			return guard.Allow(p), nil
		}
	}

	for _, s := range r.sections {
		sub, ok := within(clean, s.Prefix)
		if !ok {
			continue
		}

		p, found := s.Pages[sub]
		decision := guard.Evaluate(s.Guard, r.sessions, p)
		if !decision.Allowed() {
			return decision, nil
		}
		if !found {
			return Outcome{}, fmt.Errorf("%w: %s", ErrNotFound, clean)
		}
		return decision, nil
	}

	return Outcome{}, fmt.Errorf("%w: %s", ErrNotFound, clean)
}

// Home returns the landing path for the current session.
func (r *Router) Home() string {
	return r.sessions.Current().Role.HomePath()
}

// Pages lists every guarded page path, in section order.
func (r *Router) Pages() []string {
	var paths []string
	for _, s := range r.sections {
		for _, sub := range slices.Sorted(maps.Keys(s.Pages)) {
			paths = append(paths, s.Pages[sub].Path)
		}
	}
	return paths
}

func within(path, prefix string) (string, bool) {
	if path == prefix {
		return "", true
	}
	if strings.HasPrefix(path, prefix+"/") {
		return strings.TrimPrefix(path, prefix+"/"), true
	}
	return "", false
}
