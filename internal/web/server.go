// Package web serves the role-gated pages over a local HTTP front-end.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"filippo.io/csrf"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/inventario/internal/api"
	"github.com/wolfeidau/inventario/internal/logger"
	"github.com/wolfeidau/inventario/internal/navigation"
	"github.com/wolfeidau/inventario/internal/session"
)

// Backend is the subset of the API client the front-end drives directly.
type Backend interface {
	Login(ctx context.Context, rut, password string) (*api.LoginResponse, error)
	Logout(ctx context.Context) error
	ClearCache() error
	RequestPasswordReset(ctx context.Context, rut string) (*api.Result, error)
	ResetPassword(ctx context.Context, token, password string) (*api.Result, error)
	SetPassword(ctx context.Context, token, password string) (*api.Result, error)
}

// Server is the local front-end. It shares the client's single session.
type Server struct {
	store   *session.Store
	router  *navigation.Router
	client  *api.Client
	backend Backend
	logger  zerolog.Logger
}

func NewServer(store *session.Store, router *navigation.Router, client *api.Client, log zerolog.Logger) *Server {
	return &Server{
		store:   store,
		router:  router,
		client:  client,
		backend: client,
		logger:  log,
	}
}

// Handler returns the front-end handler. API routes get CORS for the given
// origins, everything else is protected against cross-origin form posts.
func (s *Server) Handler(corsOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", s.loginPage)
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("POST /logout", s.logout)
	mux.HandleFunc("POST "+navigation.RecoverPasswordPath, s.requestPasswordReset)
	mux.HandleFunc("POST "+navigation.ResetPasswordPath+"/{token}", s.resetPassword)
	mux.HandleFunc("POST "+navigation.CreatePasswordPath+"/{token}", s.setPassword)
	mux.HandleFunc("GET /api/session", s.currentSession)
	mux.HandleFunc("GET /api/pages", s.pages)
	mux.HandleFunc("GET /", s.navigate)

	protection := csrf.New()
	withCORS := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}).Handler(mux)
	protected := protection.Handler(mux)

	return logger.Handler(s.logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAPIRoute(r.URL.Path) {
			withCORS.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))
}

func isAPIRoute(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	rut := strings.TrimSpace(r.PostFormValue("rut"))

	resp, err := s.backend.Login(r.Context(), rut, r.PostFormValue("password"))
	if err != nil {
		status, msg := backendFailure(err)
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("rut", rut).Msg("login failed")
		writeError(w, status, msg)
		return
	}

	if err := s.store.Login(resp.Credentials()); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("session kept in memory only")
	}

	http.Redirect(w, r, s.router.Home(), http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if s.store.Current().Authenticated() {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		if err := s.backend.Logout(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("backend logout failed")
		}
	}

	if err := s.store.Logout(); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to remove persisted session")
	}
	if err := s.backend.ClearCache(); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to clear response cache")
	}

	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
}

func (s *Server) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	res, err := s.backend.RequestPasswordReset(r.Context(), strings.TrimSpace(r.PostFormValue("rut")))
	if err != nil {
		status, msg := backendFailure(err)
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("password recovery request failed")
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	s.completePassword(w, r, s.backend.ResetPassword)
}

func (s *Server) setPassword(w http.ResponseWriter, r *http.Request) {
	s.completePassword(w, r, s.backend.SetPassword)
}

// completePassword submits the token from the link with the new password and
// sends the browser back to the login page.
func (s *Server) completePassword(w http.ResponseWriter, r *http.Request, submit func(ctx context.Context, token, password string) (*api.Result, error)) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	if _, err := submit(r.Context(), r.PathValue("token"), r.PostFormValue("password")); err != nil {
		status, msg := backendFailure(err)
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("password update failed")
		writeError(w, status, msg)
		return
	}

	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
}

type sessionView struct {
	Authenticated bool   `json:"authenticated"`
	Cargo         int    `json:"cargo"`
	Role          string `json:"role"`
	Nombre        string `json:"nombre,omitempty"`
	Apellido      string `json:"apellido,omitempty"`
	Home          string `json:"home"`
}

func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) {
	cur := s.store.Current()
	writeJSON(w, http.StatusOK, sessionView{
		Authenticated: cur.Authenticated(),
		Cargo:         int(cur.Role),
		Role:          cur.Role.String(),
		Nombre:        cur.FirstName,
		Apellido:      cur.LastName,
		Home:          cur.Role.HomePath(),
	})
}

func (s *Server) pages(w http.ResponseWriter, r *http.Request) {
	var allowed []string
	for _, path := range s.router.Pages() {
		outcome, err := s.router.Navigate(path)
		if err == nil && outcome.Allowed() {
			allowed = append(allowed, path)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": allowed})
}

type pageView struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Data  any    `json:"data,omitempty"`
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.router.Navigate(r.URL.Path)
	if err != nil {
		if errors.Is(err, navigation.ErrNotFound) {
			writeError(w, http.StatusNotFound, "página no encontrada")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !outcome.Allowed() {
		http.Redirect(w, r, outcome.RedirectTo(), http.StatusSeeOther)
		return
	}

	page := outcome.View()
	view := pageView{Path: page.Path, Title: page.Title}

	if page.Load != nil {
		data, err := page.Load(r.Context(), s.client)
		if err != nil {
			status, msg := backendFailure(err)
			zerolog.Ctx(r.Context()).Error().Err(err).Str("page", page.Path).Msg("failed to load page")
			writeError(w, status, msg)
			return
		}
		view.Data = data
	}

	writeJSON(w, http.StatusOK, view)
}

func backendFailure(err error) (int, string) {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError:
		return apiErr.Status, apiErr.Error()
	case errors.Is(err, api.ErrMissingCredentials):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, api.ErrNoRole):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, api.ErrNotAuthenticated):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusBadGateway, err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
