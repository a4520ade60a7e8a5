package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/inventario/internal/api"
	"github.com/wolfeidau/inventario/internal/navigation"
	"github.com/wolfeidau/inventario/internal/session"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login/":
			var req api.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Password != "secreto" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"success": false, "error": "Credenciales inválidas"}`)
				return
			}
			_, _ = io.WriteString(w, `{"success": true, "token": "abc", "cargo": 1, "nombre": "Juan", "apellido": "Pérez"}`)
		case "/api/auth/logout/":
			_, _ = io.WriteString(w, `{"success": true}`)
		case "/api/auth/solicitar-recuperacion/":
			_, _ = io.WriteString(w, `{"success": true, "message": "Se ha enviado un correo"}`)
		case "/api/auth/resetear-password/", "/api/establecer-password/":
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req["token"] != "valido" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"success": false, "error": "Token inválido o expirado"}`)
				return
			}
			assert.Empty(t, r.Header.Get("Authorization"))
			assert.Equal(t, "Nueva123!", req["password"])
			_, _ = io.WriteString(w, `{"success": true}`)
		case "/api/data/inventario/":
			assert.Equal(t, "Token abc", r.Header.Get("Authorization"))
			w.Header().Set("Cache-Control", "max-age=300")
			_, _ = io.WriteString(w, `[{"id": 1, "producto": "Harina"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) (http.Handler, *session.Store) {
	t.Helper()
	return newCachingTestServer(t, "")
}

func newCachingTestServer(t *testing.T, cacheDir string) (http.Handler, *session.Store) {
	t.Helper()
	backend := newBackend(t)

	store := session.Open(session.NewMemoryStorage())

	nop := zerolog.Nop()
	cfg := api.DefaultConfig()
	cfg.BaseURL = backend.URL + "/api/"
	cfg.Logger = &nop
	cfg.CacheDir = cacheDir
	client, err := api.NewClient(cfg, store)
	require.NoError(t, err)

	router := navigation.NewRouter(store, navigation.Sections()...)
	return NewServer(store, router, client, nop).Handler([]string{"http://localhost:5173"}), store
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestServer_guardedPages(t *testing.T) {
	h, store := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bodeguero", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	require.NoError(t, store.Login(session.Credentials{Token: "abc", Role: session.RoleWarehouseStaff}))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bodeguero", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"path": "/bodeguero", "title": "Bodeguero", "data": [{"id": 1, "producto": "Harina"}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/administrador/Usuarios", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bodeguero/NoExiste", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_loginPage(t *testing.T) {
	h, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"path": "/login", "title": "Iniciar sesión"}`, rec.Body.String())
}

func TestServer_loginLogout(t *testing.T) {
	h, store := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/login", url.Values{"rut": {"11111111-1"}, "password": {"mala"}}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credenciales inválidas")
	require.False(t, store.Current().Authenticated())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/login", url.Values{"rut": {"11111111-1"}}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), api.ErrMissingCredentials.Error())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/login", url.Values{"rut": {"11111111-1"}, "password": {"secreto"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/bodeguero", rec.Header().Get("Location"))
	require.Equal(t, session.Session{Token: "abc", Role: session.RoleWarehouseStaff, FirstName: "Juan", LastName: "Pérez"}, store.Current())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/logout", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.Equal(t, session.Empty(), store.Current())
}

func TestServer_logoutClearsCachedResponses(t *testing.T) {
	cacheDir := t.TempDir()
	h, store := newCachingTestServer(t, cacheDir)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/login", url.Values{"rut": {"11111111-1"}, "password": {"secreto"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bodeguero", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, dirContains(t, cacheDir, "Token abc"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/logout", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.False(t, store.Current().Authenticated())

	assert.False(t, dirContains(t, cacheDir, "Token abc"))
}

// dirContains reports whether any file under dir holds needle.
func dirContains(t *testing.T, dir, needle string) bool {
	t.Helper()
	found := false
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if errors.Is(err, fs.ErrNotExist) {
			return filepath.SkipAll
		}
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.Contains(data, []byte(needle)) {
			found = true
		}
		return nil
	})
	require.NoError(t, err)
	return found
}

func TestServer_passwordPages(t *testing.T) {
	h, store := newTestServer(t)

	for _, path := range []string{"/recuperar-password", "/reset-password/valido", "/crear-password/valido"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/recuperar-password", url.Values{"rut": {"11111111-1"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "message": "Se ha enviado un correo"}`, rec.Body.String())

	for _, path := range []string{"/reset-password/valido", "/crear-password/valido"} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, postForm(path, url.Values{"password": {"Nueva123!"}}))
		require.Equal(t, http.StatusSeeOther, rec.Code, path)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/reset-password/vencido", url.Values{"password": {"Nueva123!"}}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token inválido o expirado")

	require.False(t, store.Current().Authenticated())
}

func TestServer_crossOriginPostRejected(t *testing.T) {
	h, store := newTestServer(t)

	req := postForm("/login", url.Values{"rut": {"11111111-1"}, "password": {"secreto"}})
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	req.Header.Set("Origin", "https://evil.example")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, store.Current().Authenticated())
}

func TestServer_sessionAPI(t *testing.T) {
	h, store := newTestServer(t)
	require.NoError(t, store.Login(session.Credentials{Token: "abc", Role: session.RoleAuditor, FirstName: "Eva"}))

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"authenticated": true, "cargo": 3, "role": "auditor", "nombre": "Eva", "home": "/auditor"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "abc")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pages": ["/auditor"]}`, rec.Body.String())
}
