package navigation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/inventario/internal/api"
	"github.com/wolfeidau/inventario/internal/session"
)

func loginAs(t *testing.T, store *session.Store, role session.Role) {
	t.Helper()
	if role == session.RoleNone {
		require.NoError(t, store.Logout())
		return
	}
	require.NoError(t, store.Login(session.Credentials{Token: "t", Role: role}))
}

func TestRouter_Navigate(t *testing.T) {
	tests := []struct {
		name     string
		role     session.Role
		path     string
		allowed  bool
		title    string
		redirect string
	}{
		{name: "root redirects to login", role: session.RoleAdministrator, path: "/", redirect: "/login"},
		{name: "login is public", role: session.RoleNone, path: "/login", allowed: true, title: "Iniciar sesión"},
		{name: "password recovery is public", role: session.RoleNone, path: "/recuperar-password", allowed: true, title: "Recuperar contraseña"},
		{name: "reset link is public", role: session.RoleNone, path: "/reset-password/abc123", allowed: true, title: "Restablecer contraseña"},
		{name: "create link open to a signed in user", role: session.RoleSupervisor, path: "/crear-password/abc123/", allowed: true, title: "Crear contraseña"},
		{name: "bodeguero index", role: session.RoleWarehouseStaff, path: "/bodeguero", allowed: true, title: "Bodeguero"},
		{name: "bodeguero sub page", role: session.RoleWarehouseStaff, path: "/bodeguero/RegistrarMerma/", allowed: true, title: "Registrar merma"},
		{name: "supervisor denied bodeguero", role: session.RoleSupervisor, path: "/bodeguero/IngresarProducto", redirect: "/login"},
		{name: "supervisor pending mermas", role: session.RoleSupervisor, path: "/jefebodega/RegistrosMermas", allowed: true, title: "Mermas pendientes"},
		{name: "admin denied jefebodega", role: session.RoleAdministrator, path: "/jefebodega", redirect: "/login"},
		{name: "admin users", role: session.RoleAdministrator, path: "/administrador/Usuarios", allowed: true, title: "Usuarios"},
		{name: "anonymous denied admin", role: session.RoleNone, path: "/administrador", redirect: "/login"},
		{name: "auditor dashboard", role: session.RoleAuditor, path: "/auditor", allowed: true, title: "Dashboard general"},
		{name: "auditor denied admin", role: session.RoleAuditor, path: "/administrador", redirect: "/login"},
		{name: "anonymous denied auditor", role: session.RoleNone, path: "/auditor", redirect: "/login"},
		{name: "denied unknown sub page still redirects", role: session.RoleNone, path: "/bodeguero/NoExiste", redirect: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.Open(session.NewMemoryStorage())
			loginAs(t, store, tt.role)
			router := NewRouter(store, Sections()...)

			outcome, err := router.Navigate(tt.path)
			require.NoError(t, err)

			if tt.allowed {
				require.True(t, outcome.Allowed())
				require.Equal(t, tt.title, outcome.View().Title)
				return
			}

			require.False(t, outcome.Allowed())
			require.Equal(t, tt.redirect, outcome.RedirectTo())
			require.True(t, outcome.Replace())
		})
	}
}

func TestRouter_NavigateNotFound(t *testing.T) {
	store := session.Open(session.NewMemoryStorage())
	loginAs(t, store, session.RoleWarehouseStaff)
	router := NewRouter(store, Sections()...)

	_, err := router.Navigate("/bodeguero/NoExiste")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = router.Navigate("/inventario")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = router.Navigate("/bodegueros")
	require.ErrorIs(t, err, ErrNotFound)

	// token pages need exactly one token segment
	_, err = router.Navigate("/reset-password")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = router.Navigate("/crear-password/abc/extra")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRouter_tokenPageKeepsToken(t *testing.T) {
	router := NewRouter(session.Open(session.NewMemoryStorage()), Sections()...)

	outcome, err := router.Navigate("reset-password/f3a9c1/")
	require.NoError(t, err)
	require.True(t, outcome.Allowed())
	require.Equal(t, "/reset-password/f3a9c1", outcome.View().Path)
}

func TestRouter_reflectsSessionChanges(t *testing.T) {
	store := session.Open(session.NewMemoryStorage())
	router := NewRouter(store, Sections()...)

	outcome, err := router.Navigate("/jefebodega")
	require.NoError(t, err)
	require.False(t, outcome.Allowed())

	loginAs(t, store, session.RoleSupervisor)
	outcome, err = router.Navigate("/jefebodega")
	require.NoError(t, err)
	require.True(t, outcome.Allowed())
	require.Equal(t, "/jefebodega", router.Home())

	loginAs(t, store, session.RoleNone)
	outcome, err = router.Navigate("/jefebodega")
	require.NoError(t, err)
	require.False(t, outcome.Allowed())
	require.Equal(t, "/login", router.Home())
}

func TestRouter_Pages(t *testing.T) {
	store := session.Open(session.NewMemoryStorage())
	router := NewRouter(store, Sections()...)

	pages := router.Pages()
	assert.Contains(t, pages, "/bodeguero")
	assert.Contains(t, pages, "/jefebodega/ComparacionMermas")
	assert.Contains(t, pages, "/administrador/Blockchain")
	assert.Contains(t, pages, "/auditor")
	assert.Equal(t, "/bodeguero", pages[0])
}

func TestPage_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token t", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/jefe-bodega/mermas-pendientes/":
			_, _ = io.WriteString(w, `{"success": true, "mermas_pendientes": [{"id": 4, "estado": "Pendiente", "valor_total_merma": 1500}]}`)
		case "/api/admin/mermas/comparacion-mensual/":
			_, _ = io.WriteString(w, `{"meses": []}`)
		case "/api/data/categorias-merma/":
			_, _ = io.WriteString(w, `[{"id": 1, "nombre": "Vencimiento"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := session.Open(session.NewMemoryStorage())
	loginAs(t, store, session.RoleSupervisor)

	nop := zerolog.Nop()
	cfg := api.DefaultConfig()
	cfg.BaseURL = srv.URL + "/api/"
	cfg.Logger = &nop
	client, err := api.NewClient(cfg, store)
	require.NoError(t, err)

	router := NewRouter(store, Sections()...)
	ctx := context.Background()

	outcome, err := router.Navigate("/jefebodega/RegistrosMermas")
	require.NoError(t, err)
	require.True(t, outcome.Allowed())

	loaded, err := outcome.View().Load(ctx, client)
	require.NoError(t, err)
	pending, ok := loaded.([]api.PendingShrinkage)
	require.True(t, ok)
	require.Len(t, pending, 1)
	assert.Equal(t, 4, pending[0].ID)

	outcome, err = router.Navigate("/jefebodega/ComparacionMermas")
	require.NoError(t, err)

	loaded, err = outcome.View().Load(ctx, client)
	require.NoError(t, err)
	out, err := json.Marshal(loaded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mensual": {"meses": []}, "categorias": [{"id": 1, "nombre": "Vencimiento"}]}`, string(out))
}
