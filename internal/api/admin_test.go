package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/inventario/internal/session"
)

func TestClient_analytics(t *testing.T) {
	srv, rec := newRecorder(t, `{"success": true, "datos": [1, 2]}`)
	client := newTestClient(t, srv, loggedIn(t, "abc", session.RoleAdministrator))
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (json.RawMessage, error)
		want capturedRequest
	}{
		{
			name: "monthly comparison for the current year",
			call: func() (json.RawMessage, error) { return client.MonthlyShrinkage(ctx, 0) },
			want: capturedRequest{Path: "/api/admin/mermas/comparacion-mensual/"},
		},
		{
			name: "monthly comparison for a given year",
			call: func() (json.RawMessage, error) { return client.MonthlyShrinkage(ctx, 2024) },
			want: capturedRequest{Path: "/api/admin/mermas/comparacion-mensual/", Query: "year=2024"},
		},
		{
			name: "category comparison",
			call: func() (json.RawMessage, error) { return client.CategoryShrinkage(ctx, 1, 3) },
			want: capturedRequest{Path: "/api/admin/mermas/comparacion-categorias/", Query: "categoria1=1&categoria2=3"},
		},
		{
			name: "full blockchain history",
			call: func() (json.RawMessage, error) { return client.BlockchainHistory(ctx, 0) },
			want: capturedRequest{Path: "/api/blockchain/historial/"},
		},
		{
			name: "blockchain history of one product",
			call: func() (json.RawMessage, error) { return client.BlockchainHistory(ctx, 42) },
			want: capturedRequest{Path: "/api/blockchain/historial/42/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.call()
			require.NoError(t, err)
			assert.JSONEq(t, `{"success": true, "datos": [1, 2]}`, string(raw))

			tt.want.Method = http.MethodGet
			tt.want.Authorization = "Token abc"
			assert.Equal(t, tt.want, rec.Last())
		})
	}
}
