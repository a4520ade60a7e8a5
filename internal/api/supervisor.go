package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PendingShrinkage lists mermas awaiting approval in the supervisor's warehouse.
func (c *Client) PendingShrinkage(ctx context.Context) ([]PendingShrinkage, error) {
	var resp struct {
		Pending []PendingShrinkage `json:"mermas_pendientes"`
	}
	if err := c.get(ctx, "jefe-bodega/mermas-pendientes/", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list pending mermas: %w", err)
	}
	return resp.Pending, nil
}

func (c *Client) ApproveShrinkage(ctx context.Context, id int) (*Result, error) {
	var res Result
	if err := c.send(ctx, http.MethodPost, fmt.Sprintf("jefe-bodega/aprobar-merma/%d/", id), struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) RejectShrinkage(ctx context.Context, id int) (*Result, error) {
	var res Result
	if err := c.send(ctx, http.MethodPost, fmt.Sprintf("jefe-bodega/rechazar-merma/%d/", id), struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RegisterApprovedShrinkage records a merma that needs no separate approval.
func (c *Client) RegisterApprovedShrinkage(ctx context.Context, m Shrinkage) (*Result, error) {
	var res Result
	if err := c.send(ctx, http.MethodPost, "jefe-bodega/registrar-merma-aprobada/", m, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) InventoryReport(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "jefe-bodega/reporte-inventario/", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
