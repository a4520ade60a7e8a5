package api

import (
	"context"
	"net/http"
)

// Endpoints used by warehouse staff (bodeguero).

func (c *Client) RegisterIncoming(ctx context.Context, in Incoming) (*Result, error) {
	var res Result
	if err := c.send(ctx, http.MethodPost, "bodeguero/ingreso-producto/", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) RegisterOutgoing(ctx context.Context, out Outgoing) (*Result, error) {
	var res Result
	if err := c.send(ctx, http.MethodPost, "bodeguero/salida-producto/", out, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) RegisterShrinkage(ctx context.Context, m Shrinkage) (*Result, error) {
	var res Result
	if err := c.send(ctx, http.MethodPost, "bodeguero/registro-merma/", m, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
