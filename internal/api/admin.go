package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Resource is an administrator-managed catalogue.
type Resource string

const (
	Users     Resource = "usuarios"
	Products  Resource = "productos"
	Suppliers Resource = "proveedores"
	Clients   Resource = "clientes"
	Drivers   Resource = "conductores"
)

type resourceRoutes struct {
	register  string
	toggle    string
	editable  bool
	deletable bool
	listable  bool
}

var resources = map[Resource]resourceRoutes{
	Users:     {register: "registrar", toggle: http.MethodPost, deletable: true, listable: true},
	Products:  {register: "crear", toggle: http.MethodPost, editable: true, deletable: true},
	Suppliers: {register: "registrar", toggle: http.MethodPut, editable: true, listable: true},
	Clients:   {register: "registrar", toggle: http.MethodPut, editable: true, listable: true},
	Drivers:   {register: "registrar", toggle: http.MethodPut, editable: true, listable: true},
}

// ParseResource resolves a catalogue name.
func ParseResource(name string) (Resource, error) {
	r := Resource(name)
	if _, ok := resources[r]; !ok {
		return "", fmt.Errorf("unknown resource %q", name)
	}
	return r, nil
}

func (r Resource) routes() (resourceRoutes, error) {
	routes, ok := resources[r]
	if !ok {
		return resourceRoutes{}, fmt.Errorf("unknown resource %q", string(r))
	}
	return routes, nil
}

// List returns the administrator view of a catalogue.
func (c *Client) List(ctx context.Context, r Resource) (json.RawMessage, error) {
	routes, err := r.routes()
	if err != nil {
		return nil, err
	}
	if !routes.listable {
		return nil, fmt.Errorf("%s cannot be listed through the admin API", r)
	}

	var raw json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("admin/%s/", r), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Register creates a catalogue entry.
func (c *Client) Register(ctx context.Context, r Resource, body any) (*Result, error) {
	routes, err := r.routes()
	if err != nil {
		return nil, err
	}

	var res Result
	if err := c.send(ctx, http.MethodPost, fmt.Sprintf("admin/%s/%s/", r, routes.register), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RegisterUser creates a user who completes registration through SetPassword.
func (c *Client) RegisterUser(ctx context.Context, u NewUser) (*Result, error) {
	return c.Register(ctx, Users, u)
}

// Edit updates a catalogue entry.
func (c *Client) Edit(ctx context.Context, r Resource, id int, body any) (*Result, error) {
	routes, err := r.routes()
	if err != nil {
		return nil, err
	}
	if !routes.editable {
		return nil, fmt.Errorf("%s cannot be edited", r)
	}

	var res Result
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("admin/%s/%d/editar/", r, id), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetActive activates or deactivates a catalogue entry.
func (c *Client) SetActive(ctx context.Context, r Resource, id int, active bool) (*Result, error) {
	routes, err := r.routes()
	if err != nil {
		return nil, err
	}

	action := "desactivar"
	if active {
		action = "activar"
	}

	var res Result
	if err := c.send(ctx, routes.toggle, fmt.Sprintf("admin/%s/%d/%s/", r, id, action), struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes a catalogue entry.
func (c *Client) Delete(ctx context.Context, r Resource, id int) (*Result, error) {
	routes, err := r.routes()
	if err != nil {
		return nil, err
	}
	if !routes.deletable {
		return nil, fmt.Errorf("%s cannot be deleted", r)
	}
	return c.remove(ctx, fmt.Sprintf("admin/%s/%d/eliminar/", r, id))
}

// Movement is a recorded stock movement.
type Movement string

const (
	IncomingMovement  Movement = "ingresos"
	OutgoingMovement  Movement = "salidas"
	ShrinkageMovement Movement = "mermas"
)

// ParseMovement resolves a movement name.
func ParseMovement(name string) (Movement, error) {
	switch m := Movement(name); m {
	case IncomingMovement, OutgoingMovement, ShrinkageMovement:
		return m, nil
	}
	return "", fmt.Errorf("unknown movement %q", name)
}

// DeleteMovement removes a recorded ingreso, salida or merma.
func (c *Client) DeleteMovement(ctx context.Context, m Movement, id int) (*Result, error) {
	if _, err := ParseMovement(string(m)); err != nil {
		return nil, err
	}
	return c.remove(ctx, fmt.Sprintf("admin/%s/%d/eliminar/", m, id))
}

func (c *Client) StockRules(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "admin/stocks-minimos/", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) CreateStockRule(ctx context.Context, body any) (*Result, error) {
	var res Result
	if err := c.send(ctx, http.MethodPost, "admin/stocks-minimos/crear/", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) EditStockRule(ctx context.Context, id int, body any) (*Result, error) {
	var res Result
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("admin/stocks-minimos/%d/editar/", id), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteStockRule(ctx context.Context, id int) (*Result, error) {
	return c.remove(ctx, fmt.Sprintf("admin/stocks-minimos/%d/eliminar/", id))
}

// MonthlyShrinkage compares merma totals month by month. Zero year means the current year.
func (c *Client) MonthlyShrinkage(ctx context.Context, year int) (json.RawMessage, error) {
	query := url.Values{}
	if year > 0 {
		query.Set("year", strconv.Itoa(year))
	}

	var raw json.RawMessage
	if err := c.get(ctx, "admin/mermas/comparacion-mensual/", query, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CategoryShrinkage compares merma totals between two merma categories.
func (c *Client) CategoryShrinkage(ctx context.Context, first, second int) (json.RawMessage, error) {
	query := url.Values{}
	if first > 0 {
		query.Set("categoria1", strconv.Itoa(first))
	}
	if second > 0 {
		query.Set("categoria2", strconv.Itoa(second))
	}

	var raw json.RawMessage
	if err := c.get(ctx, "admin/mermas/comparacion-categorias/", query, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// BlockchainHistory returns ledger entries, for one product when productID is positive.
func (c *Client) BlockchainHistory(ctx context.Context, productID int) (json.RawMessage, error) {
	path := "blockchain/historial/"
	if productID > 0 {
		path = fmt.Sprintf("blockchain/historial/%d/", productID)
	}

	var raw json.RawMessage
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) remove(ctx context.Context, path string) (*Result, error) {
	var res Result
	if err := c.send(ctx, http.MethodDelete, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
