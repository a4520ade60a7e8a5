package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection names a read-only data/ endpoint.
type Collection string

const (
	SuppliersData       Collection = "proveedores"
	ProductsData        Collection = "productos"
	ClientsData         Collection = "clientes"
	LotsData            Collection = "lotes"
	ShrinkageCategories Collection = "categorias-merma"
	InventoryData       Collection = "inventario"
	ShrinkageData       Collection = "mermas"
	UsersData           Collection = "usuarios"
	DriversData         Collection = "conductores"
	IncomingData        Collection = "ingresos"
	OutgoingData        Collection = "salidas"
	ProductsAdminData   Collection = "productos-admin"
	UnitsData           Collection = "unidades-medida"
	CategoriesData      Collection = "categorias"
)

// Collections lists every data/ endpoint.
var Collections = []Collection{
	SuppliersData, ProductsData, ClientsData, LotsData, ShrinkageCategories,
	InventoryData, ShrinkageData, UsersData, DriversData, IncomingData,
	OutgoingData, ProductsAdminData, UnitsData, CategoriesData,
}

// Data fetches a read-only collection as returned by the backend.
func (c *Client) Data(ctx context.Context, name Collection) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("data/%s/", name), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return raw, nil
}

// DataSet fetches several collections, keyed by name.
func (c *Client) DataSet(ctx context.Context, names ...Collection) (map[Collection]json.RawMessage, error) {
	out := make(map[Collection]json.RawMessage, len(names))
	for _, name := range names {
		raw, err := c.Data(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = raw
	}
	return out, nil
}
