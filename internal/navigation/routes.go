package navigation

import (
	"context"

	"github.com/wolfeidau/inventario/internal/api"
	"github.com/wolfeidau/inventario/internal/guard"
)

// Sections returns the application's route table.
func Sections() []Section {
	return []Section{
		{
			Prefix: "/bodeguero",
			Guard:  guard.WarehouseStaff,
			Pages: map[string]Page{
				"":                 {Title: "Bodeguero", Load: data(api.InventoryData)},
				"IngresarProducto": {Title: "Ingresar producto", Load: dataSet(api.ProductsData, api.SuppliersData)},
				"SalidaProducto":   {Title: "Salida de producto", Load: dataSet(api.ClientsData, api.LotsData)},
				"RegistrarMerma":   {Title: "Registrar merma", Load: dataSet(api.ShrinkageCategories, api.LotsData)},
			},
		},
		{
			Prefix: "/jefebodega",
			Guard:  guard.Supervisor,
			Pages: map[string]Page{
				"":                  {Title: "Jefe de bodega", Load: data(api.InventoryData)},
				"IngresarProducto":  {Title: "Ingresar producto", Load: dataSet(api.ProductsData, api.SuppliersData)},
				"SalidaProducto":    {Title: "Salida de producto", Load: dataSet(api.ClientsData, api.LotsData)},
				"RegistrarMerma":    {Title: "Registrar merma", Load: dataSet(api.ShrinkageCategories, api.LotsData)},
				"RegistrosMermas":   {Title: "Mermas pendientes", Load: pendingShrinkage},
				"RegistroMermas":    {Title: "Registro de mermas", Load: data(api.ShrinkageData)},
				"ComparacionMermas": {Title: "Comparación de mermas", Load: shrinkageComparison},
			},
		},
		{
			Prefix: "/administrador",
			Guard:  guard.Administrator,
			Pages: map[string]Page{
				"":                  {Title: "Administrador", Load: data(api.InventoryData)},
				"Usuarios":          {Title: "Usuarios", Load: data(api.UsersData)},
				"Ingresos":          {Title: "Ingresos", Load: data(api.IncomingData)},
				"Salidas":           {Title: "Salidas", Load: data(api.OutgoingData)},
				"Mermas":            {Title: "Mermas", Load: data(api.ShrinkageData)},
				"Productos":         {Title: "Productos", Load: dataSet(api.ProductsAdminData, api.UnitsData, api.CategoriesData)},
				"Proveedores":       {Title: "Proveedores", Load: list(api.Suppliers)},
				"Clientes":          {Title: "Clientes", Load: list(api.Clients)},
				"Conductores":       {Title: "Conductores", Load: list(api.Drivers)},
				"ReglasStock":       {Title: "Reglas de stock", Load: stockRules},
				"ComparacionMermas": {Title: "Comparación de mermas", Load: shrinkageComparison},
				"Blockchain":        {Title: "Blockchain", Load: blockchain},
			},
		},
		{
			// cargo 3 has no dedicated guard; any authenticated session reaches the auditor dashboard.
			Prefix: "/auditor",
			Guard:  guard.Authenticated,
			Pages: map[string]Page{
				"": {Title: "Dashboard general"},
			},
		},
	}
}

func data(name api.Collection) LoadFunc {
	return func(ctx context.Context, c *api.Client) (any, error) {
		return c.Data(ctx, name)
	}
}

func dataSet(names ...api.Collection) LoadFunc {
	return func(ctx context.Context, c *api.Client) (any, error) {
		return c.DataSet(ctx, names...)
	}
}

func list(r api.Resource) LoadFunc {
	return func(ctx context.Context, c *api.Client) (any, error) {
		return c.List(ctx, r)
	}
}

func pendingShrinkage(ctx context.Context, c *api.Client) (any, error) {
	return c.PendingShrinkage(ctx)
}

func stockRules(ctx context.Context, c *api.Client) (any, error) {
	return c.StockRules(ctx)
}

func blockchain(ctx context.Context, c *api.Client) (any, error) {
	return c.BlockchainHistory(ctx, 0)
}

func shrinkageComparison(ctx context.Context, c *api.Client) (any, error) {
	monthly, err := c.MonthlyShrinkage(ctx, 0)
	if err != nil {
		return nil, err
	}
	categories, err := c.Data(ctx, api.ShrinkageCategories)
	if err != nil {
		return nil, err
	}
	return map[string]any{"mensual": monthly, "categorias": categories}, nil
}
