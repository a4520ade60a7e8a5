package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/wolfeidau/inventario/internal/api"
)

// AdminCmd groups the administrator commands.
type AdminCmd struct {
	List       AdminListCmd       `cmd:"" help:"List a catalogue"`
	Register   AdminRegisterCmd   `cmd:"" help:"Register a catalogue entry"`
	Edit       AdminEditCmd       `cmd:"" help:"Edit a catalogue entry"`
	Activate   AdminActivateCmd   `cmd:"" help:"Activate a catalogue entry"`
	Deactivate AdminDeactivateCmd `cmd:"" help:"Deactivate a catalogue entry"`
	Delete     AdminDeleteCmd     `cmd:"" help:"Delete a catalogue entry"`
	Movement   AdminMovementCmd   `cmd:"" help:"Delete a recorded ingreso, salida or merma"`
	Stock      AdminStockCmd      `cmd:"" help:"Manage minimum stock rules"`
	Compare    AdminCompareCmd    `cmd:"" help:"Compare merma totals"`
	Blockchain AdminBlockchainCmd `cmd:"" help:"Show the blockchain history"`
}

var resourcePages = map[api.Resource]string{
	api.Users:     "/administrador/Usuarios",
	api.Products:  "/administrador/Productos",
	api.Suppliers: "/administrador/Proveedores",
	api.Clients:   "/administrador/Clientes",
	api.Drivers:   "/administrador/Conductores",
}

var movementPages = map[api.Movement]string{
	api.IncomingMovement:  "/administrador/Ingresos",
	api.OutgoingMovement:  "/administrador/Salidas",
	api.ShrinkageMovement: "/administrador/Mermas",
}

// openResource authorizes the page backing resource and returns the app.
func openResource(globals *Globals, resource string) (*app, api.Resource, error) {
	r, err := api.ParseResource(resource)
	if err != nil {
		return nil, "", err
	}

	a, err := globals.open()
	if err != nil {
		return nil, "", err
	}

	if _, err := a.authorize(resourcePages[r]); err != nil {
		return nil, "", err
	}
	return a, r, nil
}

type AdminListCmd struct {
	Resource string `arg:"" enum:"usuarios,proveedores,clientes,conductores" help:"Catalogue name"`
}

func (c *AdminListCmd) Run(ctx context.Context, globals *Globals) error {
	a, r, err := openResource(globals, c.Resource)
	if err != nil {
		return err
	}

	raw, err := a.client.List(ctx, r)
	if err != nil {
		return err
	}
	return a.printJSON(raw)
}

type AdminRegisterCmd struct {
	Resource string `arg:"" enum:"usuarios,productos,proveedores,clientes,conductores" help:"Catalogue name"`
	File     string `help:"YAML/JSON payload file" required:"" type:"existingfile"`
}

func (c *AdminRegisterCmd) Run(ctx context.Context, globals *Globals) error {
	a, r, err := openResource(globals, c.Resource)
	if err != nil {
		return err
	}

	var res *api.Result
	if r == api.Users {
		var u api.NewUser
		if err := loadPayload(c.File, &u); err != nil {
			return err
		}
		res, err = a.client.RegisterUser(ctx, u)
	} else {
		var body api.Payload
		if err := loadPayload(c.File, &body); err != nil {
			return err
		}
		res, err = a.client.Register(ctx, r, body)
	}
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", r, err)
	}

	a.printResult(res, "Registro creado")
	return nil
}

type AdminEditCmd struct {
	Resource string `arg:"" enum:"productos,proveedores,clientes,conductores" help:"Catalogue name"`
	ID       int    `arg:"" help:"Entry ID"`
	File     string `help:"YAML/JSON payload file" required:"" type:"existingfile"`
}

func (c *AdminEditCmd) Run(ctx context.Context, globals *Globals) error {
	a, r, err := openResource(globals, c.Resource)
	if err != nil {
		return err
	}

	var body api.Payload
	if err := loadPayload(c.File, &body); err != nil {
		return err
	}

	res, err := a.client.Edit(ctx, r, c.ID, body)
	if err != nil {
		return fmt.Errorf("failed to edit %s %d: %w", r, c.ID, err)
	}

	a.printResult(res, "Registro actualizado")
	return nil
}

type AdminActivateCmd struct {
	Resource string `arg:"" enum:"usuarios,productos,proveedores,clientes,conductores" help:"Catalogue name"`
	ID       int    `arg:"" help:"Entry ID"`
}

func (c *AdminActivateCmd) Run(ctx context.Context, globals *Globals) error {
	return setActive(ctx, globals, c.Resource, c.ID, true)
}

type AdminDeactivateCmd struct {
	Resource string `arg:"" enum:"usuarios,productos,proveedores,clientes,conductores" help:"Catalogue name"`
	ID       int    `arg:"" help:"Entry ID"`
}

func (c *AdminDeactivateCmd) Run(ctx context.Context, globals *Globals) error {
	return setActive(ctx, globals, c.Resource, c.ID, false)
}

func setActive(ctx context.Context, globals *Globals, resource string, id int, active bool) error {
	a, r, err := openResource(globals, resource)
	if err != nil {
		return err
	}

	res, err := a.client.SetActive(ctx, r, id, active)
	if err != nil {
		return fmt.Errorf("failed to update %s %d: %w", r, id, err)
	}

	msg := "Registro desactivado"
	if active {
		msg = "Registro activado"
	}
	a.printResult(res, msg)
	return nil
}

type AdminDeleteCmd struct {
	Resource string `arg:"" enum:"usuarios,productos" help:"Catalogue name"`
	ID       int    `arg:"" help:"Entry ID"`
}

func (c *AdminDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	a, r, err := openResource(globals, c.Resource)
	if err != nil {
		return err
	}

	res, err := a.client.Delete(ctx, r, c.ID)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", r, c.ID, err)
	}

	a.printResult(res, "Registro eliminado")
	return nil
}

type AdminMovementCmd struct {
	Movement string `arg:"" enum:"ingresos,salidas,mermas" help:"Movement kind"`
	ID       int    `arg:"" help:"Movement ID"`
}

func (c *AdminMovementCmd) Run(ctx context.Context, globals *Globals) error {
	m, err := api.ParseMovement(c.Movement)
	if err != nil {
		return err
	}

	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize(movementPages[m]); err != nil {
		return err
	}

	res, err := a.client.DeleteMovement(ctx, m, c.ID)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", m, c.ID, err)
	}

	a.printResult(res, "Registro eliminado")
	return nil
}

type AdminStockCmd struct {
	List   AdminStockListCmd   `cmd:"" help:"List minimum stock rules"`
	Create AdminStockCreateCmd `cmd:"" help:"Create a minimum stock rule"`
	Edit   AdminStockEditCmd   `cmd:"" help:"Edit a minimum stock rule"`
	Delete AdminStockDeleteCmd `cmd:"" help:"Delete a minimum stock rule"`
}

const stockPage = "/administrador/ReglasStock"

func openStock(globals *Globals) (*app, error) {
	a, err := globals.open()
	if err != nil {
		return nil, err
	}
	if _, err := a.authorize(stockPage); err != nil {
		return nil, err
	}
	return a, nil
}

type AdminStockListCmd struct{}

func (c *AdminStockListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := openStock(globals)
	if err != nil {
		return err
	}

	raw, err := a.client.StockRules(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(raw)
}

type AdminStockCreateCmd struct {
	File string `help:"YAML/JSON payload file" required:"" type:"existingfile"`
}

func (c *AdminStockCreateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := openStock(globals)
	if err != nil {
		return err
	}

	var body api.Payload
	if err := loadPayload(c.File, &body); err != nil {
		return err
	}

	res, err := a.client.CreateStockRule(ctx, body)
	if err != nil {
		return fmt.Errorf("failed to create stock rule: %w", err)
	}

	a.printResult(res, "Regla creada")
	return nil
}

type AdminStockEditCmd struct {
	ID   int    `arg:"" help:"Rule ID"`
	File string `help:"YAML/JSON payload file" required:"" type:"existingfile"`
}

func (c *AdminStockEditCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := openStock(globals)
	if err != nil {
		return err
	}

	var body api.Payload
	if err := loadPayload(c.File, &body); err != nil {
		return err
	}

	res, err := a.client.EditStockRule(ctx, c.ID, body)
	if err != nil {
		return fmt.Errorf("failed to edit stock rule %d: %w", c.ID, err)
	}

	a.printResult(res, "Regla actualizada")
	return nil
}

type AdminStockDeleteCmd struct {
	ID int `arg:"" help:"Rule ID"`
}

func (c *AdminStockDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := openStock(globals)
	if err != nil {
		return err
	}

	res, err := a.client.DeleteStockRule(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to delete stock rule %d: %w", c.ID, err)
	}

	a.printResult(res, "Regla eliminada")
	return nil
}

type AdminCompareCmd struct {
	Year   int `help:"Year for the monthly comparison; the current year when zero"`
	First  int `help:"First merma category ID"`
	Second int `help:"Second merma category ID"`
}

func (c *AdminCompareCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize("/administrador/ComparacionMermas", "/jefebodega/ComparacionMermas"); err != nil {
		return err
	}

	if c.First > 0 || c.Second > 0 {
		if c.First == 0 || c.Second == 0 {
			return errors.New("both --first and --second are required to compare categories")
		}
		raw, err := a.client.CategoryShrinkage(ctx, c.First, c.Second)
		if err != nil {
			return err
		}
		return a.printJSON(raw)
	}

	raw, err := a.client.MonthlyShrinkage(ctx, c.Year)
	if err != nil {
		return err
	}
	return a.printJSON(raw)
}

type AdminBlockchainCmd struct {
	Product int `help:"Restrict the history to one product ID"`
}

func (c *AdminBlockchainCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize("/administrador/Blockchain"); err != nil {
		return err
	}

	raw, err := a.client.BlockchainHistory(ctx, c.Product)
	if err != nil {
		return err
	}
	return a.printJSON(raw)
}
