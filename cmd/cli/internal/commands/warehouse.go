package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/inventario/internal/api"
)

// Stock movements are open to warehouse staff and supervisors; the first
// section the session may enter is used.

type IncomingCmd struct {
	File string `help:"YAML/JSON payload file" required:"" type:"existingfile"`
}

func (c *IncomingCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize("/bodeguero/IngresarProducto", "/jefebodega/IngresarProducto"); err != nil {
		return err
	}

	var in api.Incoming
	if err := loadPayload(c.File, &in); err != nil {
		return err
	}

	res, err := a.client.RegisterIncoming(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to register ingreso: %w", err)
	}

	a.printResult(res, "Ingreso registrado")
	return nil
}

type OutgoingCmd struct {
	File string `help:"YAML/JSON payload file" required:"" type:"existingfile"`
}

func (c *OutgoingCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize("/bodeguero/SalidaProducto", "/jefebodega/SalidaProducto"); err != nil {
		return err
	}

	var out api.Outgoing
	if err := loadPayload(c.File, &out); err != nil {
		return err
	}

	res, err := a.client.RegisterOutgoing(ctx, out)
	if err != nil {
		return fmt.Errorf("failed to register salida: %w", err)
	}

	a.printResult(res, "Salida registrada")
	return nil
}

type ShrinkageCmd struct {
	File string `help:"YAML/JSON payload file" required:"" type:"existingfile"`
}

func (c *ShrinkageCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize("/bodeguero/RegistrarMerma", "/jefebodega/RegistrarMerma"); err != nil {
		return err
	}

	m, err := loadShrinkage(c.File)
	if err != nil {
		return err
	}

	res, err := a.client.RegisterShrinkage(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to register merma: %w", err)
	}

	a.printResult(res, "Merma registrada, pendiente de aprobación")
	return nil
}

func loadShrinkage(path string) (api.Shrinkage, error) {
	var m api.Shrinkage
	err := loadPayload(path, &m)
	return m, err
}
