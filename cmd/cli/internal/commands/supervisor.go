package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// JefeCmd groups the supervisor (jefe de bodega) commands.
type JefeCmd struct {
	Pendientes JefePendingCmd   `cmd:"" help:"List mermas awaiting approval"`
	Aprobar    JefeApproveCmd   `cmd:"" help:"Approve a pending merma"`
	Rechazar   JefeRejectCmd    `cmd:"" help:"Reject a pending merma"`
	Merma      JefeShrinkageCmd `cmd:"" help:"Register an already approved merma"`
	Reporte    JefeReportCmd    `cmd:"" help:"Show the inventory report"`
}

const pendingPage = "/jefebodega/RegistrosMermas"

type JefePendingCmd struct{}

func (c *JefePendingCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize(pendingPage); err != nil {
		return err
	}

	pending, err := a.client.PendingShrinkage(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		fmt.Fprintln(a.out, "No hay mermas pendientes")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFECHA\tCATEGORIA\tREGISTRADA POR\tPRODUCTOS\tVALOR")
	for _, m := range pending {
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%s %s\t%d\t%.0f\n",
			m.ID,
			m.Fecha, m.Hora,
			m.CategoriaMerma,
			m.UsuarioRegistro.Nombre, m.UsuarioRegistro.Apellido,
			len(m.DetallesMerma),
			m.ValorTotalMerma,
		)
	}
	return w.Flush()
}

type JefeApproveCmd struct {
	ID int `arg:"" help:"Merma ID"`
}

func (c *JefeApproveCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize(pendingPage); err != nil {
		return err
	}

	res, err := a.client.ApproveShrinkage(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to approve merma %d: %w", c.ID, err)
	}

	a.printResult(res, "Merma aprobada")
	return nil
}

type JefeRejectCmd struct {
	ID int `arg:"" help:"Merma ID"`
}

func (c *JefeRejectCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize(pendingPage); err != nil {
		return err
	}

	res, err := a.client.RejectShrinkage(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to reject merma %d: %w", c.ID, err)
	}

	a.printResult(res, "Merma rechazada")
	return nil
}

type JefeShrinkageCmd struct {
	File string `help:"YAML/JSON payload file" required:"" type:"existingfile"`
}

func (c *JefeShrinkageCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize("/jefebodega/RegistrarMerma"); err != nil {
		return err
	}

	m, err := loadShrinkage(c.File)
	if err != nil {
		return err
	}

	res, err := a.client.RegisterApprovedShrinkage(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to register merma: %w", err)
	}

	a.printResult(res, "Merma registrada y aprobada")
	return nil
}

type JefeReportCmd struct{}

func (c *JefeReportCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if _, err := a.authorize("/jefebodega"); err != nil {
		return err
	}

	report, err := a.client.InventoryReport(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(report)
}
