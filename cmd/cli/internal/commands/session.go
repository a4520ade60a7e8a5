package commands

import (
	"context"
	"fmt"
	"strings"
)

type LoginCmd struct {
	Rut      string `help:"RUT of the user" required:""`
	Password string `help:"Password" required:"" env:"INVENTARIO_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, strings.TrimSpace(l.Rut), l.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := a.store.Login(resp.Credentials()); err != nil {
		a.logger.Warn().Err(err).Msg("session will not survive a restart")
	}

	cur := a.store.Current()
	fmt.Fprintf(a.out, "Bienvenido %s (%s)\n", cur.DisplayName(), cur.Role)
	fmt.Fprintln(a.out, a.router.Home())
	return nil
}

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	if a.store.Current().Authenticated() {
		if err := a.client.Logout(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("backend logout failed")
		}
	}

	if err := a.store.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := a.client.ClearCache(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Sesión cerrada")
	return nil
}

type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	cur := a.store.Current()
	if !cur.Authenticated() {
		fmt.Fprintln(a.out, "No autenticado")
		return nil
	}

	fmt.Fprintf(a.out, "%s\t%s\t%s\n", cur.DisplayName(), cur.Role, a.router.Home())
	return nil
}

type OpenCmd struct {
	Path string `arg:"" help:"Page path, for example /bodeguero/IngresarProducto"`
}

func (o *OpenCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	page, err := a.authorize(o.Path)
	if err != nil {
		return err
	}

	view := map[string]any{"path": page.Path, "title": page.Title}
	if page.Load != nil {
		data, err := page.Load(ctx, a.client)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", page.Path, err)
		}
		view["data"] = data
	}

	return a.printJSON(view)
}

type PagesCmd struct{}

func (p *PagesCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := globals.open()
	if err != nil {
		return err
	}

	for _, path := range a.router.Pages() {
		if _, err := a.authorize(path); err == nil {
			fmt.Fprintln(a.out, path)
		}
	}
	return nil
}
