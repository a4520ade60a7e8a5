package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/wolfeidau/inventario/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login    commands.LoginCmd     `cmd:"" help:"Log in and store the session"`
		Logout   commands.LogoutCmd    `cmd:"" help:"Log out and clear the stored session"`
		Whoami   commands.WhoamiCmd    `cmd:"" help:"Show the current session"`
		Open     commands.OpenCmd      `cmd:"" help:"Open a page as the current session"`
		Pages    commands.PagesCmd     `cmd:"" help:"List the pages the current session may open"`
		Password commands.PasswordCmd  `cmd:"" help:"Password recovery and activation"`
		Ingreso  commands.IncomingCmd  `cmd:"" help:"Register received stock"`
		Salida   commands.OutgoingCmd  `cmd:"" help:"Register dispatched stock"`
		Merma    commands.ShrinkageCmd `cmd:"" help:"Register a merma for approval"`
		Jefe     commands.JefeCmd      `cmd:"" help:"Supervisor commands"`
		Admin    commands.AdminCmd     `cmd:"" help:"Administrator commands"`
		Serve    commands.ServeCmd     `cmd:"" help:"Serve the pages over a local HTTP front-end"`

		Debug      bool          `help:"Enable debug mode."`
		APIURL     string        `name:"api-url" help:"Backend API base URL" default:"http://127.0.0.1:8000/api/" env:"INVENTARIO_API_URL"`
		SessionDir string        `help:"Directory holding the stored session" env:"INVENTARIO_SESSION_DIR"`
		CacheDir   string        `help:"Dedicated directory for the HTTP response cache, removed on logout; in-memory when empty" env:"INVENTARIO_CACHE_DIR"`
		Timeout    time.Duration `help:"Backend request timeout" default:"30s" env:"INVENTARIO_TIMEOUT"`
		Ephemeral  bool          `help:"Keep the session in memory only"`
		Version    kong.VersionFlag
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("inventario-cli"),
		kong.Description("Inventory management client."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{
		Debug:      cli.Debug,
		Version:    version,
		APIURL:     cli.APIURL,
		SessionDir: cli.SessionDir,
		CacheDir:   cli.CacheDir,
		Timeout:    cli.Timeout,
		Ephemeral:  cli.Ephemeral,
	})
	cmd.FatalIfErrorf(err)
}
