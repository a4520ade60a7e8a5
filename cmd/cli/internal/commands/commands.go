package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/inventario/internal/api"
	"github.com/wolfeidau/inventario/internal/logger"
	"github.com/wolfeidau/inventario/internal/navigation"
	"github.com/wolfeidau/inventario/internal/session"
)

// ErrDenied is returned when the current session may not open a page.
var ErrDenied = errors.New("access denied")

type Globals struct {
	Debug      bool
	Version    string
	APIURL     string
	SessionDir string
	CacheDir   string
	Timeout    time.Duration
	Ephemeral  bool

	// Out receives command output; stdout when nil.
	Out io.Writer
}

type app struct {
	store  *session.Store
	client *api.Client
	router *navigation.Router
	logger zerolog.Logger
	out    io.Writer
}

func (g *Globals) open() (*app, error) {
	log := logger.Setup(g.Debug)

	var storage session.Storage = session.NewMemoryStorage()
	if !g.Ephemeral {
		fs, err := session.NewFileStorage(g.SessionDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open session storage: %w", err)
		}
		storage = fs
	}

	store := session.Open(storage)

	cfg := api.DefaultConfig()
	if g.APIURL != "" {
		cfg.BaseURL = g.APIURL
	}
	if g.Timeout > 0 {
		cfg.Timeout = g.Timeout
	}
	cfg.CacheDir = g.CacheDir
	cfg.Logger = &log

	client, err := api.NewClient(cfg, store)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	out := g.Out
	if out == nil {
		out = os.Stdout
	}

	return &app{
		store:  store,
		client: client,
		router: navigation.NewRouter(store, navigation.Sections()...),
		logger: log,
		out:    out,
	}, nil
}

// authorize returns the first of paths the current session may open.
func (a *app) authorize(paths ...string) (navigation.Page, error) {
	redirect := session.LoginPath
	for _, path := range paths {
		outcome, err := a.router.Navigate(path)
		if err != nil {
			return navigation.Page{}, err
		}
		if outcome.Allowed() {
			return outcome.View(), nil
		}
		redirect = outcome.RedirectTo()
	}

	a.logger.Debug().Strs("paths", paths).Str("role", a.store.Current().Role.String()).Msg("access denied")
	return navigation.Page{}, fmt.Errorf("%w: redirecting to %s", ErrDenied, redirect)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printResult(res *api.Result, fallback string) {
	msg := res.Message
	if msg == "" {
		msg = fallback
	}
	fmt.Fprintln(a.out, msg)
}
