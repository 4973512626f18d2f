package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/notesphere/cli/internal/client/api"
	"github.com/notesphere/cli/internal/client/config"
	"github.com/notesphere/cli/internal/client/credstore"
	"github.com/notesphere/cli/internal/client/services"
	"github.com/notesphere/cli/internal/client/state"
	"github.com/notesphere/cli/internal/filex"
	"github.com/notesphere/cli/internal/logging"
)

// App wires the services behind the REPL. The credential store is the only
// shared mutable state; it is created here once and injected everywhere.
type App struct {
	config  *config.Config
	auth    services.AuthService
	notes   services.NoteService
	profile services.ProfileService
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logging.NewDefault()

	store, err := credstore.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	staging, err := filex.EnsureSubDir(cfg.DataDir, "staging")
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.BaseURL, cfg.RequestTimeout, store, log)
	feed := state.NewFeed()

	return &App{
		config:  cfg,
		auth:    services.NewAuthService(apiClient, store, cfg.TokenTTL, log),
		notes:   services.NewNoteService(apiClient, feed, staging, log),
		profile: services.NewProfileService(apiClient, store, log),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		log:     log,
	}, nil
}

// status renders the prompt decoration, e.g. "(alice) " when logged in.
func (a *App) status() string {
	if u := a.auth.CurrentUser(); u != nil {
		return "(" + u.Username + ") "
	}
	return ""
}
