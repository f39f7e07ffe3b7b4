// Package cli implements the interactive Tastebook shell: a small REPL over
// the API client and the resource stores.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"time"

	"github.com/mvolkov/tastebook/internal/client/api"
	"github.com/mvolkov/tastebook/internal/client/config"
	"github.com/mvolkov/tastebook/internal/client/db"
	"github.com/mvolkov/tastebook/internal/client/repositories/favorites"
	"github.com/mvolkov/tastebook/internal/client/session"
	"github.com/mvolkov/tastebook/internal/client/store"
	"github.com/mvolkov/tastebook/internal/cryptox"
	"github.com/mvolkov/tastebook/internal/logging"
)

type App struct {
	cfg      *config.Config
	log      logging.Logger
	api      api.Client
	sessions *session.Manager

	cookbooks   *store.CookbookStore
	recipes     *store.RecipeStore
	members     *store.MembershipStore
	invitations *store.InvitationStore

	database *sql.DB
	reader   *bufio.Reader
	out      io.Writer

	email    string
	loggedIn bool

	cookbookPage int
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	database, err := db.Open(ctx, cfg.VaultPath)
	if err != nil {
		return nil, err
	}

	masterKey, err := cryptox.LoadOrCreateKeyFile(cfg.KeyPath)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	vaultKey, err := cryptox.DeriveKey(masterKey, "vault")
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	sessions := session.NewManager(database, vaultKey)
	client := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, sessions, log)
	favRepo := favorites.NewSQLiteRepository(database)

	app := &App{
		cfg:          cfg,
		log:          log,
		api:          client,
		sessions:     sessions,
		cookbooks:    store.NewCookbookStore(client, favRepo, cfg.PageSize, log),
		recipes:      store.NewRecipeStore(client, cfg.PageSize, log),
		members:      store.NewMembershipStore(client, cfg.PageSize, log),
		invitations:  store.NewInvitationStore(client, cfg.PageSize, log),
		database:     database,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		cookbookPage: 1,
	}
	client.OnSessionExpired(app.onSessionExpired)
	return app, nil
}

// onSessionExpired is wired into the API client: a failed token refresh
// logs the user out locally.
func (a *App) onSessionExpired() {
	ctx := context.Background()
	a.log.Warn(ctx, "session expired, logging out")
	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
	}
	a.loggedIn = false
	a.email = ""
}

func (a *App) Close() error {
	return a.database.Close()
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.restoreSession(ctx)
	if err := a.cookbooks.LoadFavorites(ctx); err != nil {
		a.log.Warn(ctx, "failed to load favorites", "error", err)
	}
	a.Root(ctx)
}

// restoreSession picks up a persisted login from the vault. An expired
// access token is fine; the first authorized request refreshes it.
func (a *App) restoreSession(ctx context.Context) {
	s, err := a.sessions.Current(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to restore session", "error", err)
		return
	}
	if s == nil {
		return
	}
	a.loggedIn = true
	a.email, _ = a.sessions.Email(ctx)
	if s.Expired(time.Now()) {
		a.log.Info(ctx, "stored access token expired, will refresh on first request")
	}
}
