package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/meherkandukuri/vegtrack/internal/client/api"
	"github.com/meherkandukuri/vegtrack/internal/client/cache"
	"github.com/meherkandukuri/vegtrack/internal/client/config"
	"github.com/meherkandukuri/vegtrack/internal/client/notices"
	"github.com/meherkandukuri/vegtrack/internal/client/resolve"
	"github.com/meherkandukuri/vegtrack/internal/client/session"
	"github.com/meherkandukuri/vegtrack/internal/client/suggest"
	"github.com/meherkandukuri/vegtrack/internal/client/syncer"
	"github.com/meherkandukuri/vegtrack/internal/client/tracker"
	"github.com/meherkandukuri/vegtrack/internal/logging"
)

// App wires the client engine together behind the REPL commands.
type App struct {
	cfg    *config.Config
	db     *sql.DB
	sess   *session.Session
	client api.Client

	tracker    *tracker.Tracker
	suggester  *suggest.Suggester
	reconciler *syncer.Reconciler
	notify     *notices.Center

	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp initializes the local cache and builds the full engine. A login
// transition triggers a reconciliation pass followed by a catalog refresh, so
// offline entries reach the server without any explicit user action.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := cache.InitDatabase(ctx, cfg.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing cache database", "error", err)
		return nil, err
	}

	sess := session.New()
	notify := notices.NewCenter(cfg.NoticeTTL)

	apiClient := api.NewHTTPClient(cfg.ServerURL, sess, api.WithSessionExpiredHandler(func() {
		sess.Clear()
		notify.Failuref("Session expired, please log in again")
	}))

	store := cache.NewSQLiteStore(db, log)
	resolver := resolve.New(apiClient, log)
	tr := tracker.New(ctx, apiClient, sess, store, resolver, notify, log)
	rec := syncer.New(resolver, apiClient, tr, notify, log)

	sess.OnAuthenticated(func() {
		rec.Trigger(ctx)
		_ = tr.Refresh(ctx)
	})

	return &App{
		cfg:        cfg,
		db:         db,
		sess:       sess,
		client:     apiClient,
		tracker:    tr,
		suggester:  suggest.New(apiClient, log, suggest.WithDelay(cfg.SuggestDelay)),
		reconciler: rec,
		notify:     notify,
		log:        log.With("component", "cli"),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		a.suggester.Cancel()
		_ = a.db.Close()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.sess.Authenticated()
}

func (a *App) activeNotices() []notices.Notice {
	return a.notify.Active()
}
