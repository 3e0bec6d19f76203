// Package cli is the terminal front end. It wires the config, local
// cache, REST client and stores together and exposes one cobra command
// per user-facing operation. Commands read state from the stores and
// print the notifications the stores emit.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odysseyhq/odyssey-cli/internal/client/api"
	"github.com/odysseyhq/odyssey-cli/internal/client/cache"
	"github.com/odysseyhq/odyssey-cli/internal/client/config"
	"github.com/odysseyhq/odyssey-cli/internal/client/geocode"
	"github.com/odysseyhq/odyssey-cli/internal/client/notify"
	"github.com/odysseyhq/odyssey-cli/internal/client/stores"
	"github.com/odysseyhq/odyssey-cli/internal/logging"
)

// App owns every long-lived component of the CLI. It is built once per
// invocation, before the selected command runs.
type App struct {
	cfg      *config.Config
	log      logging.Logger
	repos    *cache.Repositories
	api      api.Client
	hub      *notify.Hub
	session  *stores.SessionStore
	journals *stores.JournalStore
	geocoder *geocode.Client

	in  *bufio.Reader
	out io.Writer
}

// NewApp wires an App from resolved configuration. The cache database is
// opened (and created on first run), the persisted session is restored,
// and the cached journal snapshot is loaded so read commands have data
// before their first refresh.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	if dir := filepath.Dir(cfg.CachePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	repos, err := cache.InitDatabase(ctx, cfg.CachePath)
	if err != nil {
		return nil, err
	}

	client := api.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout, log)
	hub := notify.NewHub(0)
	session := stores.NewSessionStore(client, hub, repos.Metadata, log)
	journals := stores.NewJournalStore(client, session, hub, repos.Journals, log)

	app := &App{
		cfg:      cfg,
		log:      log,
		repos:    repos,
		api:      client,
		hub:      hub,
		session:  session,
		journals: journals,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	if cfg.GeocoderAPIKey != "" {
		app.geocoder = geocode.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey, cfg.RequestTimeout, log)
	}

	session.Bootstrap(ctx)
	if err := journals.LoadCached(ctx); err != nil {
		log.Warn(ctx, "could not load cached journals", "error", err)
	}
	return app, nil
}

// Close releases the cache database.
func (a *App) Close() error {
	if a.repos == nil {
		return nil
	}
	return a.repos.Close()
}

// Execute parses arguments, runs the selected command and prints any
// notifications the stores emitted along the way.
func Execute(ctx context.Context) error {
	app := &App{}
	var cfgPath string

	root := &cobra.Command{
		Use:           "odyssey",
		Version:       Version,
		Short:         "Travel journal client",
		Long:          "Odyssey keeps your travel journals: write entries, attach places and photos, and browse what other travellers share.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to a JSON config file")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return err
		}
		built, err := NewApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		*app = *built
		return nil
	}

	root.AddCommand(
		app.loginCmd(),
		app.registerCmd(),
		app.logoutCmd(),
		app.whoamiCmd(),
		app.profileCmd(),
		app.listCmd(),
		app.showCmd(),
		app.createCmd(),
		app.editCmd(),
		app.deleteCmd(),
		app.commentCmd(),
		app.uncommentCmd(),
		app.reactCmd(),
		app.unreactCmd(),
		app.uploadCmd(),
		app.exploreCmd(),
		app.timelineCmd(),
		app.mapCmd(),
		app.locateCmd(),
	)

	err := root.ExecuteContext(ctx)
	app.flushNotifications()
	if closeErr := app.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// flushNotifications drains the hub and prints each message, errors
// prefixed so they stand out in scripts.
func (a *App) flushNotifications() {
	if a.hub == nil {
		return
	}
	for _, n := range a.hub.Drain() {
		if n.Severity == notify.SeverityError {
			fmt.Fprintln(a.out, "!", n.Message)
		} else {
			fmt.Fprintln(a.out, "*", n.Message)
		}
	}
}
