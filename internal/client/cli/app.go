package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/config"
	"github.com/dmitrijs2005/rentadmin/internal/client/forms"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/repositories/orphans"
	"github.com/dmitrijs2005/rentadmin/internal/client/services"
	"github.com/dmitrijs2005/rentadmin/internal/client/sources"
	"github.com/dmitrijs2005/rentadmin/internal/client/staging"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
)

// imageResolver turns img-add arguments into image sources.
type imageResolver interface {
	ResolveAll(ctx context.Context, specs []string) ([]sources.Source, error)
}

type App struct {
	config   *config.Config
	log      logging.Logger
	db       io.Closer
	store    io.Closer
	catalog  services.CatalogService
	forms    *forms.Factory
	resolver imageResolver
	scanner  *bufio.Scanner
	out      io.Writer

	tab  models.Kind
	form *forms.Form
}

// NewApp wires the ledger database, the staging store and the API client.
// When no admin password is configured it is read from stdin.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store, err := staging.NewStore(c.StagingDir)
	if err != nil {
		db.Close()
		return nil, err
	}

	reader := bufio.NewReader(os.Stdin)
	password := c.AdminPassword
	if password == "" {
		password, err = ReadCredential(reader, os.Stdout)
		if err != nil {
			store.Close()
			db.Close()
			return nil, err
		}
	}

	return newApp(c, log, db, store, password, bufio.NewScanner(reader)), nil
}

func newApp(c *config.Config, log logging.Logger, db *sql.DB, store *staging.Store, password string, scanner *bufio.Scanner) *App {
	api := client.NewAdminClient(c.APIBaseURL, password, c.RequestTimeout)
	ledger := orphans.NewSQLiteRepository(db)

	return &App{
		config:  c,
		log:     log,
		db:      db,
		store:   store,
		catalog: services.NewCatalogService(api, ledger, log),
		forms: &forms.Factory{
			API:         api,
			Stage:       store,
			Orphans:     ledger,
			CountryCode: c.CountryCode,
			Log:         log,
		},
		resolver: sources.NewResolver(sources.S3Config{
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		}),
		scanner: scanner,
		out:     os.Stdout,
		tab:     models.KindCar,
	}
}

// Run shows the first tab and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	a.log.Info(ctx, "console started", "api", a.config.APIBaseURL, "ledger", a.config.DatabasePath)
	printlnFn("rentadmin console (type 'help' for commands)")
	if err := a.List(ctx); err != nil {
		printlnFn("Error:", describe(err))
	}

	runREPL(ctx, a, a.status, a.scanner)

	return a.Close(ctx)
}

// Close abandons an open form and releases the staging store and the
// ledger database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.form != nil {
		if err := a.Cancel(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("staging: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) status() string {
	if a.form != nil {
		return fmt.Sprintf("%s | %s", a.tab, a.form.Title())
	}
	return string(a.tab)
}
