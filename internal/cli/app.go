package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/stringvault/internal/cachestore"
	"github.com/roach88/stringvault/internal/config"
	"github.com/roach88/stringvault/internal/kvstore"
	"github.com/roach88/stringvault/internal/memstore"
	"github.com/roach88/stringvault/internal/record"
	"github.com/roach88/stringvault/internal/service"
	"github.com/roach88/stringvault/internal/store"
)

// app bundles what a command needs to talk to the store.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  record.Store
	svc    *service.Service
}

// loadConfig reads the config file and environment, then applies the
// --db and --driver overrides with the highest precedence.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	v := viper.New()
	if o.Database != "" {
		v.Set("store.path", o.Database)
	}
	if o.Driver != "" {
		v.Set("store.driver", o.Driver)
	}
	return config.LoadFrom(v, o.ConfigFile)
}

// newLogger builds the command logger on w. Verbose forces debug.
// Quiet raises the floor to warn so one-shot commands only print results.
func (o *RootOptions) newLogger(cfg *config.Config, w io.Writer, quiet bool) *slog.Logger {
	lc := cfg.Log
	switch {
	case o.Verbose:
		lc.Level = "debug"
	case quiet && lc.SlogLevel() < slog.LevelWarn:
		lc.Level = "warn"
	}
	return lc.NewLogger(w)
}

// openApp loads config, opens the configured store and builds the service.
// Failures are reported through f and returned as command errors.
func (o *RootOptions) openApp(cmd *cobra.Command, f *OutputFormatter, quiet bool) (*app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, reportCommandError(f, CodeConfig, "invalid configuration", err)
	}

	logger := o.newLogger(cfg, cmd.ErrOrStderr(), quiet)

	st, err := openStore(cfg.Store, logger)
	if err != nil {
		return nil, reportCommandError(f, CodeStoreOpen, "failed to open store", err)
	}
	logger.Debug("store ready", "driver", cfg.Store.Driver, "path", cfg.Store.Path, "cache_size", cfg.Store.CacheSize)

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  st,
		svc:    service.New(st, service.WithLogger(logger)),
	}, nil
}

// Close closes the store, logging rather than failing the command.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing store", "error", err)
	}
}

// openStore opens the backend named by cfg.Driver and wraps it in an LRU
// cache when CacheSize is positive.
func openStore(cfg config.StoreConfig, logger *slog.Logger) (record.Store, error) {
	var (
		st  record.Store
		err error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		st, err = store.Open(cfg.Path)
	case config.DriverBadger:
		st, err = kvstore.Open(kvstore.Options{Dir: cfg.Path, Logger: logger})
	case config.DriverMemory:
		st = memstore.New()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheSize <= 0 {
		return st, nil
	}
	cached, err := cachestore.New(st, cfg.CacheSize)
	if err != nil {
		return nil, errors.Join(err, st.Close())
	}
	return cached, nil
}
