package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/stringvault/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Host string
	Port int
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the stringvault HTTP API.

The store is opened (and created if needed) from the configured driver and
path. The server stops gracefully on SIGINT or SIGTERM.

Example:
  stringvault serve --db ./vault.db --port 9000
  STRINGVAULT_SERVER_RATE_LIMIT_RPM=120 stringvault serve --driver badger --db ./vault`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVar(&opts.Port, "port", 0, "listen port (overrides server.port)")

	return cmd
}

func runServer(opts *ServeOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	a, err := opts.openApp(cmd, f, false)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg.Server
	if opts.Host != "" {
		cfg.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}

	srv := server.New(cfg, a.svc, a.logger)
	srv.Setup()

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			a.logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", cfg.Addr())
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop.")

	select {
	case err := <-errCh:
		if err != nil {
			return WrapExitError(ExitFailure, "server error", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer stop()
	if err := srv.Stop(shutdownCtx); err != nil {
		return WrapExitError(ExitFailure, "shutdown error", err)
	}
	if err := <-errCh; err != nil {
		return WrapExitError(ExitFailure, "server error", err)
	}

	a.logger.Info("server stopped gracefully")
	return nil
}
