package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/api"
	"github.com/matzehuels/dashgrid/pkg/config"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard layout HTTP API",
		Long: `Run the dashboard layout HTTP API.

The store and cache backends come from the config file. The server stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config, "+config.DefaultAddr+")")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	// The config may lower the level; --verbose still wins.
	if lvl, err := cfg.LogLevel(); err == nil && lvl < c.Logger.GetLevel() {
		c.SetLogLevel(lvl)
	}

	runner, err := c.newRunner(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	if fs, ok := runner.Store.(*store.FileStore); ok {
		c.Logger.Debug("file store", "path", fs.Path())
	}

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPlacementHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	c.Logger.Info("starting server",
		"store", cfg.Store.Backend,
		"cache", cfg.Cache.Backend,
		"columns", cfg.Grid.Columns)

	return api.NewServer(runner, c.Logger).ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout.Duration)
}
