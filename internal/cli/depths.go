package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/planner"
)

// depthsCommand creates the depths command.
func (c *CLI) depthsCommand() *cobra.Command {
	var (
		columns int
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "depths [layout.json]",
		Short: "Compute the column depths of a layout",
		Long: `Compute the column depths of a layout.

The input is either a dashboard JSON document or a JSON array of rectangles
({"x","y","w","h"}). Without an argument, or with "-", the layout is read from
stdin. Each column's depth is the lowest bottom edge of any widget covering it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runDepths(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), path, columns, asJSON, noCache)
		},
	}

	cmd.Flags().IntVar(&columns, "columns", 0, "grid columns (default: from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the depths as a JSON array")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runDepths(ctx context.Context, in io.Reader, out io.Writer, path string, columns int, asJSON, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if columns > 0 {
		cfg.Grid.Columns = columns
		cfg.Grid.WidgetWidth = min(cfg.Grid.WidgetWidth, columns)
	}

	d, err := readDashboard(path, in)
	if err != nil {
		return err
	}

	ch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := planner.NewRunner(cfg.Grid, nil, ch, nil, logger)
	defer runner.Close()

	depths, cached, err := runner.DepthsWithCacheInfo(ctx, d.Rects())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Computed depths of %d widgets", len(d.Rects())))

	if asJSON {
		return json.NewEncoder(out).Encode(depths)
	}
	printDepths(out, depths, cached)
	return nil
}
