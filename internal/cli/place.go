package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/planner"
)

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		depths  string
		heights []int
		width   int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Find positions for new widgets",
		Long: `Find positions for new widgets given the current column depths.

Each --height places one widget; repeat the flag to place several in order,
each seeing the depths left by the one before it. The grid is as wide as the
depth vector.

  dashgrid place --depths 1,1,0,0,1,1 --height 2
  dashgrid place --depths 0,0,0,0,0,0 --height 2 --height 1 --height 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd.Context(), cmd.OutOrStdout(), depths, heights, width, asJSON)
		},
	}

	cmd.Flags().StringVarP(&depths, "depths", "d", "", "comma-separated column depths")
	cmd.Flags().IntSliceVar(&heights, "height", []int{2}, "widget height (repeatable)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "widget width (default: from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print positions and final depths as JSON")
	_ = cmd.MarkFlagRequired("depths")

	return cmd
}

type placeOutput struct {
	Positions []grid.Position `json:"positions"`
	Depths    grid.Depths     `json:"next_depths"`
}

func (c *CLI) runPlace(ctx context.Context, out io.Writer, depthsFlag string, heights []int, width int, asJSON bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	depths, err := parseDepths(depthsFlag)
	if err != nil {
		return err
	}
	if width == 0 {
		cfg, err := c.loadConfig()
		if err != nil {
			return err
		}
		width = min(cfg.Grid.WidgetWidth, len(depths))
	}

	g := grid.Grid{Columns: len(depths), WidgetWidth: width}
	runner := planner.NewRunner(g, nil, nil, nil, logger)
	positions, next, err := runner.Sequence(ctx, depths, heights)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d widgets", len(positions)))

	if asJSON {
		return json.NewEncoder(out).Encode(placeOutput{Positions: positions, Depths: next})
	}
	for i, p := range positions {
		printPosition(out, i+1, p)
	}
	printKeyValue(out, "depths", formatDepths(next))
	return nil
}
