package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		columns int
		mobile  bool
	)

	cmd := &cobra.Command{
		Use:   "preview [dashboard.json]",
		Short: "Draw a dashboard layout in the terminal",
		Long: `Draw a dashboard layout in the terminal.

Widgets without a layout are placed first, the same way the server places
them. Each grid cell shows the letter of the widget covering it; the legend
below the grid maps letters to widgets. --mobile draws the single-column
layout used on narrow screens.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runPreview(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), path, columns, mobile)
		},
	}

	cmd.Flags().IntVar(&columns, "columns", 0, "grid columns (default: from config)")
	cmd.Flags().BoolVar(&mobile, "mobile", false, "draw the mobile layout")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, in io.Reader, out io.Writer, path string, columns int, mobile bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	g := cfg.Grid
	if columns > 0 {
		g = grid.Grid{Columns: columns, WidgetWidth: min(g.WidgetWidth, columns)}
	}

	d, err := readDashboard(path, in)
	if err != nil {
		return err
	}
	depths, err := g.Depths(d.Rects())
	if err != nil {
		return err
	}
	widgets, _ := dashboard.AssignDefaultLayout(d.Widgets, depths, g)

	cols := g.Columns
	if mobile {
		widgets = dashboard.MobileLayout(widgets)
		cols = grid.MobileColumns
	}
	prog.done(fmt.Sprintf("Laid out %d widgets", len(widgets)))

	if d.Title != "" {
		fmt.Fprintln(out, StyleTitle.Render(d.Title))
	}
	fmt.Fprintln(out, renderGrid(widgets, cols))
	fmt.Fprint(out, renderLegend(widgets))
	return nil
}

// =============================================================================
// Rendering
// =============================================================================

// cellWidth is the number of terminal columns per grid column.
const cellWidth = 4

// maxPreviewRows bounds the number of grid rows drawn.
const maxPreviewRows = 200

// widgetLabel is the single-character label of the i-th widget.
func widgetLabel(i int) string {
	switch {
	case i < 26:
		return string(rune('A' + i))
	case i < 52:
		return string(rune('a' + i - 26))
	default:
		return "#"
	}
}

func widgetStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(widgetColors[i%len(widgetColors)])
}

// renderGrid draws placed widgets on a columns-wide grid, one text line per
// grid row. Later widgets win where layouts overlap.
func renderGrid(widgets []dashboard.Widget, columns int) string {
	height := 0
	for _, w := range widgets {
		if w.Layout != nil {
			height = max(height, w.Layout.Bottom())
		}
	}
	if height == 0 || columns < 1 {
		return StyleDim.Render("(empty)")
	}

	hidden := 0
	if height > maxPreviewRows {
		hidden = height - maxPreviewRows
		height = maxPreviewRows
	}

	cells := make([][]int, height)
	for y := range cells {
		cells[y] = make([]int, columns)
		for x := range cells[y] {
			cells[y][x] = -1
		}
	}
	for i, w := range widgets {
		r := w.Layout
		if r == nil {
			continue
		}
		for y := max(r.Y, 0); y < min(r.Bottom(), height); y++ {
			for x := max(r.X, 0); x < min(r.Right(), columns); x++ {
				cells[y][x] = i
			}
		}
	}

	pad := strings.Repeat(" ", cellWidth-2)
	var b strings.Builder
	for y, row := range cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, i := range row {
			if i < 0 {
				b.WriteString(StyleDim.Render(" ·" + pad))
				continue
			}
			b.WriteString(widgetStyle(i).Render(" " + widgetLabel(i) + pad))
		}
	}
	if hidden > 0 {
		b.WriteByte('\n')
		b.WriteString(StyleDim.Render(fmt.Sprintf("... %d more rows", hidden)))
	}
	return b.String()
}

// renderLegend lists each widget with its label, title and rectangle.
func renderLegend(widgets []dashboard.Widget) string {
	var b strings.Builder
	for i, w := range widgets {
		where := "unplaced"
		if r := w.Layout; r != nil {
			where = fmt.Sprintf("%dx%d @ (%d, %d)", r.W, r.H, r.X, r.Y)
		}
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			widgetStyle(i).Render(widgetLabel(i)),
			StyleValue.Render(w.Title),
			StyleDim.Render(string(w.DisplayType)),
			StyleDim.Render(where))
	}
	return b.String()
}
