package dashboard

import (
	"slices"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// AssignDefaultLayout gives every unplaced widget a position, starting from
// depths and threading the updated vector through each placement. Widgets are
// visited in order and placed widgets are left alone. The returned slice is a
// copy; widgets and depths are not modified.
func AssignDefaultLayout(widgets []Widget, depths grid.Depths, g grid.Grid) ([]Widget, grid.Depths) {
	out := make([]Widget, len(widgets))
	next := depths.Clone()
	for i, w := range widgets {
		if w.Layout != nil {
			r := *w.Layout
			w.Layout = &r
			out[i] = w
			continue
		}
		size := grid.Size{W: g.WidgetWidth, H: DefaultWidgetHeight(w.DisplayType)}
		var pos grid.Position
		pos, next = grid.NextAvailablePosition(next, size)
		r := pos.Rect(size)
		w.Layout = &r
		out[i] = w
	}
	return out, next
}

// AddWidget places w below the dashboard's current content and appends it.
// Depths are derived fresh from the full layout. A widget that already has a
// layout is validated and appended as is.
func AddWidget(d *Dashboard, w Widget, g grid.Grid) (grid.Placement, error) {
	if w.ID == "" {
		w.ID = NewWidgetID()
	}
	if err := w.Validate(g); err != nil {
		return grid.Placement{}, err
	}
	for _, existing := range d.Widgets {
		if existing.ID == w.ID {
			return grid.Placement{}, errors.New(errors.ErrCodeInvalidWidget, "duplicate widget id %q", w.ID)
		}
	}

	if w.Layout != nil {
		d.Widgets = append(d.Widgets, w)
		return grid.Placement{Position: w.Layout.Position(), Next: d.Depths(g)}, nil
	}

	size := grid.Size{W: g.WidgetWidth, H: DefaultWidgetHeight(w.DisplayType)}
	p, err := g.PlaceSize(d.Depths(g), size)
	if err != nil {
		return grid.Placement{}, err
	}
	r := p.Position.Rect(size)
	w.Layout = &r
	d.Widgets = append(d.Widgets, w)
	return p, nil
}

// MobileLayout stacks the widgets into a single column. Widgets keep their
// desktop reading order (top to bottom, then left to right); unplaced widgets
// go last in list order. Each widget keeps its height.
func MobileLayout(widgets []Widget) []Widget {
	ordered := make([]Widget, len(widgets))
	copy(ordered, widgets)
	slices.SortStableFunc(ordered, func(a, b Widget) int {
		switch {
		case a.Layout == nil && b.Layout == nil:
			return 0
		case a.Layout == nil:
			return 1
		case b.Layout == nil:
			return -1
		case a.Layout.Y != b.Layout.Y:
			return a.Layout.Y - b.Layout.Y
		default:
			return a.Layout.X - b.Layout.X
		}
	})

	y := 0
	for i, w := range ordered {
		h := DefaultWidgetHeight(w.DisplayType)
		if w.Layout != nil {
			h = w.Layout.H
		}
		ordered[i].Layout = &grid.Rect{X: 0, Y: y, W: grid.MobileColumns, H: h}
		y += h
	}
	return ordered
}
