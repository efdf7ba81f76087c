package grid

import (
	"slices"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

const (
	// DefaultColumns is the number of columns of a desktop dashboard.
	DefaultColumns = 6

	// MobileColumns is the number of columns of the stacked mobile layout.
	MobileColumns = 1

	// DefaultWidgetWidth is the column span given to newly added widgets.
	DefaultWidgetWidth = 2
)

// Rect is a widget's rectangle on the grid, in columns and rows.
type Rect struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
	W int `json:"w" bson:"w"`
	H int `json:"h" bson:"h"`
}

// Right returns the first column after the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Position returns the top-left corner of r.
func (r Rect) Position() Position { return Position{X: r.X, Y: r.Y} }

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Position is the top-left cell assigned to a widget.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is the column and row span of a widget waiting to be placed.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Rect returns the rectangle of size s anchored at p.
func (p Position) Rect(s Size) Rect {
	return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H}
}

// Depths holds, per column, the first row not covered by any widget
// reaching down from above.
type Depths []int

// Clone returns a copy of d that shares no storage with it.
func (d Depths) Clone() Depths {
	if d == nil {
		return nil
	}
	return slices.Clone(d)
}

// Max returns the deepest column depth, or 0 for an empty vector.
func (d Depths) Max() int {
	if len(d) == 0 {
		return 0
	}
	return slices.Max(d)
}

// Equal reports whether d and o hold the same depths.
func (d Depths) Equal(o Depths) bool {
	return slices.Equal(d, o)
}

// Placement is the outcome of placing one widget.
type Placement struct {
	Position Position `json:"position"`
	Next     Depths   `json:"next_depths"`
}

// Grid is a packing configuration: the number of columns and the width
// given to widgets placed without an explicit size.
type Grid struct {
	Columns     int `json:"columns" toml:"columns"`
	WidgetWidth int `json:"widget_width" toml:"widget_width"`
}

// Default returns the six-column desktop grid with two-column widgets.
func Default() Grid {
	return Grid{Columns: DefaultColumns, WidgetWidth: DefaultWidgetWidth}
}

// Validate checks that the grid can hold at least one widget.
func (g Grid) Validate() error {
	if g.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid needs at least one column, got %d", g.Columns)
	}
	if g.WidgetWidth < 1 || g.WidgetWidth > g.Columns {
		return errors.New(errors.ErrCodeInvalidConfig,
			"widget width %d must be between 1 and %d", g.WidgetWidth, g.Columns)
	}
	return nil
}

// ValidateRect checks that r has a positive size and lies inside the grid.
func (g Grid) ValidateRect(r Rect) error {
	if r.W < 1 || r.H < 1 {
		return errors.New(errors.ErrCodeInvalidDimensions, "rectangle %dx%d must be at least 1x1", r.W, r.H)
	}
	if r.X < 0 || r.Y < 0 {
		return errors.New(errors.ErrCodeInvalidRectangle, "rectangle origin (%d, %d) is negative", r.X, r.Y)
	}
	if r.Right() > g.Columns {
		return errors.New(errors.ErrCodeInvalidRectangle,
			"rectangle spans columns %d..%d but the grid has %d", r.X, r.Right()-1, g.Columns)
	}
	return nil
}

// Depths validates every rectangle of layout and returns its column depths.
func (g Grid) Depths(layout []Rect) (Depths, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	for i, r := range layout {
		if err := g.ValidateRect(r); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "widget %d", i)
		}
	}
	return ColumnDepths(layout, g.Columns), nil
}

// Place finds a spot for a widget of the grid's widget width and the
// given height.
func (g Grid) Place(depths Depths, height int) (Placement, error) {
	return g.PlaceSize(depths, Size{W: g.WidgetWidth, H: height})
}

// PlaceSize is like Place but takes an explicit widget size.
func (g Grid) PlaceSize(depths Depths, size Size) (Placement, error) {
	if err := g.Validate(); err != nil {
		return Placement{}, err
	}
	if len(depths) != g.Columns {
		return Placement{}, errors.New(errors.ErrCodeInvalidInput,
			"depth vector has %d columns, grid has %d", len(depths), g.Columns)
	}
	for c, v := range depths {
		if v < 0 {
			return Placement{}, errors.New(errors.ErrCodeInvalidInput, "column %d has negative depth %d", c, v)
		}
	}
	if size.W < 1 || size.W > g.Columns || size.H < 1 {
		return Placement{}, errors.New(errors.ErrCodeInvalidDimensions,
			"widget size %dx%d does not fit a %d-column grid", size.W, size.H, g.Columns)
	}
	pos, next := NextAvailablePosition(depths, size)
	return Placement{Position: pos, Next: next}, nil
}
