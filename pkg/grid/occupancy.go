package grid

// Occupancy tracks the column depths of a grid as widgets are added.
// It is not safe for concurrent use.
type Occupancy struct {
	grid   Grid
	depths Depths
}

// NewOccupancy returns an empty occupancy model for g.
func NewOccupancy(g Grid) *Occupancy {
	return &Occupancy{grid: g, depths: make(Depths, max(g.Columns, 0))}
}

// OccupancyOf returns an occupancy model seeded with layout.
func OccupancyOf(g Grid, layout []Rect) *Occupancy {
	return &Occupancy{grid: g, depths: ColumnDepths(layout, g.Columns)}
}

// Add records an already placed rectangle.
func (o *Occupancy) Add(r Rect) error {
	if err := o.grid.ValidateRect(r); err != nil {
		return err
	}
	for c := r.X; c < r.Right(); c++ {
		o.depths[c] = max(o.depths[c], r.Bottom())
	}
	return nil
}

// Place picks a position for a widget of the given size and records it.
func (o *Occupancy) Place(size Size) (Position, error) {
	p, err := o.grid.PlaceSize(o.depths, size)
	if err != nil {
		return Position{}, err
	}
	o.depths = p.Next
	return p.Position, nil
}

// Depths returns a copy of the current column depths.
func (o *Occupancy) Depths() Depths {
	return o.depths.Clone()
}

// Height returns the number of rows in use.
func (o *Occupancy) Height() int {
	return o.depths.Max()
}
