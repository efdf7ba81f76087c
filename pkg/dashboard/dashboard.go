package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Dashboard is an organization's named collection of widgets.
type Dashboard struct {
	ID           string    `json:"id" bson:"id"`
	Organization string    `json:"organization" bson:"organization"`
	Title        string    `json:"title" bson:"title"`
	Widgets      []Widget  `json:"widgets" bson:"widgets"`
	DateCreated  time.Time `json:"date_created" bson:"date_created"`
	DateModified time.Time `json:"date_modified" bson:"date_modified"`
}

// New returns an empty dashboard with a fresh ID.
func New(org, title string) *Dashboard {
	now := time.Now().UTC()
	return &Dashboard{
		ID:           NewDashboardID(),
		Organization: org,
		Title:        title,
		DateCreated:  now,
		DateModified: now,
	}
}

// NewDashboardID returns a random dashboard identifier that is also a
// valid slug.
func NewDashboardID() string {
	return uuid.NewString()
}

// Rects returns the layouts of all placed widgets, in widget order.
func (d *Dashboard) Rects() []grid.Rect {
	rects := make([]grid.Rect, 0, len(d.Widgets))
	for _, w := range d.Widgets {
		if w.Placed() {
			rects = append(rects, *w.Layout)
		}
	}
	return rects
}

// Depths returns the column depths of the dashboard's current layout.
func (d *Dashboard) Depths(g grid.Grid) grid.Depths {
	return grid.ColumnDepths(d.Rects(), g.Columns)
}

// Validate checks identifiers, title and every widget.
func (d *Dashboard) Validate(g grid.Grid) error {
	if err := errors.ValidateSlug("organization", d.Organization); err != nil {
		return err
	}
	if err := errors.ValidateSlug("dashboard id", d.ID); err != nil {
		return err
	}
	if err := errors.ValidateTitle(d.Title); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Widgets))
	for _, w := range d.Widgets {
		if seen[w.ID] {
			return errors.New(errors.ErrCodeInvalidWidget, "duplicate widget id %q", w.ID)
		}
		seen[w.ID] = true
		if err := w.Validate(g); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of d.
func (d *Dashboard) Clone() *Dashboard {
	c := *d
	c.Widgets = make([]Widget, len(d.Widgets))
	for i, w := range d.Widgets {
		if w.Layout != nil {
			r := *w.Layout
			w.Layout = &r
		}
		c.Widgets[i] = w
	}
	return &c
}
