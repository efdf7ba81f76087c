package dashboard

import (
	"github.com/google/uuid"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// DisplayType is how a widget renders its query.
type DisplayType string

// Display types.
const (
	DisplayLine      DisplayType = "line"
	DisplayArea      DisplayType = "area"
	DisplayBar       DisplayType = "bar"
	DisplayTable     DisplayType = "table"
	DisplayBigNumber DisplayType = "big_number"
	DisplayTopN      DisplayType = "top_n"
)

// ValidDisplayTypes is the set of supported display types.
var ValidDisplayTypes = map[DisplayType]bool{
	DisplayLine:      true,
	DisplayArea:      true,
	DisplayBar:       true,
	DisplayTable:     true,
	DisplayBigNumber: true,
	DisplayTopN:      true,
}

// Widget is a chart or table on a dashboard.
type Widget struct {
	ID          string      `json:"id" bson:"id"`
	Title       string      `json:"title" bson:"title"`
	DisplayType DisplayType `json:"display_type" bson:"display_type"`
	Layout      *grid.Rect  `json:"layout,omitempty" bson:"layout,omitempty"`
}

// NewWidgetID returns a random widget identifier.
func NewWidgetID() string {
	return uuid.NewString()
}

// DefaultWidgetHeight returns the row span a new widget of type t gets.
// Big numbers need a single row; everything else gets two.
func DefaultWidgetHeight(t DisplayType) int {
	if t == DisplayBigNumber {
		return 1
	}
	return 2
}

// Placed reports whether w has a layout.
func (w Widget) Placed() bool {
	return w.Layout != nil
}

// Validate checks the widget's title, display type and layout.
func (w Widget) Validate(g grid.Grid) error {
	if err := errors.ValidateTitle(w.Title); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidWidget, err, "widget %q", w.ID)
	}
	if !ValidDisplayTypes[w.DisplayType] {
		return errors.New(errors.ErrCodeInvalidWidget, "widget %q: unknown display type %q", w.ID, w.DisplayType)
	}
	if w.Layout != nil {
		if err := g.ValidateRect(*w.Layout); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "widget %q", w.ID)
		}
	}
	return nil
}
