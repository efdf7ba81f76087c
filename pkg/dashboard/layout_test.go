package dashboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

func rect(x, y, w, h int) *grid.Rect {
	return &grid.Rect{X: x, Y: y, W: w, H: h}
}

func TestDefaultWidgetHeight(t *testing.T) {
	tests := []struct {
		display DisplayType
		want    int
	}{
		{DisplayBigNumber, 1},
		{DisplayLine, 2},
		{DisplayTable, 2},
		{DisplayTopN, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.display), func(t *testing.T) {
			if got := DefaultWidgetHeight(tt.display); got != tt.want {
				t.Errorf("DefaultWidgetHeight(%s) = %d, want %d", tt.display, got, tt.want)
			}
		})
	}
}

func TestAssignDefaultLayout(t *testing.T) {
	widgets := []Widget{
		{ID: "a", Title: "A", DisplayType: DisplayLine, Layout: rect(0, 0, 4, 1)},
		{ID: "b", Title: "B", DisplayType: DisplayBigNumber},
		{ID: "c", Title: "C", DisplayType: DisplayTable},
		{ID: "d", Title: "D", DisplayType: DisplayBar},
	}
	depths := grid.ColumnDepths([]grid.Rect{*widgets[0].Layout}, grid.DefaultColumns)

	got, next := AssignDefaultLayout(widgets, depths, grid.Default())

	want := []*grid.Rect{
		rect(0, 0, 4, 1),
		rect(4, 0, 2, 1),
		rect(0, 1, 2, 2),
		rect(2, 1, 2, 2),
	}
	for i, w := range got {
		if diff := cmp.Diff(want[i], w.Layout); diff != "" {
			t.Errorf("widget %s layout mismatch (-want +got):\n%s", w.ID, diff)
		}
	}
	if wantNext := (grid.Depths{3, 3, 3, 3, 1, 1}); !next.Equal(wantNext) {
		t.Errorf("next depths = %v, want %v", next, wantNext)
	}

	if widgets[1].Layout != nil {
		t.Error("input widget was modified")
	}
	if !depths.Equal(grid.Depths{1, 1, 1, 1, 0, 0}) {
		t.Errorf("input depths modified: %v", depths)
	}
	got[0].Layout.X = 5
	if widgets[0].Layout.X != 0 {
		t.Error("returned layout aliases the input")
	}
}

func TestAddWidget(t *testing.T) {
	d := &Dashboard{
		ID:           "ops",
		Organization: "sentry",
		Title:        "Ops",
		Widgets: []Widget{
			{ID: "a", Title: "A", DisplayType: DisplayLine, Layout: rect(0, 0, 2, 1)},
			{ID: "b", Title: "B", DisplayType: DisplayLine, Layout: rect(2, 0, 2, 1)},
			{ID: "c", Title: "C", DisplayType: DisplayLine, Layout: rect(4, 0, 2, 1)},
		},
	}

	p, err := AddWidget(d, Widget{Title: "Errors", DisplayType: DisplayLine}, grid.Default())
	if err != nil {
		t.Fatalf("AddWidget() error = %v", err)
	}

	if want := (grid.Position{X: 0, Y: 1}); p.Position != want {
		t.Errorf("position = %+v, want %+v", p.Position, want)
	}
	if want := (grid.Depths{3, 3, 1, 1, 1, 1}); !p.Next.Equal(want) {
		t.Errorf("next = %v, want %v", p.Next, want)
	}
	if len(d.Widgets) != 4 {
		t.Fatalf("widgets = %d, want 4", len(d.Widgets))
	}
	added := d.Widgets[3]
	if added.ID == "" {
		t.Error("added widget has no id")
	}
	if diff := cmp.Diff(rect(0, 1, 2, 2), added.Layout); diff != "" {
		t.Errorf("added layout mismatch (-want +got):\n%s", diff)
	}
}

func TestAddWidgetKeepsExplicitLayout(t *testing.T) {
	d := &Dashboard{ID: "ops", Organization: "sentry", Title: "Ops"}

	p, err := AddWidget(d, Widget{ID: "x", Title: "X", DisplayType: DisplayArea, Layout: rect(2, 3, 2, 2)}, grid.Default())
	if err != nil {
		t.Fatalf("AddWidget() error = %v", err)
	}
	if want := (grid.Position{X: 2, Y: 3}); p.Position != want {
		t.Errorf("position = %+v, want %+v", p.Position, want)
	}
	if want := (grid.Depths{0, 0, 5, 5, 0, 0}); !p.Next.Equal(want) {
		t.Errorf("next = %v, want %v", p.Next, want)
	}
}

func TestAddWidgetRejectsInvalid(t *testing.T) {
	existing := Widget{ID: "w1", Title: "Errors", DisplayType: DisplayLine, Layout: rect(0, 0, 2, 2)}

	tests := []struct {
		name   string
		widget Widget
		want   errors.Code
	}{
		{"no title", Widget{DisplayType: DisplayLine}, errors.ErrCodeInvalidWidget},
		{"unknown display", Widget{Title: "T", DisplayType: "pie"}, errors.ErrCodeInvalidWidget},
		{"out of grid", Widget{Title: "T", DisplayType: DisplayLine, Layout: rect(5, 0, 2, 1)}, errors.ErrCodeInvalidRectangle},
		{"duplicate id", Widget{ID: "w1", Title: "T", DisplayType: DisplayLine}, errors.ErrCodeInvalidWidget},
		{"duplicate id with layout", Widget{ID: "w1", Title: "T", DisplayType: DisplayLine, Layout: rect(2, 0, 2, 1)}, errors.ErrCodeInvalidWidget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dashboard{ID: "ops", Organization: "sentry", Title: "Ops", Widgets: []Widget{existing}}
			_, err := AddWidget(d, tt.widget, grid.Default())
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("AddWidget() code = %q, want %q (err: %v)", got, tt.want, err)
			}
			if len(d.Widgets) != 1 {
				t.Errorf("invalid widget was appended")
			}
			if err := d.Validate(grid.Default()); err != nil {
				t.Errorf("dashboard no longer validates: %v", err)
			}
		})
	}
}

func TestMobileLayout(t *testing.T) {
	widgets := []Widget{
		{ID: "right", DisplayType: DisplayLine, Layout: rect(4, 0, 2, 3)},
		{ID: "pending", DisplayType: DisplayBigNumber},
		{ID: "below", DisplayType: DisplayTable, Layout: rect(0, 2, 2, 2)},
		{ID: "left", DisplayType: DisplayLine, Layout: rect(0, 0, 2, 2)},
	}

	got := MobileLayout(widgets)

	wantOrder := []string{"left", "right", "below", "pending"}
	wantRects := []*grid.Rect{rect(0, 0, 1, 2), rect(0, 2, 1, 3), rect(0, 5, 1, 2), rect(0, 7, 1, 1)}
	for i, w := range got {
		if w.ID != wantOrder[i] {
			t.Errorf("position %d = %s, want %s", i, w.ID, wantOrder[i])
		}
		if diff := cmp.Diff(wantRects[i], w.Layout); diff != "" {
			t.Errorf("widget %s layout mismatch (-want +got):\n%s", w.ID, diff)
		}
	}
	if widgets[0].Layout.X != 4 {
		t.Error("input layout was modified")
	}
}
