package planner

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/store"
)

func newTestRunner(t *testing.T, st store.Store, c cache.Cache) *Runner {
	t.Helper()
	r := NewRunner(grid.Default(), st, c, nil, log.New(io.Discard))
	r.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestDepthsUsesCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t, nil, c)
	layout := []grid.Rect{{X: 0, Y: 0, W: 2, H: 2}, {X: 2, Y: 0, W: 2, H: 1}}

	d, hit, err := r.DepthsWithCacheInfo(ctx, layout)
	if err != nil {
		t.Fatalf("DepthsWithCacheInfo() error = %v", err)
	}
	if hit {
		t.Error("first call reported a cache hit")
	}
	if want := (grid.Depths{2, 2, 1, 1, 0, 0}); !d.Equal(want) {
		t.Errorf("depths = %v, want %v", d, want)
	}

	d2, hit, err := r.DepthsWithCacheInfo(ctx, layout)
	if err != nil {
		t.Fatalf("DepthsWithCacheInfo() error = %v", err)
	}
	if !hit {
		t.Error("second call missed the cache")
	}
	if !d2.Equal(d) {
		t.Errorf("cached depths = %v, want %v", d2, d)
	}
}

func TestDepthsRejectsInvalidLayout(t *testing.T) {
	r := newTestRunner(t, nil, nil)

	_, err := r.Depths(context.Background(), []grid.Rect{{X: 5, Y: 0, W: 2, H: 1}})
	if !errors.Is(err, errors.ErrCodeInvalidRectangle) {
		t.Errorf("Depths() error = %v, want %s", err, errors.ErrCodeInvalidRectangle)
	}
}

func TestPlaceDefaultsWidth(t *testing.T) {
	r := newTestRunner(t, nil, nil)

	p, err := r.Place(context.Background(), grid.Depths{1, 1, 0, 0, 1, 1}, grid.Size{H: 2})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if want := (grid.Position{X: 2, Y: 0}); p.Position != want {
		t.Errorf("position = %+v, want %+v", p.Position, want)
	}

	_, err = r.Place(context.Background(), grid.Depths{0, 0, 0, 0, 0, 0}, grid.Size{H: 0})
	if !errors.Is(err, errors.ErrCodeInvalidDimensions) {
		t.Errorf("Place() zero height error = %v", err)
	}
}

func TestSequence(t *testing.T) {
	r := newTestRunner(t, nil, nil)
	start := grid.Depths{1, 1, 1, 1, 0, 0}

	positions, final, err := r.Sequence(context.Background(), start, []int{2, 2})
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}

	want := []grid.Position{{X: 4, Y: 0}, {X: 0, Y: 1}}
	if diff := cmp.Diff(want, positions); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if wantFinal := (grid.Depths{3, 3, 1, 1, 2, 2}); !final.Equal(wantFinal) {
		t.Errorf("final = %v, want %v", final, wantFinal)
	}
	if !start.Equal(grid.Depths{1, 1, 1, 1, 0, 0}) {
		t.Errorf("start depths modified: %v", start)
	}

	_, _, err = r.Sequence(context.Background(), start, []int{2, 0})
	if !errors.Is(err, errors.ErrCodeInvalidDimensions) {
		t.Errorf("Sequence() with zero height error = %v", err)
	}
}

func TestAddWidget(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	r := newTestRunner(t, st, nil)

	_ = st.Put(ctx, &dashboard.Dashboard{
		ID:           "backend",
		Organization: "sentry",
		Title:        "Backend",
		Widgets: []dashboard.Widget{
			{ID: "a", Title: "A", DisplayType: dashboard.DisplayLine, Layout: &grid.Rect{X: 0, Y: 0, W: 4, H: 1}},
		},
	})

	res, err := r.AddWidget(ctx, "sentry", "backend", dashboard.Widget{Title: "Count", DisplayType: dashboard.DisplayBigNumber})
	if err != nil {
		t.Fatalf("AddWidget() error = %v", err)
	}
	if want := (grid.Position{X: 4, Y: 0}); res.Placement.Position != want {
		t.Errorf("position = %+v, want %+v", res.Placement.Position, want)
	}
	if res.Widget.ID == "" || res.Widget.Layout == nil || res.Widget.Layout.H != 1 {
		t.Errorf("added widget = %+v", res.Widget)
	}

	stored, err := st.Get(ctx, "sentry", "backend")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(stored.Widgets) != 2 {
		t.Fatalf("stored widgets = %d, want 2", len(stored.Widgets))
	}
	if !stored.DateModified.Equal(r.now()) {
		t.Errorf("DateModified = %v", stored.DateModified)
	}

	res, err = r.AddWidget(ctx, "sentry", "backend", dashboard.Widget{Title: "Errors", DisplayType: dashboard.DisplayLine})
	if err != nil {
		t.Fatalf("AddWidget() error = %v", err)
	}
	if want := (grid.Position{X: 0, Y: 1}); res.Placement.Position != want {
		t.Errorf("second position = %+v, want %+v", res.Placement.Position, want)
	}
}

func TestAddWidgetErrors(t *testing.T) {
	ctx := context.Background()

	_, err := newTestRunner(t, nil, nil).AddWidget(ctx, "sentry", "x", dashboard.Widget{})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("AddWidget() without store error = %v", err)
	}

	r := newTestRunner(t, store.NewMemoryStore(), nil)
	_, err = r.AddWidget(ctx, "sentry", "missing", dashboard.Widget{Title: "T", DisplayType: dashboard.DisplayLine})
	if !errors.Is(err, errors.ErrCodeDashboardNotFound) {
		t.Errorf("AddWidget() missing dashboard error = %v", err)
	}
}

func TestAddWidgetDuplicateIDKeepsDashboardValid(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	r := newTestRunner(t, st, nil)

	saved, err := r.SaveDashboard(ctx, &dashboard.Dashboard{
		ID:           "ops",
		Organization: "sentry",
		Title:        "Ops",
		Widgets:      []dashboard.Widget{{ID: "w1", Title: "Errors", DisplayType: dashboard.DisplayLine}},
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.AddWidget(ctx, "sentry", "ops", dashboard.Widget{ID: "w1", Title: "Again", DisplayType: dashboard.DisplayLine})
	if !errors.Is(err, errors.ErrCodeInvalidWidget) {
		t.Fatalf("AddWidget() duplicate id error = %v, want %s", err, errors.ErrCodeInvalidWidget)
	}

	stored, err := st.Get(ctx, "sentry", "ops")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Widgets) != len(saved.Widgets) {
		t.Errorf("stored widgets = %d, want %d", len(stored.Widgets), len(saved.Widgets))
	}
	if _, err := r.SaveDashboard(ctx, stored); err != nil {
		t.Errorf("re-saving the stored dashboard failed: %v", err)
	}
}

func TestSaveDashboardAssignsLayout(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	r := newTestRunner(t, st, nil)

	in := &dashboard.Dashboard{
		ID:           "new",
		Organization: "sentry",
		Title:        "New",
		Widgets: []dashboard.Widget{
			{Title: "A", DisplayType: dashboard.DisplayLine},
			{Title: "B", DisplayType: dashboard.DisplayBigNumber},
			{Title: "C", DisplayType: dashboard.DisplayTable, Layout: &grid.Rect{X: 0, Y: 0, W: 2, H: 2}},
		},
	}

	out, err := r.SaveDashboard(ctx, in)
	if err != nil {
		t.Fatalf("SaveDashboard() error = %v", err)
	}

	want := []grid.Rect{
		{X: 2, Y: 0, W: 2, H: 2},
		{X: 4, Y: 0, W: 2, H: 1},
		{X: 0, Y: 0, W: 2, H: 2},
	}
	for i, w := range out.Widgets {
		if w.ID == "" {
			t.Errorf("widget %d has no id", i)
		}
		if w.Layout == nil || *w.Layout != want[i] {
			t.Errorf("widget %d layout = %+v, want %+v", i, w.Layout, want[i])
		}
	}
	if in.Widgets[0].Layout != nil || in.Widgets[0].ID != "" {
		t.Error("SaveDashboard() modified its input")
	}
	if out.DateCreated.IsZero() {
		t.Error("DateCreated not set")
	}

	_, err = r.SaveDashboard(ctx, &dashboard.Dashboard{ID: "bad", Organization: "sentry", Title: ""})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SaveDashboard() invalid error = %v", err)
	}
}

func TestDashboardReadThroughCache(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t, st, c)

	if _, err := r.SaveDashboard(ctx, &dashboard.Dashboard{ID: "ops", Organization: "sentry", Title: "Ops"}); err != nil {
		t.Fatal(err)
	}

	d, err := r.Dashboard(ctx, "sentry", "ops")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.Title != "Ops" {
		t.Errorf("title = %q", d.Title)
	}
	key := r.Keyer.DashboardKey("sentry", "ops")
	if _, hit, _ := c.Get(ctx, key); !hit {
		t.Fatal("dashboard was not cached after first read")
	}

	if _, err := r.AddWidget(ctx, "sentry", "ops", dashboard.Widget{Title: "Errors", DisplayType: dashboard.DisplayLine}); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("AddWidget did not invalidate the cached dashboard")
	}
	d, err = r.Dashboard(ctx, "sentry", "ops")
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Widgets) != 1 {
		t.Errorf("cached read returned %d widgets, want 1", len(d.Widgets))
	}

	if err := r.DeleteDashboard(ctx, "sentry", "ops"); err != nil {
		t.Fatalf("DeleteDashboard() error = %v", err)
	}
	if _, err := r.Dashboard(ctx, "sentry", "ops"); !errors.Is(err, errors.ErrCodeDashboardNotFound) {
		t.Errorf("Dashboard() after delete error = %v", err)
	}
}

// interleavedStore applies a pending write right after the first Get, as if
// another request saved the dashboard while it was being read.
type interleavedStore struct {
	*store.MemoryStore
	pending *dashboard.Dashboard
}

func (s *interleavedStore) Get(ctx context.Context, org, id string) (*dashboard.Dashboard, error) {
	d, err := s.MemoryStore.Get(ctx, org, id)
	if p := s.pending; p != nil {
		s.pending = nil
		if err := s.MemoryStore.Put(ctx, p); err != nil {
			return nil, err
		}
	}
	return d, err
}

func TestDashboardCacheDropsCopyOverwrittenDuringRead(t *testing.T) {
	ctx := context.Background()
	st := &interleavedStore{MemoryStore: store.NewMemoryStore()}
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t, st, c)

	old := &dashboard.Dashboard{ID: "ops", Organization: "sentry", Title: "Old",
		DateModified: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	if err := st.MemoryStore.Put(ctx, old); err != nil {
		t.Fatal(err)
	}
	updated := old.Clone()
	updated.Title = "New"
	updated.DateModified = old.DateModified.Add(time.Minute)
	st.pending = updated

	d, err := r.Dashboard(ctx, "sentry", "ops")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.Title != "Old" {
		t.Errorf("first read title = %q, want the value read before the write", d.Title)
	}
	if _, hit, _ := c.Get(ctx, r.Keyer.DashboardKey("sentry", "ops")); hit {
		t.Error("stale dashboard left in the cache")
	}

	d, err = r.Dashboard(ctx, "sentry", "ops")
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "New" {
		t.Errorf("second read title = %q, want %q", d.Title, "New")
	}
}
