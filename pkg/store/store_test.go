package store

import (
	"context"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

func sample(org, id, title string) *dashboard.Dashboard {
	return &dashboard.Dashboard{
		ID:           id,
		Organization: org,
		Title:        title,
		Widgets: []dashboard.Widget{
			{ID: "w1", Title: "Errors", DisplayType: dashboard.DisplayLine, Layout: &grid.Rect{X: 0, Y: 0, W: 2, H: 2}},
			{ID: "w2", Title: "Count", DisplayType: dashboard.DisplayBigNumber},
		},
	}
}

// testStore runs the behaviour every backend must share.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, "sentry", "nope")
		if !errors.Is(err, errors.ErrCodeDashboardNotFound) {
			t.Errorf("Get() error = %v, want %s", err, errors.ErrCodeDashboardNotFound)
		}
	})

	t.Run("put and get", func(t *testing.T) {
		d := sample("sentry", "ops", "Ops")
		if err := s.Put(ctx, d); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "sentry", "ops")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Title != "Ops" || len(got.Widgets) != 2 {
			t.Fatalf("Get() = %+v", got)
		}
		if got.Widgets[0].Layout == nil || *got.Widgets[0].Layout != (grid.Rect{X: 0, Y: 0, W: 2, H: 2}) {
			t.Errorf("layout not preserved: %+v", got.Widgets[0].Layout)
		}
		if got.Widgets[1].Layout != nil {
			t.Errorf("unplaced widget gained a layout: %+v", got.Widgets[1].Layout)
		}
	})

	t.Run("returned value is detached", func(t *testing.T) {
		got, _ := s.Get(ctx, "sentry", "ops")
		got.Widgets[0].Layout.Y = 42
		again, _ := s.Get(ctx, "sentry", "ops")
		if again.Widgets[0].Layout.Y != 0 {
			t.Error("mutating a returned dashboard changed the store")
		}
	})

	t.Run("put replaces", func(t *testing.T) {
		d := sample("sentry", "ops", "Operations")
		d.Widgets = d.Widgets[:1]
		if err := s.Put(ctx, d); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, _ := s.Get(ctx, "sentry", "ops")
		if got.Title != "Operations" || len(got.Widgets) != 1 {
			t.Errorf("Put() did not replace: %+v", got)
		}
	})

	t.Run("list is per organization and sorted", func(t *testing.T) {
		_ = s.Put(ctx, sample("sentry", "api", "API"))
		_ = s.Put(ctx, sample("other", "ops", "Other Ops"))

		list, err := s.List(ctx, "sentry")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 2 || list[0].ID != "api" || list[1].ID != "ops" {
			ids := make([]string, len(list))
			for i, d := range list {
				ids[i] = d.ID
			}
			t.Errorf("List() ids = %v, want [api ops]", ids)
		}

		empty, err := s.List(ctx, "nobody")
		if err != nil || len(empty) != 0 {
			t.Errorf("List(nobody) = %v, %v", empty, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.Delete(ctx, "sentry", "api"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := s.Get(ctx, "sentry", "api"); !errors.IsNotFound(err) {
			t.Errorf("Get() after Delete error = %v", err)
		}
		if err := s.Delete(ctx, "sentry", "api"); !errors.IsNotFound(err) {
			t.Errorf("second Delete() error = %v", err)
		}
		if _, err := s.Get(ctx, "other", "ops"); err != nil {
			t.Errorf("Delete removed another organization's dashboard: %v", err)
		}
	})

	t.Run("rejects unsafe keys", func(t *testing.T) {
		if err := s.Put(ctx, sample("../etc", "x", "X")); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Put() with bad org error = %v", err)
		}
		if _, err := s.Get(ctx, "sentry", "a/b"); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Get() with bad id error = %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer s.Close()
	testStore(t, s)
}
