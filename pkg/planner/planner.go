// Package planner decides widget positions for stored dashboards.
//
// A [Runner] ties the packing functions of package grid to a dashboard
// [store.Store] and a [cache.Cache]. The CLI and the API server share it so
// that both apply the same validation, caching and logging.
//
// # Usage
//
//	runner := planner.NewRunner(grid.Default(), st, c, nil, logger)
//	res, err := runner.AddWidget(ctx, "sentry", "backend", dashboard.Widget{
//	    Title:       "Errors by release",
//	    DisplayType: dashboard.DisplayLine,
//	})
//	// res.Placement.Position is where the widget went.
//
// Depth vectors derived from a layout are cached by the hash of the layout,
// so repeated reads of a large dashboard skip the scan.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/store"
)

// Runner places widgets with caching and persistence.
//
// The Runner holds no per-request state. Multiple goroutines can share one
// Runner; AddWidget calls on the same dashboard are serialized only as far
// as the Store serializes them.
type Runner struct {
	Grid   grid.Grid
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
	now    func() time.Time
}

// NewRunner creates a runner.
// A nil cache disables caching, a nil keyer uses the default key layout and
// a nil logger uses log.Default(). st may be nil for callers that only use
// the stateless operations.
func NewRunner(g grid.Grid, st store.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Grid:   g,
		Store:  st,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLDepths,
		now:    time.Now,
	}
}

// DepthsWithCacheInfo validates layout, returns its column depths and
// reports whether they came from the cache.
func (r *Runner) DepthsWithCacheInfo(ctx context.Context, layout []grid.Rect) (grid.Depths, bool, error) {
	start := time.Now()
	if err := r.Grid.Validate(); err != nil {
		return nil, false, err
	}

	hash, err := cache.HashJSON(layout)
	if err != nil {
		return nil, false, fmt.Errorf("hash layout: %w", err)
	}
	key := r.Keyer.DepthsKey(r.Grid.Columns, hash)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var d grid.Depths
		if err := json.Unmarshal(data, &d); err == nil && len(d) == r.Grid.Columns {
			observability.Cache().OnCacheHit(ctx, "depths")
			observability.Placement().OnDepths(ctx, r.Grid.Columns, len(layout), true, time.Since(start))
			return d, true, nil
		}
	} else if err != nil {
		r.Logger.Warn("depths cache read failed", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "depths")

	d, err := r.Grid.Depths(layout)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(d); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("depths cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "depths", len(data))
		}
	}
	observability.Placement().OnDepths(ctx, r.Grid.Columns, len(layout), false, time.Since(start))
	return d, false, nil
}

// Depths is a convenience wrapper that discards the cache hit info.
func (r *Runner) Depths(ctx context.Context, layout []grid.Rect) (grid.Depths, error) {
	d, _, err := r.DepthsWithCacheInfo(ctx, layout)
	return d, err
}

// Place finds a position for a widget of the given size.
// A zero width means the grid's widget width.
func (r *Runner) Place(ctx context.Context, depths grid.Depths, size grid.Size) (grid.Placement, error) {
	start := time.Now()
	if size.W == 0 {
		size.W = r.Grid.WidgetWidth
	}
	p, err := r.Grid.PlaceSize(depths, size)
	observability.Placement().OnPlace(ctx, r.Grid.Columns, p.Position.X, p.Position.Y, time.Since(start), err)
	return p, err
}

// Sequence places widgets of the given heights one after another, feeding
// each placement's depths into the next. It returns the positions in order
// and the final depths.
func (r *Runner) Sequence(ctx context.Context, depths grid.Depths, heights []int) ([]grid.Position, grid.Depths, error) {
	positions := make([]grid.Position, 0, len(heights))
	next := depths
	for i, h := range heights {
		p, err := r.Place(ctx, next, grid.Size{H: h})
		if err != nil {
			return nil, nil, fmt.Errorf("widget %d: %w", i, err)
		}
		positions = append(positions, p.Position)
		next = p.Next
	}
	if len(heights) == 0 {
		next = depths.Clone()
	}
	return positions, next, nil
}

// AddResult is the outcome of AddWidget.
type AddResult struct {
	Dashboard *dashboard.Dashboard
	Widget    dashboard.Widget
	Placement grid.Placement
}

// AddWidget loads a dashboard, places w below its current content and
// persists the result.
func (r *Runner) AddWidget(ctx context.Context, org, id string, w dashboard.Widget) (*AddResult, error) {
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "runner has no dashboard store")
	}

	d, err := r.Store.Get(ctx, org, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	p, err := dashboard.AddWidget(d, w, r.Grid)
	observability.Placement().OnPlace(ctx, r.Grid.Columns, p.Position.X, p.Position.Y, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	added := d.Widgets[len(d.Widgets)-1]

	if err := r.save(ctx, d); err != nil {
		return nil, err
	}

	r.Logger.Info("placed widget",
		"org", org,
		"dashboard", id,
		"widget", added.ID,
		"x", p.Position.X,
		"y", p.Position.Y)

	return &AddResult{Dashboard: d, Widget: added, Placement: p}, nil
}

// SaveDashboard validates d, positions any widgets that lack a layout and
// persists it. Timestamps are maintained here.
func (r *Runner) SaveDashboard(ctx context.Context, d *dashboard.Dashboard) (*dashboard.Dashboard, error) {
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "runner has no dashboard store")
	}

	out := d.Clone()
	for i := range out.Widgets {
		if out.Widgets[i].ID == "" {
			out.Widgets[i].ID = dashboard.NewWidgetID()
		}
	}
	if err := out.Validate(r.Grid); err != nil {
		return nil, err
	}

	depths, err := r.Depths(ctx, out.Rects())
	if err != nil {
		return nil, err
	}
	out.Widgets, _ = dashboard.AssignDefaultLayout(out.Widgets, depths, r.Grid)

	if existing, err := r.Store.Get(ctx, out.Organization, out.ID); err == nil {
		out.DateCreated = existing.DateCreated
	} else if !errors.IsNotFound(err) {
		return nil, err
	}
	if err := r.save(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dashboard returns a stored dashboard, reading through the cache.
//
// A save can land between the store read and the cache write. After filling
// the cache the store is read again, and the entry is dropped if the
// dashboard changed in between. A save finishing later invalidates the entry
// itself, so the cache never holds a copy older than the last write.
func (r *Runner) Dashboard(ctx context.Context, org, id string) (*dashboard.Dashboard, error) {
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "runner has no dashboard store")
	}

	key := r.Keyer.DashboardKey(org, id)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var d dashboard.Dashboard
		if err := json.Unmarshal(data, &d); err == nil {
			observability.Cache().OnCacheHit(ctx, "dashboard")
			return &d, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "dashboard")

	d, err := r.Store.Get(ctx, org, id)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return d, nil
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLDashboard); err != nil {
		return d, nil
	}
	observability.Cache().OnCacheSet(ctx, "dashboard", len(data))

	if cur, err := r.Store.Get(ctx, org, id); err != nil || !cur.DateModified.Equal(d.DateModified) {
		r.invalidate(ctx, org, id)
	}
	return d, nil
}

// DeleteDashboard removes a dashboard from the store and the cache.
func (r *Runner) DeleteDashboard(ctx context.Context, org, id string) error {
	if r.Store == nil {
		return errors.New(errors.ErrCodeUnsupported, "runner has no dashboard store")
	}
	if err := r.Store.Delete(ctx, org, id); err != nil {
		return err
	}
	r.invalidate(ctx, org, id)
	return nil
}

// invalidate drops the cached copy of a dashboard after a write.
func (r *Runner) invalidate(ctx context.Context, org, id string) {
	if err := r.Cache.Delete(ctx, r.Keyer.DashboardKey(org, id)); err != nil {
		r.Logger.Warn("dashboard cache invalidation failed", "org", org, "dashboard", id, "err", err)
	}
}

func (r *Runner) save(ctx context.Context, d *dashboard.Dashboard) error {
	start := time.Now()
	now := r.now().UTC()
	if d.DateCreated.IsZero() {
		d.DateCreated = now
	}
	d.DateModified = now

	err := r.Store.Put(ctx, d)
	observability.Placement().OnPersist(ctx, d.Organization, d.ID, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("persist dashboard %s: %w", d.ID, err)
	}
	r.invalidate(ctx, d.Organization, d.ID)
	return nil
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
