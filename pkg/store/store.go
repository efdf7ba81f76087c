// Package store persists dashboards.
//
// The planner and the API read the current widget list through [Store] and
// write the updated list back after placing a widget. Three backends are
// provided:
//   - [MemoryStore]: process-local, for tests and development
//   - [FileStore]: one JSON file per dashboard, for the CLI and single hosts
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// All backends return an error coded [errors.ErrCodeDashboardNotFound] when
// a dashboard does not exist.
package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/errors"
)

// Store is the interface for dashboard storage backends.
type Store interface {
	// Get returns the dashboard id of organization org.
	Get(ctx context.Context, org, id string) (*dashboard.Dashboard, error)

	// Put creates or replaces a dashboard.
	Put(ctx context.Context, d *dashboard.Dashboard) error

	// List returns all dashboards of org ordered by title, then id.
	List(ctx context.Context, org string) ([]*dashboard.Dashboard, error)

	// Delete removes a dashboard.
	Delete(ctx context.Context, org, id string) error

	// Close releases backend resources.
	Close() error
}

func notFound(org, id string) error {
	return errors.New(errors.ErrCodeDashboardNotFound, "dashboard %q not found in organization %q", id, org)
}

func validateKey(org, id string) error {
	if err := errors.ValidateSlug("organization", org); err != nil {
		return err
	}
	return errors.ValidateSlug("dashboard id", id)
}

func sortDashboards(ds []*dashboard.Dashboard) {
	slices.SortFunc(ds, func(a, b *dashboard.Dashboard) int {
		if c := cmp.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
