package store

import (
	"context"
	"sync"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
)

// MemoryStore keeps dashboards in a map. Values are copied on the way in and
// out so callers never share state with the store.
type MemoryStore struct {
	mu         sync.RWMutex
	dashboards map[string]map[string]*dashboard.Dashboard
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{dashboards: make(map[string]map[string]*dashboard.Dashboard)}
}

func (s *MemoryStore) Get(ctx context.Context, org, id string) (*dashboard.Dashboard, error) {
	if err := validateKey(org, id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dashboards[org][id]
	if !ok {
		return nil, notFound(org, id)
	}
	return d.Clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, d *dashboard.Dashboard) error {
	if err := validateKey(d.Organization, d.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.dashboards[d.Organization]
	if !ok {
		byID = make(map[string]*dashboard.Dashboard)
		s.dashboards[d.Organization] = byID
	}
	byID[d.ID] = d.Clone()
	return nil
}

func (s *MemoryStore) List(ctx context.Context, org string) ([]*dashboard.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*dashboard.Dashboard, 0, len(s.dashboards[org]))
	for _, d := range s.dashboards[org] {
		out = append(out, d.Clone())
	}
	sortDashboards(out)
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, org, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dashboards[org][id]; !ok {
		return notFound(org, id)
	}
	delete(s.dashboards[org], id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
