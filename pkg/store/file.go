package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
)

// FileStore keeps each dashboard in <dir>/<org>/<id>.json.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store rooted at baseDir.
// If baseDir is empty, defaults to ~/.local/share/dashgrid/dashboards/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "dashgrid", "dashboards")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) dashboardPath(org, id string) string {
	return filepath.Join(s.baseDir, org, id+".json")
}

func (s *FileStore) Get(ctx context.Context, org, id string) (*dashboard.Dashboard, error) {
	if err := validateKey(org, id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.read(s.dashboardPath(org, id), org, id)
}

func (s *FileStore) read(path, org, id string) (*dashboard.Dashboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(org, id)
		}
		return nil, fmt.Errorf("read dashboard file: %w", err)
	}

	var d dashboard.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse dashboard %s: %w", path, err)
	}
	return &d, nil
}

func (s *FileStore) Put(ctx context.Context, d *dashboard.Dashboard) error {
	if err := validateKey(d.Organization, d.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dashboard: %w", err)
	}

	path := s.dashboardPath(d.Organization, d.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create organization dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write dashboard file: %w", err)
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) List(ctx context.Context, org string) ([]*dashboard.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.baseDir, org))
	if os.IsNotExist(err) {
		return []*dashboard.Dashboard{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read organization dir: %w", err)
	}

	out := make([]*dashboard.Dashboard, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(".json")]
		d, err := s.read(filepath.Join(s.baseDir, org, entry.Name()), org, id)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	sortDashboards(out)
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, org, id string) error {
	if err := validateKey(org, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.dashboardPath(org, id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(org, id)
		}
		return fmt.Errorf("remove dashboard file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for dashboard files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
