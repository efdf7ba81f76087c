package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// DepthsKey identifies the column depths of a layout on a grid.
	DepthsKey(columns int, layoutHash string) string

	// DashboardKey identifies a cached dashboard document.
	DashboardKey(org, id string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DepthsKey returns "depths:<hash of columns and layout hash>".
func (DefaultKeyer) DepthsKey(columns int, layoutHash string) string {
	return hashKey("depths", columns, layoutHash)
}

// DashboardKey returns "dashboard:<org>:<id>".
func (DefaultKeyer) DashboardKey(org, id string) string {
	return fmt.Sprintf("dashboard:%s:%s", org, id)
}
