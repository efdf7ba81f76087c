// Package pkg provides the libraries behind dashgrid, the dashboard widget
// auto-layout packer.
//
// # Overview
//
// Dashboards are grids with a fixed number of columns (six on desktop). A new
// widget goes into the leftmost slot whose bottom edge is shallowest, so
// dashboards fill gaps before they grow downward. The pkg directory is
// organized into these areas:
//
//  1. [grid] - The packing functions: column depths and next position
//  2. [dashboard] - Dashboards, widgets and layout assignment
//  3. [planner] - A runner that ties packing to storage and caching
//  4. [api] - The HTTP service
//  5. [store], [cache] - Dashboard persistence and the depths cache
//  6. [config], [errors], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
//	existing layout ([]grid.Rect)
//	         ↓
//	    [grid.ColumnDepths] (per-column bottom edge)
//	         ↓
//	    [grid.NextAvailablePosition] (leftmost shallowest slot)
//	         ↓
//	    position + next depths → widget layout → [store]
//
// # Quick Start
//
//	layout := []grid.Rect{{X: 0, Y: 0, W: 2, H: 2}, {X: 4, Y: 0, W: 2, H: 1}}
//	depths := grid.ColumnDepths(layout, grid.DefaultColumns)
//	pos, next := grid.NextAvailablePosition(depths, grid.Size{W: 2, H: 2})
//	// pos = {2 0}, next = [2 2 2 2 1 1]
//
// The checked variants on [grid.Grid] return coded errors from [errors]
// instead of accepting malformed input.
//
// # Configuration
//
// The server and CLI read a TOML file (see [config]) selecting the store
// backend (memory, file, mongo) and the cache backend (none, file, redis).
package pkg
