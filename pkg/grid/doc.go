// Package grid places dashboard widgets on a fixed-column grid.
//
// # Overview
//
// A dashboard is a grid of Columns equal-width columns and an unbounded
// number of unit-height rows. Widgets occupy rectangles ([Rect]) on it.
// When a widget is added without an explicit position, this package picks
// the first free region wide enough for it.
//
// The packer never looks at individual cells. It keeps one number per
// column, the column depth: one past the bottom-most occupied row in that
// column. Gaps above a widget are not tracked, only the shadow each widget
// casts straight down.
//
// # Depths
//
// [ColumnDepths] derives the vector from a layout:
//
//	d := grid.ColumnDepths([]grid.Rect{{X: 0, Y: 0, W: 2, H: 2}}, 6)
//	// d == Depths{2, 2, 0, 0, 0, 0}
//
// # Placement
//
// [NextAvailablePosition] scans candidate columns left to right in steps of
// the widget width. The candidate whose tallest spanned column is lowest wins,
// and ties go to the leftmost. It returns the position together with a new
// depth vector; the input is never modified, so callers can thread the
// returned vector into the next call:
//
//	pos, next := grid.NextAvailablePosition(d, grid.Size{W: 2, H: 2})
//	pos2, next := grid.NextAvailablePosition(next, grid.Size{W: 2, H: 1})
//
// # Checked API
//
// The free functions do not validate input. Out-of-range spans are clipped to
// the grid and never panic, but the result is not meaningful. [Grid] wraps
// both operations with validation and returns coded errors from
// [github.com/matzehuels/dashgrid/pkg/errors] for malformed rectangles and
// non-positive dimensions. [Occupancy] keeps a running vector for callers
// that place several widgets in a row.
package grid
