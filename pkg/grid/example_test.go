package grid_test

import (
	"fmt"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

func ExampleColumnDepths() {
	layout := []grid.Rect{
		{X: 0, Y: 0, W: 2, H: 2},
		{X: 2, Y: 0, W: 2, H: 1},
	}
	fmt.Println(grid.ColumnDepths(layout, grid.DefaultColumns))
	// Output:
	// [2 2 1 1 0 0]
}

func ExampleNextAvailablePosition() {
	depths := grid.Depths{1, 1, 1, 1, 0, 0}

	pos, next := grid.NextAvailablePosition(depths, grid.Size{W: 2, H: 2})
	fmt.Println(pos, next)

	pos, next = grid.NextAvailablePosition(next, grid.Size{W: 2, H: 2})
	fmt.Println(pos, next)
	// Output:
	// {4 0} [1 1 1 1 2 2]
	// {0 1} [3 3 1 1 2 2]
}

func ExampleGrid_Place() {
	g := grid.Default()

	_, err := g.Place(grid.Depths{0, 0, 0, 0, 0, 0}, 0)
	fmt.Println(err)

	p, _ := g.Place(grid.Depths{1, 1, 0, 0, 1, 1}, 2)
	fmt.Println(p.Position, p.Next)
	// Output:
	// INVALID_DIMENSIONS: widget size 2x0 does not fit a 6-column grid
	// {2 0} [1 1 2 2 1 1]
}
