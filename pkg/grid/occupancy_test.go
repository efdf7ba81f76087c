package grid

import (
	"testing"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

func TestOccupancyPlaceThreadsDepths(t *testing.T) {
	o := OccupancyOf(Default(), []Rect{
		{X: 0, Y: 0, W: 4, H: 1},
	})

	first, err := o.Place(Size{W: 2, H: 2})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	second, err := o.Place(Size{W: 2, H: 2})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	if want := (Position{X: 4, Y: 0}); first != want {
		t.Errorf("first = %+v, want %+v", first, want)
	}
	if want := (Position{X: 0, Y: 1}); second != want {
		t.Errorf("second = %+v, want %+v", second, want)
	}
	if want := (Depths{3, 3, 1, 1, 2, 2}); !o.Depths().Equal(want) {
		t.Errorf("Depths() = %v, want %v", o.Depths(), want)
	}
	if o.Height() != 3 {
		t.Errorf("Height() = %d, want 3", o.Height())
	}
}

func TestOccupancyAdd(t *testing.T) {
	o := NewOccupancy(Default())

	if err := o.Add(Rect{X: 2, Y: 1, W: 2, H: 2}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := o.Add(Rect{X: 2, Y: 0, W: 1, H: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if want := (Depths{0, 0, 3, 3, 0, 0}); !o.Depths().Equal(want) {
		t.Errorf("Depths() = %v, want %v", o.Depths(), want)
	}

	err := o.Add(Rect{X: 5, Y: 0, W: 2, H: 1})
	if !errors.Is(err, errors.ErrCodeInvalidRectangle) {
		t.Errorf("Add() out of bounds error = %v", err)
	}
}

func TestOccupancyDepthsIsACopy(t *testing.T) {
	o := NewOccupancy(Default())
	d := o.Depths()
	d[0] = 10

	if o.Height() != 0 {
		t.Errorf("mutating Depths() result changed the model: height %d", o.Height())
	}
}
