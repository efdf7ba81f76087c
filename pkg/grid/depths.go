package grid

// ColumnDepths returns, for each of the given number of columns, the maximum
// Y+H over all rectangles whose span [X, X+W) covers that column. Columns no
// rectangle touches are 0.
//
// Rectangles are not validated. Parts of a span that fall outside
// [0, columns) are ignored.
func ColumnDepths(layout []Rect, columns int) Depths {
	if columns < 0 {
		columns = 0
	}
	depths := make(Depths, columns)
	for _, r := range layout {
		bottom := r.Bottom()
		for c := max(r.X, 0); c < min(r.Right(), columns); c++ {
			if bottom > depths[c] {
				depths[c] = bottom
			}
		}
	}
	return depths
}
