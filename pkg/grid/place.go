package grid

// NextAvailablePosition finds where a widget of the given size goes.
//
// Candidate columns are 0, W, 2W, ... while the widget still fits. The depth
// of a candidate is the deepest column it spans; the shallowest candidate
// wins and earlier candidates win ties. The widget is placed at that depth,
// and the returned vector has the spanned columns set to depth + H.
//
// depths is never modified. When no candidate exists (W < 1 or W wider
// than the grid) the position is column 0 below all content and the
// returned vector is an unchanged copy.
func NextAvailablePosition(depths Depths, size Size) (Position, Depths) {
	next := depths.Clone()
	if size.W < 1 || size.W > len(depths) {
		return Position{X: 0, Y: depths.Max()}, next
	}

	bestX, bestDepth := -1, 0
	for x := 0; x+size.W <= len(depths); x += size.W {
		d := spanDepth(depths, x, size.W)
		if bestX < 0 || d < bestDepth {
			bestX, bestDepth = x, d
		}
	}

	for c := bestX; c < bestX+size.W; c++ {
		next[c] = bestDepth + size.H
	}
	return Position{X: bestX, Y: bestDepth}, next
}

// spanDepth returns the deepest of the w columns starting at x.
func spanDepth(depths Depths, x, w int) int {
	d := depths[x]
	for _, v := range depths[x+1 : x+w] {
		d = max(d, v)
	}
	return d
}
