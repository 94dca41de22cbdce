// Package treemap computes squarified treemap layouts: it partitions a
// rectangle into cells whose areas are proportional to a list of weights.
// The package is pure geometry; it never renders and holds no state.
package treemap

import "math"

// epsilon guards the band's main length against degenerate zero-size
// rectangles.
const epsilon = 1e-9

// Direction says along which axis a band advances into the rectangle.
type Direction string

const (
	// Horizontal bands advance left to right: each band is a column whose
	// cells share the band's width and stack top to bottom.
	Horizontal Direction = "horizontal"

	// Vertical bands advance top to bottom: each band is a row whose cells
	// share the band's height and run left to right.
	Vertical Direction = "vertical"
)

// Cell is one laid-out rectangle. Index refers back to the position of its
// weight in the input slice.
type Cell struct {
	Index  int     `json:"index"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is one band of the layout. The full layout is a chain of bands: the
// consumer draws a node's cells, then follows Child into the remaining
// rectangle.
type Node struct {
	Direction Direction `json:"direction"`
	Cells     []Cell    `json:"cells"`
	Child     *Node     `json:"child,omitempty"`
}

// Layout partitions a width x height rectangle among the given non-negative
// weights. It returns nil for degenerate input (no weights, non-finite or
// non-positive extent, non-positive total weight) instead of producing NaN
// geometry.
func Layout(weights []float64, width, height float64) *Node {
	return layout(weights, 0, width, height)
}

// layout lays out weights[from:] into a w x h rectangle.
//
// The heuristic is greedy: a band starts with one item and is extended while
// the incremental item's own aspect ratio improves on the band's current
// ratio. Note this compares the newly added item's ratio, not the worst
// ratio across the whole band, which is a simplification of the textbook
// squarify criterion.
func layout(weights []float64, from int, w, h float64) *Node {
	if from >= len(weights) {
		return nil
	}
	if !isFinitePositive(w) || !isFinitePositive(h) {
		return nil
	}

	var remaining float64
	for _, v := range weights[from:] {
		remaining += v
	}
	if remaining <= 0 || math.IsInf(remaining, 0) || math.IsNaN(remaining) {
		return nil
	}

	scale := (w * h) / remaining

	direction := Horizontal
	if w < h {
		direction = Vertical
	}
	mainLength := math.Max(epsilon, math.Min(w, h))

	// Open the band with the first remaining item.
	bandArea := weights[from] * scale
	crossLength := bandArea / mainLength
	bandRatio := aspectRatio(mainLength, crossLength)
	count := 1

	// Greedily extend while the next item alone would be better shaped than
	// the band currently is.
	for from+count < len(weights) {
		itemArea := weights[from+count] * scale
		newArea := bandArea + itemArea
		newCross := newArea / mainLength
		if newCross <= 0 {
			break
		}
		itemRatio := aspectRatio(newCross, itemArea/newCross)
		if itemRatio >= bandRatio {
			break
		}
		bandArea = newArea
		crossLength = newCross
		bandRatio = itemRatio
		count++
	}

	// The band must not overrun the rectangle it is carving from.
	if direction == Horizontal {
		crossLength = math.Min(crossLength, w)
	} else {
		crossLength = math.Min(crossLength, h)
	}

	node := &Node{
		Direction: direction,
		Cells:     make([]Cell, 0, count),
	}
	for i := 0; i < count; i++ {
		area := math.Max(0, weights[from+i]*scale)
		var cw, ch float64
		if crossLength > 0 {
			if direction == Horizontal {
				cw = crossLength
				ch = area / crossLength
			} else {
				cw = area / crossLength
				ch = crossLength
			}
		}
		node.Cells = append(node.Cells, Cell{
			Index:  from + i,
			Width:  math.Max(0, cw),
			Height: math.Max(0, ch),
		})
	}

	if direction == Horizontal {
		if rest := w - crossLength; rest > 0 {
			node.Child = layout(weights, from+count, rest, h)
		}
	} else {
		if rest := h - crossLength; rest > 0 {
			node.Child = layout(weights, from+count, w, rest)
		}
	}

	return node
}

// aspectRatio is the worst-case ratio of a cell's sides, always >= 1.
func aspectRatio(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return math.Inf(1)
	}
	return math.Max(a/b, b/a)
}

func isFinitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
