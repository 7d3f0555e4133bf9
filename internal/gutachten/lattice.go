package gutachten

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LatticeStrategy detects tables through their ruling lines. Bordered tables
// draw their grid as thin filled rectangles; the crossings of horizontal and
// vertical rules define the cell matrix. This is the most reliable strategy
// for the bordered layout most Gutachten use, so it runs first.
type LatticeStrategy struct {
	// MaxRuleThickness is the largest extent (in points) on the short axis
	// for a rectangle to count as a ruling line. Zero means default.
	MaxRuleThickness float64

	// MinRuleLength is the smallest extent on the long axis. Zero means default.
	MinRuleLength float64
}

// Name implements Strategy.
func (s *LatticeStrategy) Name() string { return "lattice" }

func (s *LatticeStrategy) maxThickness() float64 {
	if s.MaxRuleThickness > 0 {
		return s.MaxRuleThickness
	}
	return 2.5
}

func (s *LatticeStrategy) minLength() float64 {
	if s.MinRuleLength > 0 {
		return s.MinRuleLength
	}
	return 18.0
}

// Extract implements Strategy.
func (s *LatticeStrategy) Extract(ctx *ExtractionContext) ([]RawTable, error) {
	var tables []RawTable
	for p := 1; p <= ctx.PageCount(); p++ {
		if table, ok := s.extractPage(ctx, p); ok {
			table.Page = p
			tables = append(tables, table)
		}
	}
	return tables, nil
}

func (s *LatticeStrategy) extractPage(ctx *ExtractionContext, pageNum int) (RawTable, bool) {
	xCuts, yCuts := s.gridCuts(ctx.Rects(pageNum))
	// Three cuts per axis is the smallest real grid (2x2 cells).
	if len(xCuts) < 3 || len(yCuts) < 3 {
		return RawTable{}, false
	}

	rows := len(yCuts) - 1
	cols := len(xCuts) - 1
	cells := make([][][]pdf.Text, rows)
	for r := range cells {
		cells[r] = make([][]pdf.Text, cols)
	}

	for _, frag := range ctx.Fragments(pageNum) {
		col := bucket(xCuts, frag.X)
		row := bucketDesc(yCuts, frag.Y)
		if col < 0 || row < 0 {
			continue
		}
		cells[row][col] = append(cells[row][col], frag)
	}

	grid := make([][]string, rows)
	filled := false
	for r := range cells {
		grid[r] = make([]string, cols)
		for c := range cells[r] {
			grid[r][c] = joinCell(cells[r][c])
			if grid[r][c] != "" {
				filled = true
			}
		}
	}
	if !filled {
		return RawTable{}, false
	}
	return NewRawTable(grid), true
}

// gridCuts derives the sorted column cuts (X, ascending) and row cuts
// (Y, descending) from the ruling rectangles of a page.
func (s *LatticeStrategy) gridCuts(rects []pdf.Rect) (xCuts, yCuts []float64) {
	var xs, ys []float64
	for _, r := range rects {
		w := r.Max.X - r.Min.X
		h := r.Max.Y - r.Min.Y
		switch {
		case h <= s.maxThickness() && w >= s.minLength():
			// horizontal rule: a row boundary at its vertical midpoint
			ys = append(ys, (r.Min.Y+r.Max.Y)/2)
		case w <= s.maxThickness() && h >= s.minLength():
			// vertical rule: a column boundary at its horizontal midpoint
			xs = append(xs, (r.Min.X+r.Max.X)/2)
		}
	}
	xCuts = mergeCuts(xs, 3.0)
	yCuts = mergeCuts(ys, 3.0)
	sort.Float64s(xCuts)
	sort.Sort(sort.Reverse(sort.Float64Slice(yCuts)))
	return xCuts, yCuts
}

// mergeCuts collapses positions closer than tol into one representative cut.
func mergeCuts(positions []float64, tol float64) []float64 {
	if len(positions) == 0 {
		return nil
	}
	sort.Float64s(positions)
	merged := []float64{positions[0]}
	for _, p := range positions[1:] {
		if p-merged[len(merged)-1] > tol {
			merged = append(merged, p)
		}
	}
	return merged
}

// bucket returns the cell index for v within ascending cuts, or -1 when v
// falls outside the grid.
func bucket(cuts []float64, v float64) int {
	for i := 0; i < len(cuts)-1; i++ {
		if v >= cuts[i] && v < cuts[i+1] {
			return i
		}
	}
	return -1
}

// bucketDesc is bucket for descending cuts (row boundaries, top first).
func bucketDesc(cuts []float64, v float64) int {
	for i := 0; i < len(cuts)-1; i++ {
		if v <= cuts[i] && v > cuts[i+1] {
			return i
		}
	}
	return -1
}

// joinCell assembles the text of one cell from its fragments, reading order.
func joinCell(frags []pdf.Text) string {
	if len(frags) == 0 {
		return ""
	}
	lines := joinLines(groupByLine(frags))
	return strings.TrimSpace(strings.Join(lines, " "))
}
