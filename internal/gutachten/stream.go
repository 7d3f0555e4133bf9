package gutachten

import (
	"sort"
)

// StreamStrategy recovers tables from column alignment alone, for documents
// whose tables carry no ruling lines. Fragment start positions that recur
// across enough lines of a page are treated as column boundaries; each line
// then becomes a row with its fragments distributed over those columns.
type StreamStrategy struct {
	// MinLineSupport is the fraction of lines a column start must appear in.
	// Zero means default.
	MinLineSupport float64

	// ColumnTolerance is the horizontal slack (in points) when matching a
	// fragment to a column start. Zero means default.
	ColumnTolerance float64
}

// Name implements Strategy.
func (s *StreamStrategy) Name() string { return "stream" }

func (s *StreamStrategy) support() float64 {
	if s.MinLineSupport > 0 {
		return s.MinLineSupport
	}
	return 0.5
}

func (s *StreamStrategy) tolerance() float64 {
	if s.ColumnTolerance > 0 {
		return s.ColumnTolerance
	}
	return 4.0
}

// Extract implements Strategy.
func (s *StreamStrategy) Extract(ctx *ExtractionContext) ([]RawTable, error) {
	var tables []RawTable
	for p := 1; p <= ctx.PageCount(); p++ {
		if table, ok := s.extractPage(ctx, p); ok {
			table.Page = p
			tables = append(tables, table)
		}
	}
	return tables, nil
}

func (s *StreamStrategy) extractPage(ctx *ExtractionContext, pageNum int) (RawTable, bool) {
	lines := groupByLine(ctx.Fragments(pageNum))
	if len(lines) < 2 {
		return RawTable{}, false
	}

	starts := s.columnStarts(lines)
	if len(starts) < 2 {
		return RawTable{}, false
	}

	var grid [][]string
	for _, line := range lines {
		row := make([]string, len(starts))
		cellCount := 0
		for _, frag := range line.frags {
			col := s.columnFor(starts, frag.X)
			if row[col] != "" {
				row[col] += " "
			} else {
				cellCount++
			}
			row[col] += frag.S
		}
		// Lines that collapse into a single cell are prose, not table rows.
		if cellCount >= 2 {
			grid = append(grid, row)
		}
	}
	if len(grid) < 2 {
		return RawTable{}, false
	}
	return NewRawTable(grid), true
}

// columnStarts clusters the start X of every fragment and keeps clusters
// supported by enough lines to be a real column.
func (s *StreamStrategy) columnStarts(lines []textLine) []float64 {
	type cluster struct {
		x     float64
		count int
	}
	var clusters []cluster
	for _, line := range lines {
		for _, frag := range line.frags {
			placed := false
			for i := range clusters {
				if abs(clusters[i].x-frag.X) <= s.tolerance() {
					// running average keeps the cluster centered
					clusters[i].x = (clusters[i].x*float64(clusters[i].count) + frag.X) /
						float64(clusters[i].count+1)
					clusters[i].count++
					placed = true
					break
				}
			}
			if !placed {
				clusters = append(clusters, cluster{x: frag.X, count: 1})
			}
		}
	}

	minCount := int(s.support() * float64(len(lines)))
	if minCount < 2 {
		minCount = 2
	}
	var starts []float64
	for _, c := range clusters {
		if c.count >= minCount {
			starts = append(starts, c.x)
		}
	}
	sort.Float64s(starts)
	return starts
}

// columnFor maps a fragment start position to the right-most column whose
// start lies at or left of it.
func (s *StreamStrategy) columnFor(starts []float64, x float64) int {
	col := 0
	for i, start := range starts {
		if x >= start-s.tolerance() {
			col = i
		}
	}
	return col
}

// GuessStrategy is the combined mode: both detectors with loosened
// thresholds, results of either accepted. Duplicate tables (identical
// content found by both) collapse to one.
type GuessStrategy struct{}

// Name implements Strategy.
func (s *GuessStrategy) Name() string { return "guess" }

// Extract implements Strategy.
func (s *GuessStrategy) Extract(ctx *ExtractionContext) ([]RawTable, error) {
	lattice := &LatticeStrategy{MaxRuleThickness: 4.0, MinRuleLength: 10.0}
	stream := &StreamStrategy{MinLineSupport: 0.3, ColumnTolerance: 6.0}

	var combined []RawTable
	seen := make(map[uint64]bool)
	for _, detector := range []Strategy{lattice, stream} {
		tables, err := detector.Extract(ctx)
		if err != nil {
			continue
		}
		for _, t := range tables {
			h := t.ContentHash()
			if seen[h] {
				continue
			}
			seen[h] = true
			combined = append(combined, t)
		}
	}
	return combined, nil
}
