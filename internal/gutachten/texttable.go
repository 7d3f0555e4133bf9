package gutachten

import (
	"regexp"
	"strings"
)

var (
	multiSpaceSplit = regexp.MustCompile(`\s{2,}`)
	anyDigit        = regexp.MustCompile(`\d`)
)

// TextTableStrategy reconstructs tables from plain text when no native table
// object can be detected: lines are split on tab characters or runs of two
// or more spaces, and lines that split into multiple cells become rows.
type TextTableStrategy struct{}

// Name implements Strategy.
func (s *TextTableStrategy) Name() string { return "texttable" }

// Extract implements Strategy.
func (s *TextTableStrategy) Extract(ctx *ExtractionContext) ([]RawTable, error) {
	var tables []RawTable
	for p := 1; p <= ctx.PageCount(); p++ {
		rows := splitTextRows(ctx.Lines(p))
		if len(rows) == 0 {
			continue
		}
		table := buildTextTable(rows)
		table.Page = p
		tables = append(tables, table)
	}
	return tables, nil
}

// splitTextRows turns lines into cell rows. Tabs win over space runs;
// single-cell lines are prose and are dropped.
func splitTextRows(lines []string) [][]string {
	var rows [][]string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var cells []string
		if strings.Contains(line, "\t") {
			for _, cell := range strings.Split(line, "\t") {
				cells = append(cells, strings.TrimSpace(cell))
			}
		} else {
			for _, cell := range multiSpaceSplit.Split(line, -1) {
				if cell = strings.TrimSpace(cell); cell != "" {
					cells = append(cells, cell)
				}
			}
		}
		if len(cells) > 1 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// buildTextTable pads rows to equal width and decides whether the first row
// is a header: it is when it contains no digits while later rows do.
func buildTextTable(rows [][]string) RawTable {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		padded[i] = append(append([]string{}, row...), make([]string, width-len(row))...)
	}

	if hasDigitlessHeader(padded) {
		return RawTable{Columns: padded[0], Rows: padded[1:]}
	}
	return RawTable{Columns: syntheticColumns(width), Rows: padded}
}

func hasDigitlessHeader(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}
	for _, cell := range rows[0] {
		if anyDigit.MatchString(cell) {
			return false
		}
	}
	for _, row := range rows[1:] {
		for _, cell := range row {
			if anyDigit.MatchString(cell) {
				return true
			}
		}
	}
	return false
}

// SingleColumnStrategy is the terminal fallback: every non-blank line of the
// document becomes one row of a one-column table, so downstream consumers
// never receive zero tables for a PDF that has any text at all.
type SingleColumnStrategy struct{}

// Name implements Strategy.
func (s *SingleColumnStrategy) Name() string { return "singlecolumn" }

// Extract implements Strategy.
func (s *SingleColumnStrategy) Extract(ctx *ExtractionContext) ([]RawTable, error) {
	lines := ctx.AllLines()
	if len(lines) == 0 {
		// positioned extraction failed entirely; fall back to raw text
		for _, line := range strings.Split(ctx.PlainText(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{line})
	}
	return []RawTable{{Columns: []string{"PDF-Textinhalt"}, Rows: rows}}, nil
}
