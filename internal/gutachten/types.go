package gutachten

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// RawTable is an ordered 2-D grid of string cells with an ordered list of
// column names. Column names may be synthetic ("Spalte_1", ...) when the
// source table carried no usable header row. Instances are passed by value
// through the pipeline and discarded when they fail validation.
type RawTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Source  string     `json:"source,omitempty"` // name of the strategy that produced it
	Page    int        `json:"page,omitempty"`
}

// NewRawTable builds a RawTable from a grid of cells. The first row becomes
// the header when every cell in it is non-blank; otherwise synthetic column
// names are generated and all rows are kept as data.
func NewRawTable(grid [][]string) RawTable {
	if len(grid) == 0 {
		return RawTable{}
	}

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]string, len(grid))
	for i, row := range grid {
		padded[i] = append(append([]string{}, row...), make([]string, width-len(row))...)
	}

	headerUsable := true
	for _, cell := range padded[0] {
		if strings.TrimSpace(cell) == "" {
			headerUsable = false
			break
		}
	}

	if headerUsable && len(padded) > 1 {
		return RawTable{Columns: padded[0], Rows: padded[1:]}
	}
	return RawTable{Columns: syntheticColumns(width), Rows: padded}
}

func syntheticColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("Spalte_%d", i+1)
	}
	return cols
}

// RowCount returns the number of data rows.
func (t RawTable) RowCount() int { return len(t.Rows) }

// ColCount returns the number of columns.
func (t RawTable) ColCount() int { return len(t.Columns) }

// Column returns all cell values of the named column, in row order.
// Unknown column names yield nil.
func (t RawTable) Column(name string) []string {
	idx := -1
	for i, col := range t.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			values = append(values, row[idx])
		} else {
			values = append(values, "")
		}
	}
	return values
}

// ContentHash returns a structural hash over columns and cells. Tables with
// identical content hash identically regardless of how they were extracted.
func (t RawTable) ContentHash() uint64 {
	h := fnv.New64a()
	for _, col := range t.Columns {
		h.Write([]byte(col))
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0x1e})
	for _, row := range t.Rows {
		for _, cell := range row {
			h.Write([]byte(cell))
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return h.Sum64()
}

// ConditionCode is a short alphanumeric regulatory identifier ("Auflagen-Code")
// together with its descriptive text.
type ConditionCode struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NoDescription is the sentinel used when neither the PDF text nor the static
// dictionary knows a code.
const NoDescription = "Keine Beschreibung verfügbar"

// VehicleInfo maps semantic vehicle keys (Fahrzeug, Hersteller, Typ) to
// representative string values. Transient, never persisted.
type VehicleInfo map[string]string

// WheelTireInfo maps wheel/tire keys (Reifengröße, Felgengröße, Einpresstiefe,
// Hersteller, Tragfähigkeit, Geschwindigkeitsindex) to representative values.
type WheelTireInfo map[string]string

// TireDimension is a parsed tire size such as 205/55R16.
type TireDimension struct {
	Width       int `json:"width"`
	AspectRatio int `json:"aspect_ratio"`
	Diameter    int `json:"diameter"`
}

// ReasonType classifies a single analysis reason.
type ReasonType string

const (
	ReasonPositive ReasonType = "positive"
	ReasonNegative ReasonType = "negative"
	ReasonNeutral  ReasonType = "neutral"
)

// Reason is one entry in the analyzer's explanation trail.
type Reason struct {
	Type ReasonType `json:"type"`
	Text string     `json:"text"`
}

// AssessedCode is a condition code with its impact on the registration decision.
type AssessedCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Impact      string `json:"impact"` // "positive", "negative" or "neutral"
}

// FreedomAssessment is the analyzer's verdict on registration-freedom
// ("Eintragungsfreiheit"). Recomputed fully on every call, never persisted.
type FreedomAssessment struct {
	IsFree         bool           `json:"is_free"`
	Rating         int            `json:"rating"`
	Confidence     int            `json:"confidence"` // 0..100
	Reasons        []Reason       `json:"reasons"`
	ConditionCodes []AssessedCode `json:"condition_codes"`
	Summary        string         `json:"summary"`
}

// ExtractResult is the output of one full pipeline run over a PDF.
type ExtractResult struct {
	Path          string            `json:"path"`
	Strategy      string            `json:"strategy"` // strategy that produced the tables
	Tables        []RawTable        `json:"tables"`
	Codes         []string          `json:"codes"`
	CodeEntries   []ConditionCode   `json:"code_entries"`
	VehicleInfo   VehicleInfo       `json:"vehicle_info"`
	WheelTireInfo WheelTireInfo     `json:"wheel_tire_info"`
	Assessment    FreedomAssessment `json:"assessment"`
	ExportedFiles []string          `json:"exported_files,omitempty"`
	Warnings      []string          `json:"warnings,omitempty"`
}
