package gutachten

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Semantic keys of the wheel/tire extraction.
const (
	KeyTireSize   = "Reifengröße"
	KeyRimSize    = "Felgengröße"
	KeyOffset     = "Einpresstiefe"
	KeyMaker      = "Hersteller"
	KeyLoadIndex  = "Tragfähigkeit"
	KeySpeedIndex = "Geschwindigkeitsindex"
)

// High-confidence value patterns, tried against every cell of every column
// before any column-name heuristic runs.
var wheelTireValuePatterns = []struct {
	key     string
	pattern *regexp.Regexp
}{
	{KeyTireSize, regexp.MustCompile(`(?i)\d{3}/\d{2}R\d{2}`)},      // 205/55R16
	{KeyRimSize, regexp.MustCompile(`(?i)\d{1,2}[,.]\d[Jx]?\d{2}`)}, // 7,5x16 / 8.5J19
	{KeyOffset, regexp.MustCompile(`(?i)ET\s*\d{1,2}`)},             // ET35
}

// Column-name fragments for the keys that the value patterns cannot resolve.
var wheelTireColumnAliases = map[string][]string{
	KeyTireSize:   {"reifen", "tire", "dimension", "größe", "size", "reifentyp"},
	KeyRimSize:    {"felge", "rim", "wheel", "alufelge", "räder", "zoll"},
	KeyOffset:     {"et", "offset", "einpress", "einpresstiefe"},
	KeyMaker:      {"hersteller", "manufacturer", "producer", "marke", "brand"},
	KeyLoadIndex:  {"load", "traglast", "tragfähigkeit", "last", "gewicht", "kg"},
	KeySpeedIndex: {"speed", "geschwindigkeit", "index", "km/h", "si"},
}

var wheelTireKeys = []string{
	KeyTireSize, KeyRimSize, KeyOffset, KeyMaker, KeyLoadIndex, KeySpeedIndex,
}

var (
	offsetDigits  = regexp.MustCompile(`(?i)et\s*(\d+)`)
	tireDimension = regexp.MustCompile(`(\d{3})/(\d{2})R(\d{2})`)
)

// ExtractWheelTireInfo pulls wheel and tire attributes out of a table.
// Phase one searches all cell values for the high-confidence patterns;
// phase two falls back to column-name heuristics for unresolved keys.
func ExtractWheelTireInfo(table RawTable) WheelTireInfo {
	info := make(WheelTireInfo)

	for _, vp := range wheelTireValuePatterns {
		if _, done := info[vp.key]; done {
			continue
		}
	scan:
		for _, col := range table.Columns {
			for _, value := range table.Column(col) {
				if match := vp.pattern.FindString(value); match != "" {
					info[vp.key] = match
					break scan
				}
			}
		}
	}

	for _, key := range wheelTireKeys {
		if _, done := info[key]; done {
			continue
		}
		if value, ok := findWheelTireColumn(table, wheelTireColumnAliases[key]); ok {
			info[key] = value
		}
	}

	normalizeOffset(info)
	return info
}

func findWheelTireColumn(table RawTable, aliases []string) (string, bool) {
	for _, alias := range aliases {
		for _, col := range table.Columns {
			normalized := strings.ToLower(strings.TrimSpace(col))
			normalized = strings.NewReplacer("-", "", "_", "").Replace(normalized)
			if !strings.Contains(normalized, alias) {
				continue
			}
			for _, value := range distinctValues(table.Column(col)) {
				if usableValue(value) {
					return value, true
				}
			}
		}
	}
	return "", false
}

// normalizeOffset canonicalizes offset values containing "et" to "ET <n>".
func normalizeOffset(info WheelTireInfo) {
	value, ok := info[KeyOffset]
	if !ok || !strings.Contains(strings.ToLower(value), "et") {
		return
	}
	if m := offsetDigits.FindStringSubmatch(value); m != nil {
		info[KeyOffset] = fmt.Sprintf("ET %s", m[1])
	}
}

// TireDimension parses the extracted tire size, when present, into its
// width/aspect-ratio/diameter components.
func (w WheelTireInfo) TireDimension() (TireDimension, bool) {
	m := tireDimension.FindStringSubmatch(w[KeyTireSize])
	if m == nil {
		return TireDimension{}, false
	}
	width, _ := strconv.Atoi(m[1])
	aspect, _ := strconv.Atoi(m[2])
	diameter, _ := strconv.Atoi(m[3])
	return TireDimension{Width: width, AspectRatio: aspect, Diameter: diameter}, true
}
