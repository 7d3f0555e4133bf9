package gutachten

import (
	"strings"
)

// vehicleAliases maps each semantic target to the column-name fragments that
// identify it. The target itself always counts as an alias.
var vehicleAliases = map[string][]string{
	"fahrzeug":   {"fzg", "fahrzeugtyp", "typ", "modell", "vehicle"},
	"hersteller": {"manufacturer", "marke", "fabrikat"},
	"typ":        {"type", "fahrzeugtyp", "typen", "modell"},
}

// vehicleTargets fixes the scan order so that results are deterministic.
var vehicleTargets = []string{"fahrzeug", "hersteller", "typ"}

// ExtractVehicleInfo pulls representative vehicle attributes out of a table.
// For each target the first matching column wins, and within it the first
// value that looks like real data; there is no conflict resolution across
// multiple matching columns.
func ExtractVehicleInfo(table RawTable) VehicleInfo {
	info := make(VehicleInfo)

	for _, target := range vehicleTargets {
		aliases := append([]string{target}, vehicleAliases[target]...)
		if value, ok := findColumnValue(table, aliases); ok {
			info[capitalize(target)] = value
		}
	}
	return info
}

// findColumnValue scans the table's columns for any alias and returns the
// first usable value of the first matching column.
func findColumnValue(table RawTable, aliases []string) (string, bool) {
	for _, alias := range aliases {
		for _, col := range table.Columns {
			if !strings.Contains(strings.ToLower(strings.TrimSpace(col)), alias) {
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

func distinctValues(values []string) []string {
	seen := make(map[string]bool, len(values))
	var distinct []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	return distinct
}

// usableValue rejects placeholders that table extraction leaves behind.
func usableValue(v string) bool {
	v = strings.TrimSpace(v)
	if len(v) <= 2 {
		return false
	}
	switch strings.ToLower(v) {
	case "nan", "none":
		return false
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
