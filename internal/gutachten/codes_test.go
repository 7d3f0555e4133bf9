package gutachten

import (
	"reflect"
	"testing"
)

func TestFindConditionCodes_CodeFamilies(t *testing.T) {
	table := RawTable{
		Columns: []string{"Auflagen und Hinweise"},
		Rows: [][]string{
			{"A01, B123a"},
			{"155 / 12A"},
			{"NoH Lim"},
			{"K1a T84 V19 X77"},
		},
	}

	got := FindConditionCodes([]RawTable{table})
	want := []string{"12A", "155", "A01", "B123a", "K1a", "Lim", "NoH", "T84", "V19", "X77"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindConditionCodes() = %v, want %v", got, want)
	}
}

func TestFindConditionCodes_RejectsEmbeddedTokens(t *testing.T) {
	table := RawTable{
		Columns: []string{"Auflagen"},
		Rows: [][]string{
			{"XA02Y"},    // code glued into a longer run
			{"A0234"},    // too many digits
			{"NoHx"},     // suffix after a named code
			{"abc a02x"}, // lowercase start
		},
	}

	got := FindConditionCodes([]RawTable{table})
	if len(got) != 0 {
		t.Errorf("expected no codes, got %v", got)
	}
}

func TestFindConditionCodes_ColumnFiltering(t *testing.T) {
	tests := []struct {
		name   string
		column string
		want   int
	}{
		{"allowed auflagen column", "Auflagen und Hinweise", 1},
		{"allowed tire column", "Reifenbezogene Auflagen und Hinweise", 1},
		{"allowed with separators", "Auflagen- und Hinweise", 1},
		{"excluded vehicle type", "Fahrzeugtyp", 0},
		{"excluded approval number", "ABE/EWG-Nr.", 0},
		{"unrelated column", "Bemerkungen", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := RawTable{
				Columns: []string{tt.column},
				Rows:    [][]string{{"A02"}},
			}
			got := FindConditionCodes([]RawTable{table})
			if len(got) != tt.want {
				t.Errorf("column %q: got %v codes, want %d", tt.column, got, tt.want)
			}
		})
	}
}

func TestFindConditionCodes_DeduplicatesAcrossTables(t *testing.T) {
	first := RawTable{Columns: []string{"Auflagen"}, Rows: [][]string{{"A02 A03"}}}
	second := RawTable{Columns: []string{"Auflagen und Hinweise"}, Rows: [][]string{{"A02"}}}

	got := FindConditionCodes([]RawTable{first, second})
	want := []string{"A02", "A03"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindConditionCodes() = %v, want %v", got, want)
	}
}

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Reifenbezogene Auflagen und Hinweise", "reifenbezogeneauflagenundhinweise"},
		{" Auflagen- und Hinweise ", "auflagenundhinweise"},
		{"ABE/EWG-Nr", "abeewgnr"},
		{"Spalte\r\n1", "spalte1"},
	}
	for _, tt := range tests {
		if got := normalizeColumn(tt.in); got != tt.want {
			t.Errorf("normalizeColumn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
