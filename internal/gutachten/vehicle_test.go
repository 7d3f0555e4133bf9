package gutachten

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVehicleInfo(t *testing.T) {
	table := RawTable{
		Columns: []string{"Fahrzeugtyp", "Hersteller", "Leistung"},
		Rows: [][]string{
			{"Golf VII", "Volkswagen", "110 kW"},
			{"Golf VII", "Volkswagen", "110 kW"},
		},
	}

	got := ExtractVehicleInfo(table)

	assert.Equal(t, "Golf VII", got["Fahrzeug"])
	assert.Equal(t, "Volkswagen", got["Hersteller"])
	assert.Equal(t, "Golf VII", got["Typ"])
}

func TestExtractVehicleInfo_SkipsPlaceholders(t *testing.T) {
	table := RawTable{
		Columns: []string{"Hersteller"},
		Rows: [][]string{
			{"nan"},
			{"--"},
			{"BMW AG"},
		},
	}

	got := ExtractVehicleInfo(table)
	assert.Equal(t, "BMW AG", got["Hersteller"])
}

func TestExtractVehicleInfo_NoMatchingColumns(t *testing.T) {
	table := RawTable{
		Columns: []string{"Spalte_1", "Spalte_2"},
		Rows:    [][]string{{"a", "b"}},
	}

	got := ExtractVehicleInfo(table)
	assert.Empty(t, got)
}

func TestUsableValue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"Volkswagen", true},
		{"", false},
		{"ab", false},
		{"nan", false},
		{"None", false},
		{"  VW  ", false}, // still too short after trimming
	}
	for _, tt := range tests {
		if got := usableValue(tt.value); got != tt.want {
			t.Errorf("usableValue(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
