package gutachten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWheelTireInfo_ValuePatterns(t *testing.T) {
	table := RawTable{
		Columns: []string{"Spalte_1", "Spalte_2"},
		Rows: [][]string{
			{"Radgröße 7,5x16", "Reifen 205/55R16"},
			{"Einpresstiefe ET35", "91V"},
		},
	}

	got := ExtractWheelTireInfo(table)

	assert.Equal(t, "205/55R16", got[KeyTireSize])
	assert.Equal(t, "7,5x16", got[KeyRimSize])
	assert.Equal(t, "ET 35", got[KeyOffset], "offset is canonicalized")
}

func TestExtractWheelTireInfo_RimSizeCaseVariants(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"lowercase x", "Felge 7,5x16", "7,5x16"},
		{"uppercase X", "Felge 7,5X16", "7,5X16"},
		{"uppercase J", "Felge 8.5J19", "8.5J19"},
		{"lowercase j", "Felge 8.5j19", "8.5j19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := RawTable{
				Columns: []string{"Spalte_1"},
				Rows:    [][]string{{tt.cell}},
			}
			got := ExtractWheelTireInfo(table)
			assert.Equal(t, tt.want, got[KeyRimSize])
		})
	}
}

func TestExtractWheelTireInfo_ColumnAliasFallback(t *testing.T) {
	table := RawTable{
		Columns: []string{"Hersteller", "Tragfähigkeit"},
		Rows: [][]string{
			{"Borbet GmbH", "615 kg"},
		},
	}

	got := ExtractWheelTireInfo(table)

	assert.Equal(t, "Borbet GmbH", got[KeyMaker])
	assert.Equal(t, "615 kg", got[KeyLoadIndex])
}

func TestExtractWheelTireInfo_Empty(t *testing.T) {
	table := RawTable{
		Columns: []string{"Spalte_1"},
		Rows:    [][]string{{"kein relevanter Inhalt"}},
	}

	got := ExtractWheelTireInfo(table)
	assert.NotContains(t, got, KeyTireSize)
	assert.NotContains(t, got, KeyRimSize)
}

func TestWheelTireInfo_TireDimension(t *testing.T) {
	info := WheelTireInfo{KeyTireSize: "205/55R16"}

	dim, ok := info.TireDimension()
	require.True(t, ok)
	assert.Equal(t, TireDimension{Width: 205, AspectRatio: 55, Diameter: 16}, dim)

	_, ok = WheelTireInfo{}.TireDimension()
	assert.False(t, ok)
}

func TestNormalizeOffset(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ET35", "ET 35"},
		{"et 42", "ET 42"},
		{"ET  7", "ET 7"},
	}
	for _, tt := range tests {
		info := WheelTireInfo{KeyOffset: tt.in}
		normalizeOffset(info)
		assert.Equal(t, tt.want, info[KeyOffset])
	}
}
