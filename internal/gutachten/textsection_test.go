package gutachten

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSectionExtractor_SectionBoundaries(t *testing.T) {
	extractor := NewTextSectionExtractor([]string{"A01", "A02", "A03", "A04"})
	lines := []string{
		"A01 Die Verwendung ist nur an Fahrzeugen",
		"mit serienmäßigem Fahrwerk zulässig.",
		"A03 Nach Durchführung der Änderung ist eine",
		"Änderungsabnahme    erforderlich.",
		"Prüfort und Prüfdatum",
		"A04 Diese Zeile liegt hinter dem Ende.",
	}

	got := extractor.Extract(lines)

	assert.Equal(t, map[string]string{
		"A01": "Die Verwendung ist nur an Fahrzeugen mit serienmäßigem Fahrwerk zulässig.",
		"A03": "Nach Durchführung der Änderung ist eine Änderungsabnahme erforderlich.",
	}, got)
}

func TestTextSectionExtractor_BoilerplateSuppression(t *testing.T) {
	extractor := NewTextSectionExtractor([]string{"A01", "A02"})
	lines := []string{
		"A01 Beschreibung vor dem Briefkopf",
		"Technologiezentrum Musterstadt",
		"Seite 2 von 4",
		"A02 Beschreibung nach dem Briefkopf",
	}

	got := extractor.Extract(lines)

	// the letterhead interrupts A01 before it could be flushed
	assert.NotContains(t, got, "A01")
	assert.Equal(t, "Beschreibung nach dem Briefkopf", got["A02"])
}

func TestTextSectionExtractor_UnknownCodesDropped(t *testing.T) {
	extractor := NewTextSectionExtractor([]string{"A01"})
	lines := []string{
		"A01 Bekannter Code mit Beschreibung",
		"A99 Unbekannter Code mit Beschreibung",
	}

	got := extractor.Extract(lines)

	assert.Equal(t, map[string]string{"A01": "Bekannter Code mit Beschreibung"}, got)
}

func TestTextSectionExtractor_LastSectionFlushedAtDocumentEnd(t *testing.T) {
	extractor := NewTextSectionExtractor([]string{"155"})
	lines := []string{
		"155 Reifenfabrikat und -typ sind",
		"nicht vorgeschrieben.",
	}

	got := extractor.Extract(lines)

	assert.Equal(t, "Reifenfabrikat und -typ sind nicht vorgeschrieben.", got["155"])
}

func TestTextSectionExtractor_SeparatorVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"space separator", "A01 Beschreibung"},
		{"dot separator", "A01.Beschreibung"},
		{"colon separator", "A01:Beschreibung"},
		{"paren separator", "A01)Beschreibung"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewTextSectionExtractor([]string{"A01"})
			got := extractor.Extract([]string{tt.line})
			assert.Equal(t, "Beschreibung", got["A01"])
		})
	}
}

func TestTextSectionExtractor_EmptyInput(t *testing.T) {
	extractor := NewTextSectionExtractor(nil)
	assert.Empty(t, extractor.Extract(nil))
}
