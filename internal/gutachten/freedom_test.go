package gutachten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreedomAnalyzer_EmptyCodeSet(t *testing.T) {
	analyzer := NewFreedomAnalyzer()

	result := analyzer.Analyze(nil, nil, nil, nil)

	assert.False(t, result.IsFree)
	assert.Equal(t, -10, result.Rating)
	assert.Equal(t, 70, result.Confidence)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, ReasonNeutral, result.Reasons[0].Type)
	assert.Contains(t, result.Summary, "Eintragung notwendig")
}

func TestFreedomAnalyzer_PositiveCodes(t *testing.T) {
	analyzer := NewFreedomAnalyzer()
	descriptions := map[string]string{
		"A02": "Keine Eintragung erforderlich",
		"A08": "Verwendung ohne Änderungsabnahme zulässig",
	}

	result := analyzer.Analyze([]string{"A02", "A08"}, descriptions, nil, nil)

	assert.True(t, result.IsFree)
	assert.Equal(t, 80, result.Rating)
	assert.Equal(t, 80, result.Confidence)
	require.Len(t, result.ConditionCodes, 2)
	for _, code := range result.ConditionCodes {
		assert.Equal(t, "positive", code.Impact)
	}
	assert.Contains(t, result.Summary, "Eintragungsfreiheit")
	assert.NotContains(t, result.Summary, "eingeschränkt")
}

func TestFreedomAnalyzer_ContradictoryCodes(t *testing.T) {
	analyzer := NewFreedomAnalyzer()

	result := analyzer.Analyze([]string{"A02", "A03"}, nil, nil, nil)

	// +40 (A02) -50 (A03) -30 (contradiction)
	assert.False(t, result.IsFree)
	assert.Equal(t, -40, result.Rating)
	assert.Equal(t, 60, result.Confidence)

	var contradictionReason bool
	for _, reason := range result.Reasons {
		if reason.Type == ReasonNegative && reason.Text == "Widersprüchliche Codes gefunden (A02 und A03) - im Zweifelsfall ist Eintragung erforderlich" {
			contradictionReason = true
		}
	}
	assert.True(t, contradictionReason, "expected contradiction reason in trail")
}

func TestFreedomAnalyzer_UnknownCodeIsNeutral(t *testing.T) {
	analyzer := NewFreedomAnalyzer()

	result := analyzer.Analyze([]string{"X77"}, nil, nil, nil)

	assert.False(t, result.IsFree, "neutral codes alone must not grant freedom")
	assert.Equal(t, 0, result.Rating)
	require.Len(t, result.ConditionCodes, 1)
	assert.Equal(t, "neutral", result.ConditionCodes[0].Impact)
	assert.Equal(t, NoDescription, result.ConditionCodes[0].Description)
	assert.Contains(t, result.Reasons[0].Text, "konnte nicht bewertet werden")
}

func TestFreedomAnalyzer_ConditionalCodeNeedsReview(t *testing.T) {
	analyzer := NewFreedomAnalyzer()

	result := analyzer.Analyze([]string{"A04"}, map[string]string{"A04": "Abstimmung erforderlich"}, nil, nil)

	assert.Equal(t, 0, result.Rating)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, ReasonNeutral, result.Reasons[0].Type)
	assert.Contains(t, result.Reasons[0].Text, "weitere Bewertung")
}

func TestFreedomAnalyzer_ConfidenceCapsAtTwentyBonus(t *testing.T) {
	analyzer := NewFreedomAnalyzer()
	codes := []string{"A02", "A04", "A05", "A06", "A07", "A09"}

	result := analyzer.Analyze(codes, nil, nil, nil)

	// 70 base + min(6*5, 20)
	assert.Equal(t, 90, result.Confidence)
}

func TestFreedomAnalyzer_LowConfidenceCaveat(t *testing.T) {
	analyzer := NewFreedomAnalyzer()

	result := analyzer.Analyze([]string{"A02"}, nil, nil, nil)

	assert.True(t, result.IsFree)
	assert.Equal(t, 75, result.Confidence)
	assert.Contains(t, result.Summary, "eingeschränkt")
}
