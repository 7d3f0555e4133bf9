package gutachten

import (
	"fmt"
)

// Fixed classification of condition codes for the registration-freedom
// decision. Positive codes explicitly permit use without registration,
// negative codes explicitly require registration, conditional codes need
// case-by-case judgement and carry no automatic score effect.
var (
	freedomPositive = map[string]bool{"A02": true, "A08": true}
	freedomNegative = map[string]bool{"A01": true, "A03": true}
	freedomConditional = map[string]bool{
		"A04": true, "A05": true, "A06": true, "A07": true, "A09": true,
		"A10": true, "A11": true, "A14": true, "A15": true,
	}
)

// contradictionPairs lists code pairs that are mutually exclusive in
// practice. Finding both members of a pair means the extraction or the
// document itself is contradictory, which costs rating and confidence.
// Currently only one pair is known.
var contradictionPairs = [][2]string{
	{"A02", "A03"},
}

// Scoring constants of the analyzer.
const (
	positiveWeight       = 40
	negativeWeight       = 50
	emptySetPenalty      = 10
	contradictionPenalty = 30

	baseConfidence          = 70
	maxCodesFactor          = 20
	codesFactorStep         = 5
	contradictionConfidence = 20
	caveatThreshold         = 80
)

// FreedomAnalyzer classifies an extracted code set as registration-free or
// not. It is a pure scorer over already-validated inputs and never fails.
type FreedomAnalyzer struct{}

// NewFreedomAnalyzer creates a new analyzer.
func NewFreedomAnalyzer() *FreedomAnalyzer {
	return &FreedomAnalyzer{}
}

// Analyze scores the code set and produces the full assessment. The
// descriptions map resolves code texts for the reasons; vehicle and
// wheel/tire info are carried for context and future rules.
func (a *FreedomAnalyzer) Analyze(
	codes []string,
	descriptions map[string]string,
	vehicleInfo VehicleInfo,
	wheelTireInfo WheelTireInfo,
) FreedomAssessment {
	var (
		reasons  []Reason
		assessed []AssessedCode
		rating   int
	)

	for _, code := range codes {
		description := descriptions[code]
		if description == "" {
			description = NoDescription
		}

		impact := "neutral"
		switch {
		case freedomPositive[code]:
			impact = "positive"
			rating += positiveWeight
			reasons = append(reasons, Reason{
				Type: ReasonPositive,
				Text: fmt.Sprintf("Code %s weist auf Eintragungsfreiheit hin: %s", code, description),
			})
		case freedomNegative[code]:
			impact = "negative"
			rating -= negativeWeight
			reasons = append(reasons, Reason{
				Type: ReasonNegative,
				Text: fmt.Sprintf("Code %s weist auf Eintragungspflicht hin: %s", code, description),
			})
		case freedomConditional[code]:
			reasons = append(reasons, Reason{
				Type: ReasonNeutral,
				Text: fmt.Sprintf("Code %s benötigt weitere Bewertung: %s", code, description),
			})
		default:
			reasons = append(reasons, Reason{
				Type: ReasonNeutral,
				Text: fmt.Sprintf("Code %s konnte nicht bewertet werden: %s", code, description),
			})
		}

		assessed = append(assessed, AssessedCode{
			Code:        code,
			Description: description,
			Impact:      impact,
		})
	}

	if len(codes) == 0 {
		reasons = append(reasons, Reason{
			Type: ReasonNeutral,
			Text: "Keine Auflagencodes gefunden - ohne Codes kann keine sichere Bewertung erfolgen",
		})
		rating -= emptySetPenalty
	}

	contradiction := a.hasContradiction(codes)
	if contradiction {
		reasons = append(reasons, Reason{
			Type: ReasonNegative,
			Text: "Widersprüchliche Codes gefunden (A02 und A03) - im Zweifelsfall ist Eintragung erforderlich",
		})
		rating -= contradictionPenalty
	}

	isFree := rating > 0
	confidence := a.confidence(len(codes), contradiction)

	return FreedomAssessment{
		IsFree:         isFree,
		Rating:         rating,
		Confidence:     confidence,
		Reasons:        reasons,
		ConditionCodes: assessed,
		Summary:        a.summary(isFree, confidence),
	}
}

func (a *FreedomAnalyzer) hasContradiction(codes []string) bool {
	present := make(map[string]bool, len(codes))
	for _, code := range codes {
		present[code] = true
	}
	for _, pair := range contradictionPairs {
		if present[pair[0]] && present[pair[1]] {
			return true
		}
	}
	return false
}

func (a *FreedomAnalyzer) confidence(codeCount int, contradiction bool) int {
	codesFactor := codeCount * codesFactorStep
	if codesFactor > maxCodesFactor {
		codesFactor = maxCodesFactor
	}

	confidence := baseConfidence + codesFactor
	if contradiction {
		confidence -= contradictionConfidence
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

func (a *FreedomAnalyzer) summary(isFree bool, confidence int) string {
	if isFree {
		summary := "Die Analyse deutet auf Eintragungsfreiheit hin. Es wurden Codes gefunden, die explizit " +
			"auf eine erlaubte Verwendung ohne Eintragung hinweisen."
		if confidence < caveatThreshold {
			summary += " Die Zuverlässigkeit dieser Analyse ist jedoch eingeschränkt."
		}
		return summary
	}
	return "Die Analyse deutet darauf hin, dass eine Eintragung notwendig ist. Es wurden Hinweise " +
		"gefunden, die eine Eintragungspflicht nahelegen."
}
