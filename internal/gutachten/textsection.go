package gutachten

import (
	"regexp"
	"strings"
)

// Layout markers of the Gutachten condition-code section. The end marker
// terminates extraction for the whole document; the noise marker is the
// letterhead that printers reprint mid-column and that must never be glued
// onto a description.
const (
	endOfConditionsMarker = "Prüfort und Prüfdatum"
	boilerplateMarker     = "Technologiezentrum"
)

var (
	// codeHeaderPattern matches a line opening a new condition-code section:
	// the code, a separator (whitespace, dot, colon or closing paren), then
	// the first slice of its description.
	codeHeaderPattern = regexp.MustCompile(`^([A-Z][0-9]{1,3}[a-z]?|[0-9]{2,3})[\s.:)](.+)`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// sectionState is the per-line scanner state.
type sectionState int

const (
	stateCollecting sectionState = iota
	stateSuppressed
)

// TextSectionExtractor recovers code -> description pairs from page text by
// detecting where one code's descriptive text ends and the next begins.
// Only codes already known in the store are committed; numbered prose
// headings match the header pattern too and must not become codes.
type TextSectionExtractor struct {
	knownCodes map[string]bool
}

// NewTextSectionExtractor creates an extractor that accepts only the given
// known codes.
func NewTextSectionExtractor(knownCodes []string) *TextSectionExtractor {
	known := make(map[string]bool, len(knownCodes))
	for _, code := range knownCodes {
		known[strings.TrimSpace(code)] = true
	}
	return &TextSectionExtractor{knownCodes: known}
}

// Extract scans the page-ordered document lines and returns the recovered
// code descriptions. It never fails: malformed lines are treated as
// continuation text, which at worst produces an over-long description.
func (e *TextSectionExtractor) Extract(lines []string) map[string]string {
	result := make(map[string]string)
	state := stateCollecting
	section := ""

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if strings.Contains(line, endOfConditionsMarker) {
			// flush the pending section, then stop scanning entirely;
			// nothing after the end marker belongs to the conditions
			e.commit(section, result)
			return e.cleanup(result)
		}

		if strings.Contains(line, boilerplateMarker) {
			state = stateSuppressed
			section = ""
			continue
		}

		if codeHeaderPattern.MatchString(line) {
			if state == stateCollecting && section != "" {
				e.commit(section, result)
			}
			state = stateCollecting
			section = line
			continue
		}

		if state == stateCollecting && section != "" {
			section += " " + line
		}
	}

	// document ended while still collecting: the last section counts too
	if state == stateCollecting {
		e.commit(section, result)
	}
	return e.cleanup(result)
}

// commit re-matches the buffered section against the header pattern and
// records the code -> description pair when the code is known.
func (e *TextSectionExtractor) commit(section string, result map[string]string) {
	if section == "" {
		return
	}
	m := codeHeaderPattern.FindStringSubmatch(section)
	if m == nil {
		return
	}
	code := strings.TrimSpace(m[1])
	if !e.knownCodes[code] {
		return
	}
	result[code] = strings.TrimSpace(m[2])
}

// cleanup collapses whitespace runs in every committed description.
func (e *TextSectionExtractor) cleanup(result map[string]string) map[string]string {
	for code, text := range result {
		result[code] = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	}
	return result
}
