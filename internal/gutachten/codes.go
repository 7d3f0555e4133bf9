package gutachten

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// conditionCodePattern matches a complete condition-code token. The two
// generic alternations cover the whole observed family (A01, B123a, K1a,
// T84, V19, X77, 155, 12A); NoH and Lim are the only codes outside it.
// Tokens are cut on non-alphanumeric boundaries before matching, so a code
// embedded in a longer alphanumeric run never matches.
var conditionCodePattern = regexp.MustCompile(`^(?:[A-Z][0-9]{1,3}[a-z]?|[0-9]{2,3}[A-Z]?|NoH|Lim)$`)

// Columns eligible for code extraction, in normalized form. The deny list is
// checked first: vehicle/type-identifier columns are full of code-shaped
// tokens (type numbers, approval numbers) that are not condition codes.
var (
	codeAllowedColumns = []string{
		"reifenbezogeneauflagenundhinweise",
		"auflagenundhinweise",
		"auflagen",
	}
	codeExcludedColumns = []string{
		"handelsbezeichnung",
		"fahrzeugtyp",
		"abeewgnr",
		"typ",
		"abe",
		"ewgnr",
	}
)

// normalizeColumn lowercases a column name and strips separators so that
// "Reifenbezogene Auflagen und Hinweise" and "reifenbezogene-auflagen..."
// compare equal.
func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer("/", "", "-", "", " ", "", "\r", "", "\n", "")
	return replacer.Replace(name)
}

// FindConditionCodes extracts the set of condition codes from the allowed
// columns of the given tables, sorted lexicographically.
func FindConditionCodes(tables []RawTable) []string {
	found := make(map[string]bool)
	for _, table := range tables {
		collectTableCodes(table, found)
	}

	codes := make([]string, 0, len(found))
	for code := range found {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func collectTableCodes(table RawTable, found map[string]bool) {
	for _, col := range table.Columns {
		normalized := normalizeColumn(col)

		if containsAny(normalized, codeExcludedColumns) {
			continue
		}
		if !containsAny(normalized, codeAllowedColumns) {
			continue
		}

		for _, cell := range table.Column(col) {
			for _, code := range matchCodes(cell) {
				found[code] = true
			}
		}
	}
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// matchCodes returns every condition-code token in a cell value.
func matchCodes(cell string) []string {
	tokens := strings.FieldsFunc(cell, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var codes []string
	for _, token := range tokens {
		if conditionCodePattern.MatchString(token) {
			codes = append(codes, token)
		}
	}
	return codes
}
