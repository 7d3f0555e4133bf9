package gutachten

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ValidationProfile selects how aggressively tables are rejected.
type ValidationProfile string

const (
	// ProfilePermissive accepts any table with at least one non-empty cell.
	// This is the default: the later pipeline stages were hardened against
	// permissively validated input.
	ProfilePermissive ValidationProfile = "permissive"

	// ProfileStrict requires real tabular structure: at least 2x2, half of
	// every column filled, and one column with a dominant value pattern.
	ProfileStrict ValidationProfile = "strict"
)

var (
	leadingLetter = regexp.MustCompile(`^[A-Za-z]`)
	leadingDigit  = regexp.MustCompile(`^\d`)
)

// TableValidator decides whether an extracted RawTable is a real table or
// extraction noise. Validation is pure; results are memoized by content hash
// because interactive reprocessing validates identical tables repeatedly.
type TableValidator struct {
	profile ValidationProfile
	cache   *gocache.Cache
}

// NewTableValidator creates a validator with the given profile. An empty
// profile means permissive.
func NewTableValidator(profile ValidationProfile) *TableValidator {
	if profile == "" {
		profile = ProfilePermissive
	}
	return &TableValidator{
		profile: profile,
		cache:   gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// Profile returns the configured validation profile.
func (v *TableValidator) Profile() ValidationProfile { return v.profile }

// IsValid reports whether the table passes the configured profile.
func (v *TableValidator) IsValid(t RawTable) bool {
	key := strconv.FormatUint(t.ContentHash(), 16)
	if cached, found := v.cache.Get(key); found {
		return cached.(bool)
	}

	valid := v.check(t)
	v.cache.Set(key, valid, gocache.DefaultExpiration)
	return valid
}

func (v *TableValidator) check(t RawTable) bool {
	if t.RowCount() == 0 || t.ColCount() == 0 {
		return false
	}
	if v.profile == ProfileStrict {
		return v.checkStrict(t)
	}
	return hasAnyContent(t)
}

func hasAnyContent(t RawTable) bool {
	for _, row := range t.Rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return true
			}
		}
	}
	return false
}

func (v *TableValidator) checkStrict(t RawTable) bool {
	if t.RowCount() < 2 || t.ColCount() < 2 {
		return false
	}

	// every column at least half filled
	for c := 0; c < t.ColCount(); c++ {
		filled := 0
		for _, row := range t.Rows {
			if c < len(row) && strings.TrimSpace(row[c]) != "" {
				filled++
			}
		}
		if float64(filled)/float64(t.RowCount()) < 0.5 {
			return false
		}
	}

	// at least one column whose values follow a dominant pattern
	for c := 0; c < t.ColCount(); c++ {
		letterish, digitish := 0, 0
		for _, row := range t.Rows {
			if c >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[c])
			if leadingLetter.MatchString(cell) {
				letterish++
			}
			if leadingDigit.MatchString(cell) {
				digitish++
			}
		}
		total := float64(t.RowCount())
		if float64(letterish)/total > 0.7 || float64(digitish)/total > 0.7 {
			return true
		}
	}
	return false
}

// Filter returns only the tables that pass validation, preserving order.
func (v *TableValidator) Filter(tables []RawTable) []RawTable {
	var valid []RawTable
	for _, t := range tables {
		if v.IsValid(t) {
			valid = append(valid, t)
		}
	}
	return valid
}
