package gutachten

import (
	"fmt"
)

// CodeStore is the external persistence collaborator for condition codes.
// Implementations must apply UpsertAll atomically: either every entry is
// written or none is, and an entry's updated_at only moves when its
// description actually changed.
type CodeStore interface {
	GetAll() ([]ConditionCode, error)
	GetByCode(code string) (*ConditionCode, error)
	UpsertAll(entries []ConditionCode) error
	Delete(code string) error
}

// Reconciler merges codes found in tables with descriptions recovered from
// the document text and writes the result to the code store.
type Reconciler struct {
	store CodeStore
}

// NewReconciler creates a reconciler over the given store.
func NewReconciler(store CodeStore) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile resolves a description for every extracted code and upserts the
// result in one transaction. Description precedence, highest first: text
// extracted from the PDF, the static dictionary, the no-description sentinel.
//
// The resolved entries are returned even when persistence fails, so callers
// can still present the extraction result; the error reports the failed
// write ("extraction succeeded, persistence failed").
func (r *Reconciler) Reconcile(codes []string, textDescriptions map[string]string) ([]ConditionCode, error) {
	entries := make([]ConditionCode, 0, len(codes))
	for _, code := range codes {
		entries = append(entries, ConditionCode{
			Code:        code,
			Description: ResolveDescription(code, textDescriptions),
		})
	}

	if err := r.store.UpsertAll(entries); err != nil {
		return entries, fmt.Errorf("failed to persist condition codes: %w", err)
	}
	return entries, nil
}

// ResolveDescription applies the description precedence for one code.
func ResolveDescription(code string, textDescriptions map[string]string) string {
	if desc := textDescriptions[code]; desc != "" {
		return desc
	}
	if desc := StaticCodeTexts[code]; desc != "" {
		return desc
	}
	return NoDescription
}

// DescriptionMap resolves descriptions for a whole code set at once, used to
// feed the freedom analyzer.
func DescriptionMap(codes []string, textDescriptions map[string]string) map[string]string {
	resolved := make(map[string]string, len(codes))
	for _, code := range codes {
		resolved[code] = ResolveDescription(code, textDescriptions)
	}
	return resolved
}
