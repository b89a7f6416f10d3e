package lifecycle

import (
	"strings"
	"unicode"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
)

// EditKind classifies an edit against the field classification table.
type EditKind int

const (
	EditNone EditKind = iota // no classified field changed
	EditSharedOnly
	EditAccountOnly
	EditBoth
)

// Edit is the result of classifying an update to a holding.
type Edit struct {
	Kind          EditKind
	SharedFields  []Field // shared fields that changed
	AccountFields []Field // account-specific fields that changed
}

// ClassifyEdit compares the updated holding against the stored one, field by
// field, using the class's classification table. The updated record's class
// decides which table applies.
func ClassifyEdit(stored, updated model.Holding) Edit {
	var edit Edit

	for _, f := range SharedFields(updated.Class) {
		if !fieldEqual(stored, updated, f) {
			edit.SharedFields = append(edit.SharedFields, f)
		}
	}
	for _, f := range AccountFields(updated.Class) {
		if !fieldEqual(stored, updated, f) {
			edit.AccountFields = append(edit.AccountFields, f)
		}
	}

	switch {
	case len(edit.SharedFields) > 0 && len(edit.AccountFields) > 0:
		edit.Kind = EditBoth
	case len(edit.SharedFields) > 0:
		edit.Kind = EditSharedOnly
	case len(edit.AccountFields) > 0:
		edit.Kind = EditAccountOnly
	default:
		edit.Kind = EditNone
	}
	return edit
}

// PropagateShared copies the changed shared fields of the edit from src onto
// sibling, leaving its account-specific fields untouched.
func PropagateShared(sibling *model.Holding, src model.Holding, edit Edit) {
	for _, f := range edit.SharedFields {
		copyField(sibling, src, f)
	}
}

// NormalizeName lowercases a name and strips punctuation and whitespace, for
// near-duplicate detection. "Acme Fund" and "acme-fund" normalize equal.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindNearDuplicate returns the first existing name whose normalized form
// matches the candidate while the exact names differ. Exact duplicates are a
// hard rejection handled by validation; near-duplicates only warrant a
// warning.
func FindNearDuplicate(name string, existing []string) (string, bool) {
	normalized := NormalizeName(name)
	for _, e := range existing {
		if e != name && NormalizeName(e) == normalized {
			return e, true
		}
	}
	return "", false
}
