package audit

import (
	"github.com/hilthontt/personnel/internal/domain"
)

// Diff returns the tracked fields whose values differ between before and
// after, in schema order. A nil before means the subject was just created and
// yields no changes. Diff has no side effects.
func Diff(schema Schema, before, after domain.Snapshot) []domain.FieldChange {
	if before == nil {
		return []domain.FieldChange{}
	}
	return diffSnapshots(schema, before, after)
}

func diffSnapshots(schema Schema, before, after domain.Snapshot) []domain.FieldChange {
	changes := make([]domain.FieldChange, 0)

	for _, field := range schema.fields {
		oldValue, hadOld := before.Value(field.Name)
		newValue, hasNew := after.Value(field.Name)

		if sameValue(field.Kind, oldValue, hadOld, newValue, hasNew) {
			continue
		}

		changes = append(changes, domain.FieldChange{
			Field:    field.Name,
			OldValue: oldValue,
			NewValue: newValue,
		})
	}

	return changes
}

// sameValue treats an absent field as distinct from every present value,
// null included.
func sameValue(kind FieldKind, a any, aPresent bool, b any, bPresent bool) bool {
	if aPresent != bPresent {
		return false
	}
	if !aPresent {
		return true
	}
	return equalValues(kind, a, b)
}
