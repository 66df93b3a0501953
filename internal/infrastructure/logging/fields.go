package logging

import (
	"slices"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
)

const (
	categoryKey    = "Category"
	subCategoryKey = "SubCategory"
)

// sortedKeys keeps field order stable from one log line to the next.
func sortedKeys(extra map[ExtraKey]any) []ExtraKey {
	keys := make([]ExtraKey, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func zapFields(cat Category, sub SubCategory, extra map[ExtraKey]any) []zap.Field {
	fields := make([]zap.Field, 0, len(extra)+2)
	fields = append(fields, zap.String(categoryKey, string(cat)), zap.String(subCategoryKey, string(sub)))

	for _, k := range sortedKeys(extra) {
		if err, ok := extra[k].(error); ok {
			fields = append(fields, zap.NamedError(string(k), err))
			continue
		}
		fields = append(fields, zap.Any(string(k), extra[k]))
	}
	return fields
}

func zeroFields(e *zerolog.Event, cat Category, sub SubCategory, extra map[ExtraKey]any) *zerolog.Event {
	e = e.Str(categoryKey, string(cat)).Str(subCategoryKey, string(sub))

	for _, k := range sortedKeys(extra) {
		if err, ok := extra[k].(error); ok {
			e = e.AnErr(string(k), err)
			continue
		}
		e = e.Interface(string(k), extra[k])
	}
	return e
}
