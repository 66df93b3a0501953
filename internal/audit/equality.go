package audit

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/hilthontt/personnel/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const numberTolerance = 1e-9

var dateLayouts = []string{
	domain.DateLayout,
	time.RFC3339Nano,
	"2006-01-02",
}

// equalValues compares two present values under the rules of kind. Values of
// an unexpected type fall back to structural equality.
func equalValues(kind FieldKind, a, b any) bool {
	switch kind {
	case KindString:
		as, aok := a.(string)
		bs, bok := b.(string)
		if aok && bok {
			return strings.TrimSpace(as) == strings.TrimSpace(bs)
		}
	case KindEmail:
		as, aok := a.(string)
		bs, bok := b.(string)
		if aok && bok {
			return strings.EqualFold(strings.TrimSpace(as), strings.TrimSpace(bs))
		}
	case KindNumber:
		af, aok := toFloat(a)
		bf, bok := toFloat(b)
		if aok && bok {
			return floatsEqual(af, bf)
		}
	case KindDate:
		at, aok := toTime(a)
		bt, bok := toTime(b)
		if aok && bok {
			return at.Equal(bt)
		}
	case KindEnum:
		as, aok := a.(string)
		bs, bok := b.(string)
		if aok && bok {
			return as == bs
		}
	}
	return deepEqual(a, b)
}

// deepEqual is structural equality: maps by key regardless of order, slices
// element by element, numbers by value regardless of their Go type.
func deepEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && floatsEqual(af, bf)
	}

	if am, ok := toMap(a); ok {
		bm, ok := toMap(b)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, present := bm[k]
			if !present || !deepEqual(av, bv) {
				return false
			}
		}
		return true
	}

	if as, ok := toSlice(a); ok {
		bs, ok := toSlice(b)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !deepEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	if at, ok := a.(time.Time); ok {
		bt, ok := toTime(b)
		return ok && at.Equal(bt)
	}

	return reflect.DeepEqual(a, b)
}

func floatsEqual(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= numberTolerance*scale
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.Snapshot:
		return m, true
	case primitive.M:
		return m, true
	case primitive.D:
		out := make(map[string]any, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	}
	return nil, false
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case primitive.A:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	}
	return nil, false
}
