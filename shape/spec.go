package shape

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Spec validates a single attribute value at a given path. Specs compose by
// decoration (Nullable, ListOf, OneOf) rather than by subclassing, so a shape
// stays a plain data description.
type Spec struct {
	check func(path string, v any) Issues
	kind  string // human-readable expectation, used in variant hints
}

// Check runs the spec against v, reporting issues anchored at path.
func (s Spec) Check(path string, v any) Issues {
	if s.check == nil {
		return nil
	}
	return s.check(path, v)
}

// Kind returns the spec's human-readable expectation (e.g. "string",
// "list<string|number>").
func (s Spec) Kind() string { return s.kind }

// KindOf names the JSON-ish kind of a decoded value for diagnostics.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func invalidType(path, want string, v any) Issues {
	return Issues{Issue{
		Path:    path,
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("expected %s, got %s", want, KindOf(v)),
		Params:  map[string]any{"expected": want, "got": KindOf(v)},
	}}
}

// String accepts exactly string values. No coercion from other kinds.
func String() Spec {
	return Spec{kind: "string", check: func(path string, v any) Issues {
		if _, ok := v.(string); !ok {
			return invalidType(path, "string", v)
		}
		return nil
	}}
}

// Bool accepts exactly bool values.
func Bool() Spec {
	return Spec{kind: "bool", check: func(path string, v any) Issues {
		if _, ok := v.(bool); !ok {
			return invalidType(path, "bool", v)
		}
		return nil
	}}
}

// Int accepts Go integer kinds and integral json.Number values. Floats are
// rejected: the decode driver preserves json.Number, so a fractional number
// never silently truncates.
func Int() Spec {
	return Spec{kind: "integer", check: func(path string, v any) Issues {
		if isInt(v) {
			return nil
		}
		return invalidType(path, "integer", v)
	}}
}

// Float accepts any numeric value, integral or not.
func Float() Spec {
	return Spec{kind: "number", check: func(path string, v any) Issues {
		if isNumber(v) {
			return nil
		}
		return invalidType(path, "number", v)
	}}
}

// Literal accepts only the exact string want.
func Literal(want string) Spec {
	return Spec{kind: fmt.Sprintf("literal %q", want), check: func(path string, v any) Issues {
		s, ok := v.(string)
		if !ok {
			return invalidType(path, "string", v)
		}
		if s != want {
			return Issues{Issue{
				Path:    path,
				Code:    CodeInvalidLiteral,
				Message: fmt.Sprintf("expected %q, got %q", want, s),
				Params:  map[string]any{"expected": want, "got": s},
			}}
		}
		return nil
	}}
}

// Any accepts every value, including null.
func Any() Spec {
	return Spec{kind: "any", check: func(string, any) Issues { return nil }}
}

// ListOf accepts a []any whose every element conforms to el. Element issues
// are anchored under the element index.
func ListOf(el Spec) Spec {
	return Spec{kind: "list<" + el.kind + ">", check: func(path string, v any) Issues {
		items, ok := v.([]any)
		if !ok {
			return invalidType(path, "array", v)
		}
		var iss Issues
		for i, item := range items {
			if i2 := el.Check(fmt.Sprintf("%s/%d", path, i), item); len(i2) > 0 {
				iss = AppendIssues(iss, i2...)
			}
		}
		return iss
	}}
}

// MapOf accepts a map[string]any whose every value conforms to el. Keys are
// arbitrary strings.
func MapOf(el Spec) Spec {
	return Spec{kind: "map<" + el.kind + ">", check: func(path string, v any) Issues {
		m, ok := v.(map[string]any)
		if !ok {
			return invalidType(path, "object", v)
		}
		var iss Issues
		for _, k := range sortedMapKeys(m) {
			if i2 := el.Check(path+"/"+escapePointer(k), m[k]); len(i2) > 0 {
				iss = AppendIssues(iss, i2...)
			}
		}
		return iss
	}}
}

// Ref accepts an object conforming to the given shape. Nested issues are
// anchored under the attribute path.
func Ref(s *Shape) Spec {
	return Spec{kind: s.Name(), check: func(path string, v any) Issues {
		m, ok := v.(map[string]any)
		if !ok {
			return invalidType(path, s.Name(), v)
		}
		return s.Check(m).Rebase(path)
	}}
}

// OneOf accepts a value conforming to at least one variant. The variant set
// is closed: a value matching none of them is rejected with the variant
// kinds listed in the hint.
func OneOf(variants ...Spec) Spec {
	kinds := make([]string, 0, len(variants))
	for _, sp := range variants {
		kinds = append(kinds, sp.kind)
	}
	kind := strings.Join(kinds, "|")
	return Spec{kind: kind, check: func(path string, v any) Issues {
		for _, sp := range variants {
			if len(sp.Check(path, v)) == 0 {
				return nil
			}
		}
		return Issues{Issue{
			Path:    path,
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("value of kind %s matches no variant", KindOf(v)),
			Hint:    "expected one of: " + kind,
			Params:  map[string]any{"got": KindOf(v)},
		}}
	}}
}

// Nullable wraps the spec to accept null in addition to its own kinds.
func (s Spec) Nullable() Spec {
	prev := s.check
	out := s
	out.check = func(path string, v any) Issues {
		if v == nil {
			return nil
		}
		if prev == nil {
			return nil
		}
		return prev(path, v)
	}
	return out
}

func isInt(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := strconv.ParseInt(string(n), 10, 64)
		return err == nil
	}
	return false
}

func isNumber(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case json.Number:
		_, err := strconv.ParseFloat(string(n), 64)
		return err == nil
	}
	return false
}

// escapePointer escapes a key for use in a JSON Pointer path.
func escapePointer(k string) string {
	k = strings.ReplaceAll(k, "~", "~0")
	return strings.ReplaceAll(k, "/", "~1")
}
