package airtable

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tablekit/airtable/shape"
)

// Registry memoizes compiled shape checkers. Shapes are immutable, so a
// checker built once is valid for the process lifetime and the cache never
// invalidates. Construction is idempotent: losing a LoadOrStore race wastes
// one compile, nothing more.
//
// A Registry is safe for concurrent use. The package-level ValidateOne and
// ValidateMany go through a default registry; clients that want their own
// cache lifetime own a Registry directly (Client does).
type Registry struct {
	checkers sync.Map // *shape.Shape -> *shape.Checker
}

// NewRegistry returns an empty checker registry.
func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) checkerFor(s *shape.Shape) *shape.Checker {
	if c, ok := r.checkers.Load(s); ok {
		return c.(*shape.Checker)
	}
	c, _ := r.checkers.LoadOrStore(s, shape.Compile(s))
	return c.(*shape.Checker)
}

// ValidateOne checks that v is a mapping structurally conforming to s and
// returns the identical map: no copy, no coercion, validation is a
// predicate, not a transform.
//
// A non-mapping v fails with a type_mismatch naming the received kind. A
// mapping that fails conformance gets a shape_mismatch heading the issue
// list with the observed key set and target shape name, followed by
// per-attribute detail issues.
func (r *Registry) ValidateOne(s *shape.Shape, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeMismatch("object", v)
	}
	iss := r.checkerFor(s).Check(m)
	if len(iss) == 0 {
		return m, nil
	}
	keys := mapKeys(m)
	head := Issue{
		Path:    "/",
		Code:    CodeShapeMismatch,
		Message: fmt.Sprintf("map with keys %v is not %s", keys, s.Name()),
		Params:  map[string]any{"shape": s.Name(), "keys": keys},
	}
	return nil, append(Issues{head}, iss...)
}

// ValidateMany applies ValidateOne to each element of vs in order,
// preserving order and failing on the first nonconforming element with its
// issues re-anchored under the element index. vs must be a sequence
// ([]any or []map[string]any); anything else fails with a type_mismatch
// before any element is inspected.
func (r *Registry) ValidateMany(s *shape.Shape, vs any) ([]map[string]any, error) {
	var seq []any
	switch t := vs.(type) {
	case []any:
		seq = t
	case []map[string]any:
		seq = make([]any, len(t))
		for i, m := range t {
			seq[i] = m
		}
	default:
		return nil, typeMismatch("array", vs)
	}
	out := make([]map[string]any, 0, len(seq))
	for i, v := range seq {
		m, err := r.ValidateOne(s, v)
		if err != nil {
			if iss, ok := AsIssues(err); ok {
				return nil, iss.Rebase(fmt.Sprintf("/%d", i))
			}
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func typeMismatch(want string, v any) Issues {
	return Issues{Issue{
		Path:    "/",
		Code:    CodeTypeMismatch,
		Message: fmt.Sprintf("expected %s, got %s", want, shape.KindOf(v)),
		Params:  map[string]any{"expected": want, "got": shape.KindOf(v)},
	}}
}

// mapKeys returns m's keys in ascending order for diagnostics.
func mapKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// defaultRegistry backs the package-level entry points.
var defaultRegistry = NewRegistry()

// ValidateOne checks v against s using the default registry. See
// Registry.ValidateOne.
func ValidateOne(s *shape.Shape, v any) (map[string]any, error) {
	return defaultRegistry.ValidateOne(s, v)
}

// ValidateMany checks each element of vs against s using the default
// registry. See Registry.ValidateMany.
func ValidateMany(s *shape.Shape, vs any) ([]map[string]any, error) {
	return defaultRegistry.ValidateMany(s, vs)
}

// IsErrorValue reports whether v is an airtable-error-shaped field value: a
// mapping whose key set is exactly {"error"} (formula failure) or exactly
// {"specialValue"} (NaN marker). Any other input, mapping or not, yields
// false; this predicate never fails.
//
// The key-set match is deliberately exact: {"error", "extra"} is not treated
// as an error value. If the service ever adds attributes to error payloads
// they will stop being detected here.
func IsErrorValue(v any) bool {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return false
	}
	_, hasErr := m["error"]
	_, hasNaN := m["specialValue"]
	return hasErr || hasNaN
}
