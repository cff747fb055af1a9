package airtable_test

import (
	"reflect"
	"sync"
	"testing"

	airtable "github.com/tablekit/airtable"
)

func sampleRecord() map[string]any {
	return map[string]any{
		"id":          "recAdw9EjV90xbZ",
		"createdTime": "2023-05-22T21:24:15.333134Z",
		"fields":      map[string]any{},
	}
}

func TestValidateOne_IdentityOnSuccess(t *testing.T) {
	in := sampleRecord()
	out, err := airtable.ValidateOne(airtable.RecordDict, in)
	if err != nil {
		t.Fatalf("expected conforming record, got %v", err)
	}
	// the same map comes back, not a copy
	if reflect.ValueOf(out).Pointer() != reflect.ValueOf(in).Pointer() {
		t.Fatalf("expected the identical map to be returned")
	}

	// idempotent and non-mutating
	again, err := airtable.ValidateOne(airtable.RecordDict, in)
	if err != nil || !reflect.DeepEqual(again, in) {
		t.Fatalf("second validation diverged: out=%v err=%v", again, err)
	}
	if !reflect.DeepEqual(in, sampleRecord()) {
		t.Fatalf("input mutated by validation: %v", in)
	}
}

func TestValidateOne_ShapeMismatchListsObservedKeys(t *testing.T) {
	_, err := airtable.ValidateOne(airtable.RecordDict, map[string]any{"foo": "bar"})
	if err == nil {
		t.Fatalf("expected shape mismatch")
	}
	if !airtable.IsShapeMismatch(err) || airtable.IsTypeMismatch(err) {
		t.Fatalf("expected shape mismatch kind, got %v", err)
	}
	iss, ok := airtable.AsIssues(err)
	if !ok || len(iss) < 2 {
		t.Fatalf("expected head issue plus details, got %v", err)
	}
	head := iss[0]
	if head.Code != airtable.CodeShapeMismatch {
		t.Fatalf("head code: %v", head)
	}
	if keys, _ := head.Params["keys"].([]string); len(keys) != 1 || keys[0] != "foo" {
		t.Fatalf("expected observed keys [foo], got %v", head.Params)
	}
	if name, _ := head.Params["shape"].(string); name != "RecordDict" {
		t.Fatalf("expected target shape name, got %v", head.Params)
	}
	// details name the missing attributes in sorted order
	if iss[1].Code != airtable.CodeRequired || iss[1].Path != "/createdTime" {
		t.Fatalf("expected required /createdTime first, got %v", iss[1])
	}
}

func TestValidateOne_TypeMismatchForNonMapping(t *testing.T) {
	for _, v := range []any{"not a dict", 42, []any{}, true, nil} {
		_, err := airtable.ValidateOne(airtable.RecordDict, v)
		if err == nil || !airtable.IsTypeMismatch(err) {
			t.Fatalf("expected type mismatch for %#v, got %v", v, err)
		}
	}
}

func TestValidateMany_PreservesOrder(t *testing.T) {
	in := []any{
		sampleRecord(),
		map[string]any{"id": "recB", "createdTime": "2023-05-23T00:00:00.000Z", "fields": map[string]any{"Name": "Bob"}},
	}
	out, err := airtable.ValidateMany(airtable.RecordDict, in)
	if err != nil {
		t.Fatalf("expected conforming records, got %v", err)
	}
	if len(out) != 2 || out[0]["id"] != "recAdw9EjV90xbZ" || out[1]["id"] != "recB" {
		t.Fatalf("order not preserved: %v", out)
	}

	// []map[string]any sequences are accepted too
	ms := []map[string]any{sampleRecord()}
	if _, err := airtable.ValidateMany(airtable.RecordDict, ms); err != nil {
		t.Fatalf("expected []map sequence to validate, got %v", err)
	}
}

func TestValidateMany_TypeMismatchBeforeElements(t *testing.T) {
	_, err := airtable.ValidateMany(airtable.RecordDict, "not a list")
	if err == nil || !airtable.IsTypeMismatch(err) {
		t.Fatalf("expected type mismatch for non-sequence, got %v", err)
	}
}

func TestValidateMany_FirstFailureWins(t *testing.T) {
	in := []any{
		sampleRecord(),
		map[string]any{"foo": "bar"},
		map[string]any{"also": "bad"},
	}
	_, err := airtable.ValidateMany(airtable.RecordDict, in)
	if err == nil {
		t.Fatalf("expected failure")
	}
	iss, ok := airtable.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected issues, got %v", err)
	}
	if iss[0].Path != "/1" {
		t.Fatalf("expected failure anchored at element 1, got %v", iss[0])
	}
}

func TestIsErrorValue(t *testing.T) {
	cases := []struct {
		v    any
		want bool
	}{
		{map[string]any{"error": "#ERROR!"}, true},
		{map[string]any{"error": "#DIV/0!"}, true},
		{map[string]any{"specialValue": "NaN"}, true},
		{map[string]any{"error": "x", "extra": 1}, false},
		{map[string]any{}, false},
		{map[string]any{"value": 1}, false},
		{"not a dict", false},
		{nil, false},
		{[]any{map[string]any{"error": "x"}}, false},
	}
	for _, tc := range cases {
		if got := airtable.IsErrorValue(tc.v); got != tc.want {
			t.Fatalf("IsErrorValue(%#v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

// Checker construction is memoized per registry; concurrent first use must
// not race or change results.
func TestRegistry_ConcurrentFirstUse(t *testing.T) {
	reg := airtable.NewRegistry()
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reg.ValidateOne(airtable.RecordDict, sampleRecord())
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: %v", i, err)
		}
	}
}
