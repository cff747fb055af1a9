package airtable

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tablekit/airtable/shape"
)

// FieldValue is the closed union over the payload kinds an Airtable field
// can hold. The wire format carries no tag; ClassifyFieldValue derives the
// variant from structure once at the decode boundary so consumers never
// re-inspect keys.
type FieldValue interface {
	// Kind names the variant ("string", "attachments", "formulaError", ...).
	Kind() string
}

type (
	// StringValue is a plain text cell.
	StringValue string
	// IntValue is an integral numeric cell.
	IntValue int64
	// FloatValue is a fractional numeric cell.
	FloatValue float64
	// BoolValue is a checkbox cell.
	BoolValue bool
	// CollaboratorValue is a single-collaborator cell.
	CollaboratorValue Collaborator
	// CollaboratorEmailValue is a write-time collaborator reference by email.
	CollaboratorEmailValue CollaboratorEmail
	// BarcodeValue is a barcode cell.
	BarcodeValue Barcode
	// ButtonValue is a button cell.
	ButtonValue Button
	// StringListValue is a list of strings (multi-select, lookups, links).
	StringListValue []string
	// IntListValue is a list of integral numbers.
	IntListValue []int64
	// FloatListValue is a list of numbers with at least one fractional value.
	FloatListValue []float64
	// BoolListValue is a list of booleans.
	BoolListValue []bool
	// AttachmentListValue is an attachments cell.
	AttachmentListValue []Attachment
	// CollaboratorListValue is a multi-collaborator cell.
	CollaboratorListValue []Collaborator
	// CollaboratorEmailListValue is a write-time multi-collaborator reference.
	CollaboratorEmailListValue []CollaboratorEmail
	// FormulaErrorValue marks a formula evaluation failure.
	FormulaErrorValue struct{ Message string }
	// FormulaNaNValue marks a formula NaN result.
	FormulaNaNValue struct{}
)

func (StringValue) Kind() string                { return "string" }
func (IntValue) Kind() string                   { return "integer" }
func (FloatValue) Kind() string                 { return "number" }
func (BoolValue) Kind() string                  { return "bool" }
func (CollaboratorValue) Kind() string          { return "collaborator" }
func (CollaboratorEmailValue) Kind() string     { return "collaboratorEmail" }
func (BarcodeValue) Kind() string               { return "barcode" }
func (ButtonValue) Kind() string                { return "button" }
func (StringListValue) Kind() string            { return "strings" }
func (IntListValue) Kind() string               { return "integers" }
func (FloatListValue) Kind() string             { return "numbers" }
func (BoolListValue) Kind() string              { return "bools" }
func (AttachmentListValue) Kind() string        { return "attachments" }
func (CollaboratorListValue) Kind() string      { return "collaborators" }
func (CollaboratorEmailListValue) Kind() string { return "collaboratorEmails" }
func (FormulaErrorValue) Kind() string          { return "formulaError" }
func (FormulaNaNValue) Kind() string            { return "formulaNaN" }

// ClassifyFieldValue converts a decoded field value into its tagged variant.
// A nil input (field omitted as null) yields (nil, nil). Values outside the
// closed union fail with a shape_mismatch; the union never loosens to "any
// value".
func ClassifyFieldValue(v any) (FieldValue, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case int:
		return IntValue(t), nil
	case int64:
		return IntValue(t), nil
	case float32:
		return FloatValue(t), nil
	case float64:
		return FloatValue(t), nil
	case json.Number:
		if n, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return IntValue(n), nil
		}
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return nil, unclassifiable(v, "unparseable number")
		}
		return FloatValue(f), nil
	case map[string]any:
		return classifyObject(t)
	case []any:
		return classifyList(t)
	default:
		return nil, unclassifiable(v, "")
	}
}

// classifyObject discriminates the object-shaped variants by key set, then
// confirms conformance through the validator before building the payload.
func classifyObject(m map[string]any) (FieldValue, error) {
	if IsErrorValue(m) {
		if _, ok := m["specialValue"]; ok {
			if _, err := ValidateOne(FormulaNotANumberDict, m); err != nil {
				return nil, err
			}
			return FormulaNaNValue{}, nil
		}
		if _, err := ValidateOne(FormulaErrorDict, m); err != nil {
			return nil, err
		}
		msg, _ := m["error"].(string)
		return FormulaErrorValue{Message: msg}, nil
	}
	switch {
	case hasKey(m, "label"):
		v, err := ValidateOne(ButtonDict, m)
		if err != nil {
			return nil, err
		}
		var b Button
		if err := decodeInto(v, &b); err != nil {
			return nil, err
		}
		return ButtonValue(b), nil
	case hasKey(m, "text"):
		v, err := ValidateOne(BarcodeDict, m)
		if err != nil {
			return nil, err
		}
		var b Barcode
		if err := decodeInto(v, &b); err != nil {
			return nil, err
		}
		return BarcodeValue(b), nil
	case hasKey(m, "id"):
		v, err := ValidateOne(CollaboratorDict, m)
		if err != nil {
			return nil, err
		}
		var c Collaborator
		if err := decodeInto(v, &c); err != nil {
			return nil, err
		}
		return CollaboratorValue(c), nil
	case hasKey(m, "email"):
		v, err := ValidateOne(CollaboratorEmailDict, m)
		if err != nil {
			return nil, err
		}
		var c CollaboratorEmail
		if err := decodeInto(v, &c); err != nil {
			return nil, err
		}
		return CollaboratorEmailValue(c), nil
	}
	return nil, unclassifiable(m, "")
}

// classifyList discriminates the list-shaped variants by the kind of the
// elements. Elements must agree on one variant; mixed lists are rejected.
// An empty list carries no kind information and classifies as strings.
func classifyList(items []any) (FieldValue, error) {
	if len(items) == 0 {
		return StringListValue{}, nil
	}
	switch head := items[0].(type) {
	case string:
		out := make(StringListValue, 0, len(items))
		for i, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, mixedList(i, it)
			}
			out = append(out, s)
		}
		return out, nil
	case bool:
		out := make(BoolListValue, 0, len(items))
		for i, it := range items {
			b, ok := it.(bool)
			if !ok {
				return nil, mixedList(i, it)
			}
			out = append(out, b)
		}
		return out, nil
	case int, int64, float32, float64, json.Number:
		return classifyNumberList(items)
	case map[string]any:
		switch {
		case hasKey(head, "url") && hasKey(head, "id"):
			out, err := decodeObjectList[Attachment, AttachmentListValue](AttachmentDict, items)
			if err != nil {
				return nil, err
			}
			return out, nil
		case hasKey(head, "id"):
			out, err := decodeObjectList[Collaborator, CollaboratorListValue](CollaboratorDict, items)
			if err != nil {
				return nil, err
			}
			return out, nil
		case hasKey(head, "email"):
			out, err := decodeObjectList[CollaboratorEmail, CollaboratorEmailListValue](CollaboratorEmailDict, items)
			if err != nil {
				return nil, err
			}
			return out, nil
		}
		return nil, unclassifiable(head, "")
	default:
		return nil, mixedList(0, head)
	}
}

// classifyNumberList yields integers when every element is integral and
// numbers otherwise.
func classifyNumberList(items []any) (FieldValue, error) {
	ints := make(IntListValue, 0, len(items))
	floats := make(FloatListValue, 0, len(items))
	integral := true
	for i, it := range items {
		fv, err := ClassifyFieldValue(it)
		if err != nil {
			return nil, mixedList(i, it)
		}
		switch n := fv.(type) {
		case IntValue:
			ints = append(ints, int64(n))
			floats = append(floats, float64(n))
		case FloatValue:
			integral = false
			floats = append(floats, float64(n))
		default:
			return nil, mixedList(i, it)
		}
	}
	if integral {
		return ints, nil
	}
	return floats, nil
}

// decodeObjectList validates every element against s and decodes the lot
// into the typed list variant.
func decodeObjectList[E any, L ~[]E](s *shape.Shape, items []any) (L, error) {
	validated, err := ValidateMany(s, items)
	if err != nil {
		return nil, err
	}
	out := make(L, 0, len(validated))
	for _, m := range validated {
		var e E
		if err := decodeInto(m, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func hasKey(m map[string]any, k string) bool {
	_, ok := m[k]
	return ok
}

func unclassifiable(v any, hint string) error {
	if hint == "" {
		hint = "expected a scalar, scalar list, attachment/collaborator list, or a collaborator/barcode/button/formula payload"
	}
	return Issues{Issue{
		Path:    "/",
		Code:    CodeShapeMismatch,
		Message: fmt.Sprintf("value of kind %s is not a recognized field value", shape.KindOf(v)),
		Hint:    hint,
		Params:  map[string]any{"got": shape.KindOf(v)},
	}}
}

func mixedList(i int, v any) error {
	return Issues{Issue{
		Path:    fmt.Sprintf("/%d", i),
		Code:    CodeInvalidElement,
		Message: fmt.Sprintf("list element of kind %s does not match the list's variant", shape.KindOf(v)),
		Params:  map[string]any{"index": i, "got": shape.KindOf(v)},
	}}
}
