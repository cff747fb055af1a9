package airtable

import (
	"sort"

	"github.com/tablekit/airtable/shape"
)

// Declared shapes for every record-related payload the Airtable web API
// exchanges. These are the canonical vocabulary other modules use to say what
// a value "is"; all conformance checks go through ValidateOne/ValidateMany
// rather than re-implementing structural inspection.
//
// Shapes are open unless noted: the service may add attributes without
// notice, so unknown keys are not a conformance failure. Declared attributes
// are still kind-checked.
var (
	// AttachmentDict is a file stored in an attachments field.
	// See https://airtable.com/developers/web/api/field-model#multipleattachment
	AttachmentDict = shape.New("AttachmentDict").
			Field("id", shape.String()).Required().
			Field("url", shape.String()).Required().
			Field("type", shape.String()).
			Field("filename", shape.String()).
			Field("size", shape.Int()).
			Field("height", shape.Int()).
			Field("width", shape.Int()).
			Field("thumbnails", shape.MapOf(shape.MapOf(shape.OneOf(shape.String(), shape.Int())))).
			Build()

	// CreateAttachmentDict is a new attachment payload before upload; the id
	// is absent because the server has not assigned one yet.
	CreateAttachmentDict = shape.New("CreateAttachmentDict").
				Field("url", shape.String()).Required().
				Field("filename", shape.String()).
				Build()

	// BarcodeDict is the value stored in a barcode field.
	// See https://airtable.com/developers/web/api/field-model#barcode
	BarcodeDict = shape.New("BarcodeDict").
			Field("text", shape.String()).Required().
			Field("type", shape.String()).
			Build()

	// ButtonDict is the value stored in a button field. The url key is
	// always present but may carry null.
	// See https://airtable.com/developers/web/api/field-model#button
	ButtonDict = shape.New("ButtonDict").
			Field("label", shape.String()).Required().
			Field("url", shape.String().Nullable()).Required().
			Build()

	// CollaboratorDict is a user reference as returned by the service.
	// See https://airtable.com/developers/web/api/field-model#collaborator
	CollaboratorDict = shape.New("CollaboratorDict").
				Field("id", shape.String()).Required().
				Field("email", shape.String()).
				Field("name", shape.String()).
				Field("profilePicUrl", shape.String()).
				Build()

	// CollaboratorEmailDict is a user reference supplied by email only,
	// typically at write time; the service resolves the id.
	CollaboratorEmailDict = shape.New("CollaboratorEmailDict").
				Field("email", shape.String()).Required().
				Build()

	// FormulaErrorDict marks a formula evaluation failure.
	FormulaErrorDict = shape.New("FormulaErrorDict").
				Field("error", shape.String()).Required().
				Build()

	// FormulaNotANumberDict marks a formula NaN result.
	FormulaNotANumberDict = shape.New("FormulaNotANumberDict").
				Field("specialValue", shape.Literal("NaN")).Required().
				Build()

	// RecordDict is a full record as returned by the service.
	// See https://airtable.com/developers/web/api/list-records
	RecordDict = shape.New("RecordDict").
			Field("id", shape.String()).Required().
			Field("createdTime", shape.String()).Required().
			Field("fields", fieldsSpec).Required().
			Build()

	// CreateRecordDict is the payload to create a record; id and createdTime
	// are absent because the server has not assigned them yet.
	CreateRecordDict = shape.New("CreateRecordDict").
				Field("fields", fieldsSpec).Required().
				Build()

	// UpdateRecordDict is the payload to update a record.
	UpdateRecordDict = shape.New("UpdateRecordDict").
				Field("id", shape.String()).Required().
				Field("fields", fieldsSpec).Required().
				Build()

	// RecordDeletedDict confirms a deletion.
	RecordDeletedDict = shape.New("RecordDeletedDict").
				Field("id", shape.String()).Required().
				Field("deleted", shape.Bool()).Required().
				Build()

	// WorkspaceInfoDict is the workspace metadata payload returned by
	// GET meta/workspaces/{id}.
	WorkspaceInfoDict = shape.New("WorkspaceInfoDict").
				Field("id", shape.String()).Required().
				Field("name", shape.String()).Required().
				Field("createdTime", shape.String()).
				Field("baseIds", shape.ListOf(shape.String())).
				Build()
)

// fieldValueSpec is the closed field-value union: plain scalar,
// list-of-scalar-or-sub-shape, or one of the named sub-shapes. Extending it
// means adding a variant arm, never loosening to "any value".
var fieldValueSpec = shape.OneOf(
	shape.String(),
	shape.Int(),
	shape.Float(),
	shape.Bool(),
	shape.Ref(CollaboratorDict),
	shape.Ref(CollaboratorEmailDict),
	shape.Ref(BarcodeDict),
	shape.Ref(ButtonDict),
	shape.ListOf(shape.OneOf(
		shape.String(),
		shape.Int(),
		shape.Float(),
		shape.Bool(),
		shape.Ref(AttachmentDict),
		shape.Ref(CollaboratorDict),
		shape.Ref(CollaboratorEmailDict),
	)),
	shape.Ref(FormulaErrorDict),
	shape.Ref(FormulaNotANumberDict),
)

// fieldsSpec is the Fields mapping: arbitrary user-defined column names to
// field values, where a value may be omitted as null.
var fieldsSpec = shape.MapOf(fieldValueSpec.Nullable())

// declaredShapes indexes every exported shape by name for lookup surfaces
// such as the lint CLI.
var declaredShapes = map[string]*shape.Shape{}

func init() {
	for _, s := range []*shape.Shape{
		AttachmentDict,
		CreateAttachmentDict,
		BarcodeDict,
		ButtonDict,
		CollaboratorDict,
		CollaboratorEmailDict,
		FormulaErrorDict,
		FormulaNotANumberDict,
		RecordDict,
		CreateRecordDict,
		UpdateRecordDict,
		RecordDeletedDict,
		WorkspaceInfoDict,
	} {
		declaredShapes[s.Name()] = s
	}
}

// ShapeByName returns the declared shape with the given name, or an
// unknown_shape error listing what exists.
func ShapeByName(name string) (*shape.Shape, error) {
	if s, ok := declaredShapes[name]; ok {
		return s, nil
	}
	return nil, Issues{Issue{
		Path:    "/",
		Code:    CodeUnknownShape,
		Message: "no declared shape named " + name,
		Params:  map[string]any{"name": name},
	}}
}

// ShapeNames returns the names of all declared shapes in ascending order.
func ShapeNames() []string {
	out := make([]string, 0, len(declaredShapes))
	for name := range declaredShapes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
