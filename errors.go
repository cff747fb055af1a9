package airtable

import "github.com/tablekit/airtable/shape"

// The issue model is declared in the shape package so shape checking can
// report without importing this package; the root aliases keep the public
// vocabulary in one import for callers.
type (
	Issue  = shape.Issue
	Issues = shape.Issues
)

// Issue codes re-exported from shape.
const (
	CodeTypeMismatch   = shape.CodeTypeMismatch
	CodeShapeMismatch  = shape.CodeShapeMismatch
	CodeRequired       = shape.CodeRequired
	CodeInvalidType    = shape.CodeInvalidType
	CodeInvalidLiteral = shape.CodeInvalidLiteral
	CodeUnknownKey     = shape.CodeUnknownKey
	CodeUnknownShape   = shape.CodeUnknownShape
	CodeInvalidElement = shape.CodeInvalidElement
)

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues { return shape.AppendIssues(dst, more...) }

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) { return shape.AsIssues(err) }

// IsTypeMismatch reports whether err says the top-level input was of the
// wrong kind entirely (not a mapping for ValidateOne, not a sequence for
// ValidateMany).
func IsTypeMismatch(err error) bool { return headCode(err) == CodeTypeMismatch }

// IsShapeMismatch reports whether err says a mapping failed structural
// conformance against a declared shape.
func IsShapeMismatch(err error) bool { return headCode(err) == CodeShapeMismatch }

func headCode(err error) string {
	iss, ok := AsIssues(err)
	if !ok || len(iss) == 0 {
		return ""
	}
	return iss[0].Code
}
