package shape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeTypeMismatch marks a top-level input of the wrong kind entirely,
	// e.g. a string where an object was required, or a scalar where a
	// sequence was required.
	CodeTypeMismatch = "type_mismatch"
	// CodeShapeMismatch heads the issue list when an object fails structural
	// conformance against a declared shape; detail issues follow it.
	CodeShapeMismatch = "shape_mismatch"

	CodeRequired       = "required"
	CodeInvalidType    = "invalid_type"
	CodeInvalidLiteral = "invalid_literal"
	CodeUnknownKey     = "unknown_key"
	CodeUnknownShape   = "unknown_shape"
	CodeInvalidElement = "invalid_element"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /fields/Barcode/text).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected kinds, variant names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"shape":"RecordDict",
	// "keys":["foo"]}) for diagnostics and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Message != "" {
			fmt.Fprintf(b, "%s at %s: %s", it.Code, it.Path, it.Message)
		} else {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Rebase returns a copy of the issues with every path re-anchored under base.
// A root path ("" or "/") collapses to base itself.
func (iss Issues) Rebase(base string) Issues {
	if len(iss) == 0 {
		return nil
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
