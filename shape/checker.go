package shape

import "fmt"

// Checker is the executable form of a Shape: attribute order and the
// required list are resolved up front so a check never sorts. Compiling the
// same shape twice yields equivalent checkers, which is what lets callers
// memoize construction without a correctness concern.
type Checker struct {
	shape *Shape
	keys  []string
}

// Compile resolves a Shape into a Checker.
func Compile(s *Shape) *Checker {
	return &Checker{shape: s, keys: s.sortedKeys}
}

// Shape returns the contract this checker enforces.
func (c *Checker) Shape() *Shape { return c.shape }

// Check reports structural conformance issues for m, in deterministic
// (key-sorted) order: declared attributes first, then unknown keys when the
// shape is closed. m is never mutated.
func (c *Checker) Check(m map[string]any) Issues {
	var iss Issues
	for _, k := range c.keys {
		sp := c.shape.fields[k]
		v, exists := m[k]
		if !exists {
			if _, req := c.shape.required[k]; req {
				iss = AppendIssues(iss, Issue{
					Path:    "/" + escapePointer(k),
					Code:    CodeRequired,
					Message: fmt.Sprintf("required attribute %q missing", k),
				})
			}
			continue
		}
		if i2 := sp.Check("/"+escapePointer(k), v); len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
		}
	}
	if c.shape.closed {
		for _, k := range sortedMapKeys(m) {
			if _, known := c.shape.fields[k]; !known {
				iss = AppendIssues(iss, Issue{
					Path:    "/" + escapePointer(k),
					Code:    CodeUnknownKey,
					Message: fmt.Sprintf("unknown key %q", k),
				})
			}
		}
	}
	return iss
}
