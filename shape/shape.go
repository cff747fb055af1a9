// Package shape declares structural contracts over plain key/value containers
// and checks decoded values against them. A Shape is "shape, not class": any
// map with the required keys and acceptable value kinds conforms, regardless
// of how it was produced.
package shape

import "sort"

// Shape is a named, immutable structural contract: attribute specs, a
// required set, and a key policy. Build one through New; a built Shape never
// changes, so derived checkers may be cached for the process lifetime.
type Shape struct {
	name     string
	fields   map[string]Spec
	required map[string]struct{}
	// closed shapes reject keys outside the declared attribute set. Airtable
	// payloads are open by default: the service may add attributes without
	// notice, and unknown keys are not a conformance failure.
	closed     bool
	sortedKeys []string
}

// Name returns the shape's declared name, used in diagnostics.
func (s *Shape) Name() string { return s.name }

// FieldNames returns the declared attribute names in ascending order.
func (s *Shape) FieldNames() []string {
	out := make([]string, len(s.sortedKeys))
	copy(out, s.sortedKeys)
	return out
}

// IsRequired reports whether the named attribute is required.
func (s *Shape) IsRequired(name string) bool {
	_, ok := s.required[name]
	return ok
}

// Closed reports whether undeclared keys are rejected.
func (s *Shape) Closed() bool { return s.closed }

// Check reports structural conformance issues for m against the shape. A nil
// return means m conforms. Convenience over Compile for one-shot checks;
// callers on a hot path should compile once and reuse.
func (s *Shape) Check(m map[string]any) Issues {
	return Compile(s).Check(m)
}

// Builder assembles a Shape. The zero value is not usable; start with New.
type Builder struct {
	name     string
	fields   map[string]Spec
	required map[string]struct{}
	closed   bool
}

type fieldStep struct {
	b    *Builder
	name string
}

// New creates a builder for a named shape with safe defaults (open key
// policy, no attributes).
func New(name string) *Builder {
	return &Builder{
		name:     name,
		fields:   map[string]Spec{},
		required: map[string]struct{}{},
	}
}

// Field registers an attribute with its spec.
func (b *Builder) Field(name string, sp Spec) *fieldStep {
	b.fields[name] = sp
	return &fieldStep{b: b, name: name}
}

// Required marks the attribute as required and returns the builder.
func (f *fieldStep) Required() *Builder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the attribute as optional (the default) and returns the builder.
func (f *fieldStep) Optional() *Builder {
	delete(f.b.required, f.name)
	return f.b
}

func (f *fieldStep) Field(name string, sp Spec) *fieldStep { return f.b.Field(name, sp) }
func (f *fieldStep) Closed() *Builder                      { return f.b.Closed() }
func (f *fieldStep) Build() *Shape                         { return f.b.Build() }

// Require marks one or more attributes as required.
func (b *Builder) Require(names ...string) *Builder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// Closed rejects keys outside the declared attribute set.
func (b *Builder) Closed() *Builder {
	b.closed = true
	return b
}

// Build returns the immutable Shape. Attribute maps are copied so later
// builder reuse cannot alias into a built shape.
func (b *Builder) Build() *Shape {
	fields := make(map[string]Spec, len(b.fields))
	keys := make([]string, 0, len(b.fields))
	for k, sp := range b.fields {
		fields[k] = sp
		keys = append(keys, k)
	}
	sort.Strings(keys)
	required := make(map[string]struct{}, len(b.required))
	for k := range b.required {
		required[k] = struct{}{}
	}
	return &Shape{
		name:       b.name,
		fields:     fields,
		required:   required,
		closed:     b.closed,
		sortedKeys: keys,
	}
}

func sortedMapKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
