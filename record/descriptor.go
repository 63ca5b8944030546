package record

import (
	"fmt"
	"strings"
)

// Descriptor is the immutable shape of one record type: a type name and an
// ordered list of fields.
type Descriptor struct {
	name   string
	fields []*FieldDef
	index  map[string]int
}

// FieldDef describes one named slot within a record.
type FieldDef struct {
	name     string
	typ      TypeSpec
	required bool
	def      any // Normalized default, nil when absent
	pos      int
}

// Name returns the external key of the field.
func (f *FieldDef) Name() string { return f.name }

// Type returns the declared type of the field.
func (f *FieldDef) Type() TypeSpec { return f.typ }

// Required reports whether decode must find the field.
func (f *FieldDef) Required() bool { return f.required }

// Default returns the declared default and whether one exists.
func (f *FieldDef) Default() (any, bool) {
	if f.def == nil {
		return nil, false
	}
	return cloneValue(f.typ, f.def), true
}

// Index returns the position of the field in declaration order.
func (f *FieldDef) Index() int { return f.pos }

// FieldOption modifies a field definition.
type FieldOption func(*FieldDef)

// Required marks a field as required.
func Required() FieldOption {
	return func(f *FieldDef) {
		f.required = true
	}
}

// WithDefault sets the default value a new record starts with.
func WithDefault(v any) FieldOption {
	return func(f *FieldDef) {
		f.def = v
	}
}

// Field creates a field definition.
func Field(name string, typ TypeSpec, opts ...FieldOption) *FieldDef {
	f := &FieldDef{name: name, typ: typ}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewDescriptor builds a descriptor from fields in declaration order.
//
// Descriptors are built at schema-compile time, so an empty or duplicate
// field name, or a default that does not fit its field, panics.
func NewDescriptor(name string, fields ...*FieldDef) *Descriptor {
	if name == "" {
		panic("record: descriptor with empty name")
	}
	d := &Descriptor{
		name:   name,
		fields: make([]*FieldDef, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, in := range fields {
		if in == nil || in.name == "" {
			panic(fmt.Sprintf("record: %s has a field with empty name", name))
		}
		if _, dup := d.index[in.name]; dup {
			panic(fmt.Sprintf("record: %s declares field %q twice", name, in.name))
		}
		f := *in
		f.pos = len(d.fields)
		if f.def != nil {
			v, err := normalize(f.typ, f.def)
			if err != nil {
				panic(fmt.Sprintf("record: %s.%s default: %v", name, f.name, err))
			}
			f.def = v
		}
		d.index[f.name] = f.pos
		d.fields = append(d.fields, &f)
	}
	return d
}

// Name returns the type identifier of the descriptor.
func (d *Descriptor) Name() string { return d.name }

// NumFields returns the number of declared fields.
func (d *Descriptor) NumFields() int { return len(d.fields) }

// FieldsInOrder returns the fields in declaration order.
func (d *Descriptor) FieldsInOrder() []*FieldDef {
	out := make([]*FieldDef, len(d.fields))
	copy(out, d.fields)
	return out
}

// FieldByName returns a field by its external key.
func (d *Descriptor) FieldByName(name string) (*FieldDef, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.fields[i], true
}

// RequiredFields returns the required fields in declaration order.
func (d *Descriptor) RequiredFields() []*FieldDef {
	out := make([]*FieldDef, 0, len(d.fields))
	for _, f := range d.fields {
		if f.required {
			out = append(out, f)
		}
	}
	return out
}

// String returns the descriptor name.
func (d *Descriptor) String() string { return d.name }

// Canonical returns the canonical text form of the descriptor.
func (d *Descriptor) Canonical() string {
	var sb strings.Builder
	sb.WriteString(d.name)
	sb.WriteString(" struct{\n")
	for _, f := range d.fields {
		sb.WriteString("  ")
		sb.WriteString(f.name)
		sb.WriteString(": ")
		sb.WriteString(f.typ.String())
		if f.required {
			sb.WriteString(" [required]")
		}
		if f.def != nil {
			fmt.Fprintf(&sb, " [default=%v]", f.def)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (d *Descriptor) field(name string) *FieldDef {
	i, ok := d.index[name]
	if !ok {
		panic(&UndeclaredFieldError{Record: d.name, Field: name})
	}
	return d.fields[i]
}
