package record

import (
	"fmt"
	"strings"
	"time"
)

// Record is an instance of a Descriptor: one optional value per declared
// field. A nil slot means the field is absent.
type Record struct {
	desc   *Descriptor
	values []any
}

// New creates a record with every field absent except those with a
// declared default.
func New(d *Descriptor) *Record {
	if d == nil {
		panic("record: New with nil descriptor")
	}
	r := &Record{desc: d, values: make([]any, len(d.fields))}
	for i, f := range d.fields {
		if f.def != nil {
			r.values[i] = cloneValue(f.typ, f.def)
		}
	}
	return r
}

// Descriptor returns the descriptor the record is bound to.
func (r *Record) Descriptor() *Descriptor { return r.desc }

// Type returns the record type name.
func (r *Record) Type() string { return r.desc.name }

// Get returns the value of a field and whether it is present.
// Get panics with *UndeclaredFieldError if name is not declared.
func (r *Record) Get(name string) (any, bool) {
	f := r.desc.field(name)
	v := r.values[f.pos]
	return v, v != nil
}

// Has reports whether a field is present.
func (r *Record) Has(name string) bool {
	return r.values[r.desc.field(name).pos] != nil
}

// Set assigns a field and returns r. A nil value makes the field absent.
//
// Set panics with *UndeclaredFieldError if name is not declared and with
// *TypeMismatchError if v does not fit the field's kind. Nested records and
// containers are stored without copying; the record takes ownership.
func (r *Record) Set(name string, v any) *Record {
	f := r.desc.field(name)
	if v == nil {
		r.values[f.pos] = nil
		return r
	}
	nv, err := normalizeAt(f.typ, v, f.name)
	if err != nil {
		if tm, ok := err.(*TypeMismatchError); ok {
			tm.Field = f.name
		}
		panic(err)
	}
	r.values[f.pos] = nv
	return r
}

// Clear makes a field absent and returns r.
func (r *Record) Clear(name string) *Record {
	r.values[r.desc.field(name).pos] = nil
	return r
}

// Len returns the number of present fields.
func (r *Record) Len() int {
	n := 0
	for _, v := range r.values {
		if v != nil {
			n++
		}
	}
	return n
}

// Range calls fn for each present field in declaration order until fn
// returns false.
func (r *Record) Range(fn func(f *FieldDef, v any) bool) {
	for i, v := range r.values {
		if v == nil {
			continue
		}
		if !fn(r.desc.fields[i], v) {
			return
		}
	}
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := &Record{desc: r.desc, values: make([]any, len(r.values))}
	for i, v := range r.values {
		if v != nil {
			c.values[i] = cloneValue(r.desc.fields[i].typ, v)
		}
	}
	return c
}

// Validate checks that every required field is present, recursively.
func (r *Record) Validate() error {
	return r.validate("")
}

func (r *Record) validate(path string) error {
	for i, f := range r.desc.fields {
		p := JoinPath(path, f.name)
		v := r.values[i]
		if v == nil {
			if f.required {
				return &MissingRequiredFieldError{Record: r.desc.name, Field: f.name, Path: p}
			}
			continue
		}
		if err := validateValue(f.typ, v, p); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(spec TypeSpec, v any, path string) error {
	switch spec.Kind {
	case KindRecord:
		return v.(*Record).validate(path)
	case KindMap:
		m := v.(map[string]any)
		for _, k := range SortedKeys(m) {
			if err := validateValue(spec.elem(), m[k], JoinPath(path, k)); err != nil {
				return err
			}
		}
	case KindList:
		for i, e := range v.([]any) {
			if err := validateValue(spec.elem(), e, indexPath(path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// String returns a compact debug form, e.g. Basic{username=alice}.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.desc.name)
	sb.WriteString("{")
	first := true
	r.Range(func(f *FieldDef, v any) bool {
		if !first {
			sb.WriteString(" ")
		}
		first = false
		sb.WriteString(f.name)
		sb.WriteString("=")
		fmt.Fprint(&sb, v)
		return true
	})
	sb.WriteString("}")
	return sb.String()
}

// ============================================================
// Typed Accessors
// ============================================================

// GetString returns a string field.
func (r *Record) GetString(name string) (string, bool) {
	v, _ := r.Get(name)
	s, ok := v.(string)
	return s, ok
}

// GetInt returns an integer field.
func (r *Record) GetInt(name string) (int64, bool) {
	v, _ := r.Get(name)
	n, ok := v.(int64)
	return n, ok
}

// GetNumber returns a number field.
func (r *Record) GetNumber(name string) (float64, bool) {
	v, _ := r.Get(name)
	f, ok := v.(float64)
	return f, ok
}

// GetBool returns a boolean field.
func (r *Record) GetBool(name string) (bool, bool) {
	v, _ := r.Get(name)
	b, ok := v.(bool)
	return b, ok
}

// GetTime returns a time field.
func (r *Record) GetTime(name string) (time.Time, bool) {
	v, _ := r.Get(name)
	t, ok := v.(time.Time)
	return t, ok
}

// GetSymbol returns an enum field.
func (r *Record) GetSymbol(name string) (Symbol, bool) {
	v, _ := r.Get(name)
	s, ok := v.(Symbol)
	return s, ok
}

// GetRecord returns a nested record field.
func (r *Record) GetRecord(name string) (*Record, bool) {
	v, _ := r.Get(name)
	n, ok := v.(*Record)
	return n, ok
}

// GetMap returns a map field.
func (r *Record) GetMap(name string) (map[string]any, bool) {
	v, _ := r.Get(name)
	m, ok := v.(map[string]any)
	return m, ok
}

// GetList returns a list field.
func (r *Record) GetList(name string) ([]any, bool) {
	v, _ := r.Get(name)
	l, ok := v.([]any)
	return l, ok
}
