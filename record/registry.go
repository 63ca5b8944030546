package record

import (
	"sort"

	"github.com/pkg/errors"
)

// Registry maps type names to descriptors and enums.
//
// A Registry is populated once and then only read; lookups are safe for
// concurrent use after registration is complete.
type Registry struct {
	records map[string]*Descriptor
	enums   map[string]*Enum
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]*Descriptor),
		enums:   make(map[string]*Enum),
	}
}

// Register adds descriptors and every descriptor and enum reachable from
// their fields. Registering the same descriptor twice is a no-op; two
// distinct descriptors or enums sharing a name is an error.
func (reg *Registry) Register(descs ...*Descriptor) error {
	for _, d := range descs {
		if err := reg.addRecord(d); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (reg *Registry) MustRegister(descs ...*Descriptor) *Registry {
	if err := reg.Register(descs...); err != nil {
		panic(err)
	}
	return reg
}

func (reg *Registry) addRecord(d *Descriptor) error {
	if prev, ok := reg.records[d.name]; ok {
		if prev != d {
			return errors.Errorf("record type %s already registered", d.name)
		}
		return nil
	}
	reg.records[d.name] = d
	for _, f := range d.fields {
		if err := reg.addSpec(f.typ); err != nil {
			return errors.Wrapf(err, "%s.%s", d.name, f.name)
		}
	}
	return nil
}

func (reg *Registry) addSpec(spec TypeSpec) error {
	switch spec.Kind {
	case KindRecord:
		return reg.addRecord(spec.Record)
	case KindEnum:
		if prev, ok := reg.enums[spec.Enum.name]; ok && prev != spec.Enum {
			return errors.Errorf("enum type %s already registered", spec.Enum.name)
		}
		reg.enums[spec.Enum.name] = spec.Enum
	case KindMap, KindList:
		return reg.addSpec(spec.elem())
	}
	return nil
}

// Record returns a descriptor by type name.
func (reg *Registry) Record(name string) (*Descriptor, bool) {
	d, ok := reg.records[name]
	return d, ok
}

// Enum returns an enum by type name.
func (reg *Registry) Enum(name string) (*Enum, bool) {
	e, ok := reg.enums[name]
	return e, ok
}

// RecordNames returns the registered record type names in ascending order.
func (reg *Registry) RecordNames() []string {
	names := make([]string, 0, len(reg.records))
	for name := range reg.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnumNames returns the registered enum type names in ascending order.
func (reg *Registry) EnumNames() []string {
	names := make([]string, 0, len(reg.enums))
	for name := range reg.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
