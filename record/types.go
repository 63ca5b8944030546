package record

// Kind identifies the declared kind of a field value.
type Kind uint8

const (
	KindAny Kind = iota // Untyped JSON tree
	KindString
	KindInt
	KindNumber
	KindBool
	KindTime // RFC 3339 string on the wire
	KindEnum
	KindRecord
	KindMap  // map<string, T>
	KindList // list<T>
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "time"
	case KindEnum:
		return "enum"
	case KindRecord:
		return "record"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// TypeSpec describes the declared type of a field.
type TypeSpec struct {
	Kind   Kind
	Elem   *TypeSpec   // For KindMap and KindList
	Record *Descriptor // For KindRecord
	Enum   *Enum       // For KindEnum
}

// String returns the type spec as a string.
func (ts TypeSpec) String() string {
	switch ts.Kind {
	case KindRecord:
		if ts.Record == nil {
			return "record"
		}
		return ts.Record.Name()
	case KindEnum:
		if ts.Enum == nil {
			return "enum"
		}
		return "enum " + ts.Enum.Name()
	case KindMap:
		if ts.Elem == nil {
			return "map<any>"
		}
		return "map<" + ts.Elem.String() + ">"
	case KindList:
		if ts.Elem == nil {
			return "list<any>"
		}
		return "list<" + ts.Elem.String() + ">"
	default:
		return ts.Kind.String()
	}
}

// elem returns the element spec of a container, defaulting to any.
func (ts TypeSpec) elem() TypeSpec {
	if ts.Elem == nil {
		return AnyType()
	}
	return *ts.Elem
}

// ============================================================
// Type Spec Helpers
// ============================================================

// AnyType returns a spec for an untyped value.
func AnyType() TypeSpec { return TypeSpec{Kind: KindAny} }

// StringType returns a spec for a string value.
func StringType() TypeSpec { return TypeSpec{Kind: KindString} }

// IntType returns a spec for an integer value.
func IntType() TypeSpec { return TypeSpec{Kind: KindInt} }

// NumberType returns a spec for a floating point value.
func NumberType() TypeSpec { return TypeSpec{Kind: KindNumber} }

// BoolType returns a spec for a boolean value.
func BoolType() TypeSpec { return TypeSpec{Kind: KindBool} }

// TimeType returns a spec for a timestamp value.
func TimeType() TypeSpec { return TypeSpec{Kind: KindTime} }

// EnumType returns a spec for a symbol of the given enum.
func EnumType(e *Enum) TypeSpec {
	if e == nil {
		panic("record: EnumType with nil enum")
	}
	return TypeSpec{Kind: KindEnum, Enum: e}
}

// RecordType returns a spec for a nested record of the given descriptor.
func RecordType(d *Descriptor) TypeSpec {
	if d == nil {
		panic("record: RecordType with nil descriptor")
	}
	return TypeSpec{Kind: KindRecord, Record: d}
}

// MapType returns a spec for a string-keyed map with elements of elem.
func MapType(elem TypeSpec) TypeSpec {
	return TypeSpec{Kind: KindMap, Elem: &elem}
}

// ListType returns a spec for a list with elements of elem.
func ListType(elem TypeSpec) TypeSpec {
	return TypeSpec{Kind: KindList, Elem: &elem}
}
