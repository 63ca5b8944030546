package record

import (
	"math"
	"time"
	"unicode/utf16"
)

// ============================================================
// Equality
// ============================================================

// Equal reports whether r and o are bound to the same descriptor and every
// declared field compares equal. Absent equals absent.
func (r *Record) Equal(o *Record) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil || !sameType(r.desc, o.desc) {
		return false
	}
	for i, f := range r.desc.fields {
		if !valueEqual(f.typ, r.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

// sameType compares type identity: the descriptor itself, not its shape.
func sameType(a, b *Descriptor) bool {
	return a == b
}

func valueEqual(spec TypeSpec, a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch spec.Kind {
	case KindNumber:
		return doubleBits(a.(float64)) == doubleBits(b.(float64))
	case KindTime:
		return a.(time.Time).UnixMilli() == b.(time.Time).UnixMilli()
	case KindRecord:
		return a.(*Record).Equal(b.(*Record))
	case KindMap:
		ma, mb := a.(map[string]any), b.(map[string]any)
		if len(ma) != len(mb) {
			return false
		}
		elem := spec.elem()
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !valueEqual(elem, va, vb) {
				return false
			}
		}
		return true
	case KindList:
		la, lb := a.([]any), b.([]any)
		if len(la) != len(lb) {
			return false
		}
		elem := spec.elem()
		for i := range la {
			if !valueEqual(elem, la[i], lb[i]) {
				return false
			}
		}
		return true
	case KindAny:
		return anyEqual(a, b)
	default:
		return a == b
	}
}

func anyEqual(a, b any) bool {
	switch va := a.(type) {
	case nil:
		return b == nil
	case float64:
		vb, ok := b.(float64)
		return ok && doubleBits(va) == doubleBits(vb)
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !anyEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, ea := range va {
			eb, exists := vb[k]
			if !exists || !anyEqual(ea, eb) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// ============================================================
// Hashing
// ============================================================
//
// Hash values follow java.lang hashCode rules with wrapping int32
// arithmetic, so a record hashes the same as its generated Java class:
//
//   result = 1
//   result = 31*result + (field == null ? 0 : field.hashCode())  // per field, declared order

// Hash returns the combined hash of all declared fields.
func (r *Record) Hash() int32 {
	if r == nil {
		return 0
	}
	h := int32(1)
	for i, f := range r.desc.fields {
		h = 31*h + hashValue(f.typ, r.values[i])
	}
	return h
}

func hashValue(spec TypeSpec, v any) int32 {
	if v == nil {
		return 0
	}
	switch spec.Kind {
	case KindString:
		return HashString(v.(string))
	case KindInt:
		return hashLong(v.(int64))
	case KindNumber:
		return hashDouble(v.(float64))
	case KindBool:
		return hashBool(v.(bool))
	case KindTime:
		return hashLong(v.(time.Time).UnixMilli())
	case KindEnum:
		return HashString(v.(Symbol).value)
	case KindRecord:
		return v.(*Record).Hash()
	case KindMap:
		var h int32
		elem := spec.elem()
		for k, e := range v.(map[string]any) {
			h += HashString(k) ^ hashValue(elem, e)
		}
		return h
	case KindList:
		h := int32(1)
		elem := spec.elem()
		for _, e := range v.([]any) {
			h = 31*h + hashValue(elem, e)
		}
		return h
	default:
		return hashAny(v)
	}
}

func hashAny(v any) int32 {
	switch n := v.(type) {
	case nil:
		return 0
	case string:
		return HashString(n)
	case int64:
		return hashLong(n)
	case float64:
		return hashDouble(n)
	case bool:
		return hashBool(n)
	case []any:
		h := int32(1)
		for _, e := range n {
			h = 31*h + hashAny(e)
		}
		return h
	case map[string]any:
		var h int32
		for k, e := range n {
			h += HashString(k) ^ hashAny(e)
		}
		return h
	default:
		return 0
	}
}

// HashString returns the Java String.hashCode of s over its UTF-16 units.
func HashString(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(c)
	}
	return h
}

func hashLong(n int64) int32 {
	return int32(n ^ int64(uint64(n)>>32))
}

func hashDouble(f float64) int32 {
	bits := doubleBits(f)
	return int32(bits ^ bits>>32)
}

// doubleBits mirrors Double.doubleToLongBits: every NaN collapses to one
// canonical pattern.
func doubleBits(f float64) uint64 {
	if math.IsNaN(f) {
		return 0x7ff8000000000000
	}
	return math.Float64bits(f)
}

func hashBool(b bool) int32 {
	if b {
		return 1231
	}
	return 1237
}
