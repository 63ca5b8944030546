package record

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// ============================================================
// Value Normalization
// ============================================================
//
// In-memory representation per kind:
//   string  -> string
//   integer -> int64
//   number  -> float64
//   boolean -> bool
//   time    -> time.Time
//   enum    -> Symbol
//   record  -> *Record
//   map     -> map[string]any (elements normalized, no nil entries)
//   list    -> []any (elements normalized)
//   any     -> nil | bool | int64 | float64 | string | []any | map[string]any

// normalize checks v against spec and converts it to the in-memory form.
// Containers are copied; nested records are stored by reference.
func normalize(spec TypeSpec, v any) (any, error) {
	return normalizeAt(spec, v, "")
}

func normalizeAt(spec TypeSpec, v any, path string) (any, error) {
	switch spec.Kind {
	case KindAny:
		return normalizeAny(v, path)

	case KindString:
		if s, ok := v.(string); ok {
			return s, checkUTF8(s, path)
		}

	case KindInt:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int, int8, int16, int32, uint, uint8, uint16, uint32:
			return cast.ToInt64E(n)
		case uint64:
			if n <= math.MaxInt64 {
				return int64(n), nil
			}
		}

	case KindNumber:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return cast.ToFloat64E(n)
		}

	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}

	case KindTime:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}

	case KindEnum:
		if s, ok := v.(Symbol); ok {
			if s.enum == spec.Enum {
				return s, nil
			}
			if s.enum != nil {
				return nil, &TypeMismatchError{Expected: spec.String(), Actual: "enum " + s.enum.name, Path: path}
			}
		}

	case KindRecord:
		if r, ok := v.(*Record); ok && r != nil {
			if r.desc == spec.Record {
				return r, nil
			}
			return nil, &TypeMismatchError{Expected: spec.String(), Actual: r.desc.name, Path: path}
		}

	case KindMap:
		return normalizeMap(spec, v, path)

	case KindList:
		return normalizeList(spec, v, path)
	}
	return nil, &TypeMismatchError{Expected: spec.String(), Actual: Shape(v), Path: path}
}

func normalizeMap(spec TypeSpec, v any, path string) (any, error) {
	elem := spec.elem()
	out := make(map[string]any)
	put := func(k string, e any) error {
		if err := checkUTF8(k, path); err != nil {
			return err
		}
		if e == nil {
			return &TypeMismatchError{Expected: elem.String(), Actual: "null", Path: JoinPath(path, k)}
		}
		ne, err := normalizeAt(elem, e, JoinPath(path, k))
		if err != nil {
			return err
		}
		out[k] = ne
		return nil
	}
	switch m := v.(type) {
	case map[string]any:
		for k, e := range m {
			if err := put(k, e); err != nil {
				return nil, err
			}
		}
	case map[string]*Record:
		for k, e := range m {
			if e == nil {
				return nil, &TypeMismatchError{Expected: elem.String(), Actual: "null", Path: JoinPath(path, k)}
			}
			if err := put(k, e); err != nil {
				return nil, err
			}
		}
	case map[string]string:
		for k, e := range m {
			if err := put(k, e); err != nil {
				return nil, err
			}
		}
	default:
		return nil, &TypeMismatchError{Expected: spec.String(), Actual: Shape(v), Path: path}
	}
	return out, nil
}

func normalizeList(spec TypeSpec, v any, path string) (any, error) {
	elem := spec.elem()
	var in []any
	switch l := v.(type) {
	case []any:
		in = l
	case []string:
		in = make([]any, len(l))
		for i, s := range l {
			in[i] = s
		}
	case []*Record:
		in = make([]any, len(l))
		for i, r := range l {
			if r == nil {
				return nil, &TypeMismatchError{Expected: elem.String(), Actual: "null", Path: indexPath(path, i)}
			}
			in[i] = r
		}
	default:
		return nil, &TypeMismatchError{Expected: spec.String(), Actual: Shape(v), Path: path}
	}
	out := make([]any, len(in))
	for i, e := range in {
		if e == nil && elem.Kind != KindAny {
			return nil, &TypeMismatchError{Expected: elem.String(), Actual: "null", Path: indexPath(path, i)}
		}
		ne, err := normalizeAt(elem, e, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = ne
	}
	return out, nil
}

func normalizeAny(v any, path string) (any, error) {
	switch n := v.(type) {
	case nil, bool, int64, float64:
		return n, nil
	case string:
		return n, checkUTF8(n, path)
	case json.Number:
		return ParseNumber(n, path)
	case int, int8, int16, int32, uint, uint8, uint16, uint32:
		return cast.ToInt64E(n)
	case float32:
		return cast.ToFloat64E(n)
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			ne, err := normalizeAny(e, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	case []string:
		out := make([]any, len(n))
		for i, s := range n {
			if err := checkUTF8(s, indexPath(path, i)); err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			if err := checkUTF8(k, path); err != nil {
				return nil, err
			}
			ne, err := normalizeAny(e, JoinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = ne
		}
		return out, nil
	}
	return nil, &TypeMismatchError{Expected: "any", Actual: Shape(v), Path: path}
}

// ParseNumber converts a JSON number to int64 when it is written as an
// integer that fits, and to float64 otherwise. A fraction or exponent in the
// source keeps the value a float even when it is integral.
func ParseNumber(n json.Number, path string) (any, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, &TypeMismatchError{Expected: "any", Actual: "number " + n.String(), Path: path}
	}
	return f, nil
}

// checkUTF8 rejects strings the JSON encoding cannot carry unchanged.
func checkUTF8(s, path string) error {
	if utf8.ValidString(s) {
		return nil
	}
	return &TypeMismatchError{Expected: "string", Actual: "invalid UTF-8 " + strconv.Quote(s), Path: path}
}

// ============================================================
// Deep Copy
// ============================================================

func cloneValue(spec TypeSpec, v any) any {
	switch spec.Kind {
	case KindRecord:
		return v.(*Record).Clone()
	case KindMap:
		m := v.(map[string]any)
		out := make(map[string]any, len(m))
		elem := spec.elem()
		for k, e := range m {
			out[k] = cloneValue(elem, e)
		}
		return out
	case KindList:
		l := v.([]any)
		out := make([]any, len(l))
		elem := spec.elem()
		for i, e := range l {
			out[i] = cloneValue(elem, e)
		}
		return out
	case KindAny:
		return cloneAny(v)
	default:
		return v
	}
}

func cloneAny(v any) any {
	switch n := v.(type) {
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = cloneAny(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			out[k] = cloneAny(e)
		}
		return out
	default:
		return v
	}
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
