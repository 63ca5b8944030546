package codec

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/faucetsdn/udmi-sub001/record"
)

// Decode decodes canonical input into a record of type d.
func (c *Codec) Decode(d *record.Descriptor, data []byte) (*record.Record, error) {
	tree, err := parseJSON(data)
	if err != nil {
		c.metrics.decodeFailed()
		return nil, err
	}
	return c.DecodeValue(d, tree)
}

// DecodeValue decodes an already parsed JSON tree (as produced by
// encoding/json, with or without UseNumber) into a record of type d.
func (c *Codec) DecodeValue(d *record.Descriptor, tree any) (*record.Record, error) {
	r, err := decodeRecord(d, tree, "")
	if err != nil {
		c.metrics.decodeFailed()
		return nil, errors.Wrapf(err, "decode %s", d.Name())
	}
	c.metrics.decoded()
	return r, nil
}

func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, errors.Wrap(err, "JSON parse error")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("JSON parse error: trailing data after value")
	}
	return tree, nil
}

func decodeRecord(d *record.Descriptor, v any, path string) (*record.Record, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &record.TypeMismatchError{Field: lastKey(path), Expected: d.Name(), Actual: record.Shape(v), Path: path}
	}

	r := record.New(d)
	// Sorted so that the first reported error does not depend on map order.
	for _, key := range record.SortedKeys(obj) {
		f, ok := d.FieldByName(key)
		if !ok {
			continue
		}
		raw := obj[key]
		if raw == nil {
			r.Clear(key)
			continue
		}
		fieldPath := record.JoinPath(path, key)
		val, err := decodeValue(f.Type(), raw, fieldPath)
		if err != nil {
			if tm, ok := err.(*record.TypeMismatchError); ok && tm.Field == "" {
				tm.Field = key
			}
			return nil, err
		}
		r.Set(key, val)
	}

	for _, f := range d.RequiredFields() {
		if !r.Has(f.Name()) {
			return nil, &record.MissingRequiredFieldError{
				Record: d.Name(),
				Field:  f.Name(),
				Path:   record.JoinPath(path, f.Name()),
			}
		}
	}
	return r, nil
}

func decodeValue(spec record.TypeSpec, v any, path string) (any, error) {
	mismatch := func(actual string) error {
		return &record.TypeMismatchError{Expected: spec.String(), Actual: actual, Path: path}
	}

	switch spec.Kind {
	case record.KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}

	case record.KindInt:
		switch n := v.(type) {
		case json.Number:
			if i, err := cast.ToInt64E(n); err == nil {
				return i, nil
			}
			// Exponent forms such as 1e3 are accepted when integral.
			f, err := n.Float64()
			if err != nil || !isIntegral(f) {
				return nil, mismatch("number " + n.String())
			}
			return int64(f), nil
		case float64:
			// Trees parsed without UseNumber.
			if isIntegral(n) {
				return int64(n), nil
			}
			return nil, mismatch("number " + cast.ToString(n))
		}

	case record.KindNumber:
		switch n := v.(type) {
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, mismatch("number " + n.String())
			}
			return f, nil
		case float64:
			return n, nil
		}

	case record.KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}

	case record.KindTime:
		if s, ok := v.(string); ok {
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, mismatch("string " + quote(s))
			}
			return t, nil
		}

	case record.KindEnum:
		if s, ok := v.(string); ok {
			sym, err := spec.Enum.Parse(s)
			if err != nil {
				return nil, record.WithPath(err, path)
			}
			return sym, nil
		}

	case record.KindRecord:
		return decodeRecord(spec.Record, v, path)

	case record.KindMap:
		obj, ok := v.(map[string]any)
		if !ok {
			break
		}
		elem := elemSpec(spec)
		out := make(map[string]any, len(obj))
		for _, k := range record.SortedKeys(obj) {
			if obj[k] == nil {
				continue
			}
			ev, err := decodeValue(elem, obj[k], record.JoinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = ev
		}
		return out, nil

	case record.KindList:
		items, ok := v.([]any)
		if !ok {
			break
		}
		elem := elemSpec(spec)
		out := make([]any, len(items))
		for i, item := range items {
			if item == nil && elem.Kind != record.KindAny {
				return nil, &record.TypeMismatchError{Expected: elem.String(), Actual: "null", Path: indexPath(path, i)}
			}
			ev, err := decodeValue(elem, item, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil

	case record.KindAny:
		return decodeAny(v, path)
	}
	return nil, mismatch(record.Shape(v))
}

func decodeAny(v any, path string) (any, error) {
	switch n := v.(type) {
	case nil, bool, string:
		return n, nil
	case json.Number:
		return record.ParseNumber(n, path)
	case float64:
		// Trees parsed without UseNumber lose the source spelling.
		if isIntegral(n) {
			return int64(n), nil
		}
		return n, nil
	case []any:
		out := make([]any, len(n))
		for i, item := range n {
			ev, err := decodeAny(item, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, item := range n {
			ev, err := decodeAny(item, record.JoinPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = ev
		}
		return out, nil
	}
	return nil, &record.TypeMismatchError{Expected: "any", Actual: record.Shape(v), Path: path}
}

func isIntegral(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}

func lastKey(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
