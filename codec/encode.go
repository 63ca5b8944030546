package codec

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/faucetsdn/udmi-sub001/record"
)

// Encode returns the canonical encoding of r.
func (c *Codec) Encode(r *record.Record) ([]byte, error) {
	out, err := c.encode(r)
	if err == nil && (c.indent != "" || c.prefix != "") {
		var buf bytes.Buffer
		if err = json.Indent(&buf, out, c.prefix, c.indent); err == nil {
			out = buf.Bytes()
		} else {
			err = errors.Wrap(err, "indent")
		}
	}
	if err != nil {
		c.metrics.encodeFailed()
		return nil, err
	}
	c.metrics.encoded()
	return out, nil
}

// encode returns the compact encoding, ignoring any indent option.
func (c *Codec) encode(r *record.Record) ([]byte, error) {
	if r == nil {
		return nil, errors.New("encode: nil record")
	}
	if c.validateOnEncode {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "encode %s", r.Type())
		}
	}

	e := newEncoder()
	if err := e.writeRecord(r, ""); err != nil {
		return nil, errors.Wrapf(err, "encode %s", r.Type())
	}
	return e.buf.Bytes(), nil
}

// ============================================================
// Encoder
// ============================================================

type encoder struct {
	buf bytes.Buffer
	str *json.Encoder
}

func newEncoder() *encoder {
	e := &encoder{}
	e.str = json.NewEncoder(&e.buf)
	e.str.SetEscapeHTML(false)
	return e
}

// writeString writes a quoted JSON string.
func (e *encoder) writeString(s string) error {
	if err := e.str.Encode(s); err != nil {
		return err
	}
	// json.Encoder terminates each value with a newline.
	e.buf.Truncate(e.buf.Len() - 1)
	return nil
}

func (e *encoder) writeRecord(r *record.Record, path string) error {
	e.buf.WriteByte('{')
	first := true
	var err error
	r.Range(func(f *record.FieldDef, v any) bool {
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		if err = e.writeString(f.Name()); err != nil {
			return false
		}
		e.buf.WriteByte(':')
		err = e.writeValue(f.Type(), v, record.JoinPath(path, f.Name()))
		return err == nil
	})
	if err != nil {
		return err
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) writeValue(spec record.TypeSpec, v any, path string) error {
	switch spec.Kind {
	case record.KindString:
		return e.writeString(v.(string))

	case record.KindInt:
		e.buf.WriteString(strconv.FormatInt(v.(int64), 10))
		return nil

	case record.KindNumber:
		return e.writeFloat(v.(float64), path)

	case record.KindBool:
		e.buf.WriteString(strconv.FormatBool(v.(bool)))
		return nil

	case record.KindTime:
		t := v.(time.Time).UTC()
		if y := t.Year(); y < 0 || y > 9999 {
			return errors.Errorf("%s: year %d outside RFC 3339 range", path, y)
		}
		return e.writeString(t.Format(time.RFC3339Nano))

	case record.KindEnum:
		return e.writeString(v.(record.Symbol).Value())

	case record.KindRecord:
		return e.writeRecord(v.(*record.Record), path)

	case record.KindMap:
		m := v.(map[string]any)
		elem := elemSpec(spec)
		e.buf.WriteByte('{')
		for i, k := range record.SortedKeys(m) {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.writeString(k); err != nil {
				return err
			}
			e.buf.WriteByte(':')
			if err := e.writeValue(elem, m[k], record.JoinPath(path, k)); err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
		return nil

	case record.KindList:
		elem := elemSpec(spec)
		e.buf.WriteByte('[')
		for i, item := range v.([]any) {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.writeValue(elem, item, indexPath(path, i)); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
		return nil

	default:
		return e.writeAny(v, path)
	}
}

func (e *encoder) writeAny(v any, path string) error {
	switch n := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(n))
	case int64:
		e.buf.WriteString(strconv.FormatInt(n, 10))
	case float64:
		return e.writeFloat(n, path)
	case string:
		return e.writeString(n)
	case []any:
		e.buf.WriteByte('[')
		for i, item := range n {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.writeAny(item, indexPath(path, i)); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case map[string]any:
		e.buf.WriteByte('{')
		for i, k := range record.SortedKeys(n) {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.writeString(k); err != nil {
				return err
			}
			e.buf.WriteByte(':')
			if err := e.writeAny(n[k], record.JoinPath(path, k)); err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
	default:
		return &record.TypeMismatchError{Expected: "any", Actual: record.Shape(v), Path: path}
	}
	return nil
}

func (e *encoder) writeFloat(f float64, path string) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.Errorf("%s: NaN/Infinity not allowed in JSON", path)
	}
	start := e.buf.Len()
	if err := e.str.Encode(f); err != nil {
		return err
	}
	e.buf.Truncate(e.buf.Len() - 1)
	// Integral floats keep a fraction so they decode back as numbers, not
	// integers.
	if !bytes.ContainsAny(e.buf.Bytes()[start:], ".eE") {
		e.buf.WriteString(".0")
	}
	return nil
}

func elemSpec(spec record.TypeSpec) record.TypeSpec {
	if spec.Elem == nil {
		return record.AnyType()
	}
	return *spec.Elem
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
