package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPhase = NewEnum("BlobPhase", "apply", "final")
	testEntry = NewDescriptor("Entry",
		Field("message", StringType(), Required()),
		Field("detail", StringType()),
		Field("timestamp", TimeType(), Required()),
		Field("level", IntType(), Required()),
	)
	testBlob = NewDescriptor("BlobBlobsetState",
		Field("phase", EnumType(testPhase), Required()),
		Field("status", RecordType(testEntry)),
	)
	testBlobset = NewDescriptor("BlobsetState",
		Field("blobs", MapType(RecordType(testBlob))),
		Field("tags", ListType(StringType())),
		Field("extra", AnyType()),
	)
)

func testStatus() *Record {
	return New(testEntry).
		Set("message", "fetched").
		Set("timestamp", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)).
		Set("level", 200)
}

// ============================================================
// Construction and Access
// ============================================================

func TestRecord_NewStartsAbsent(t *testing.T) {
	r := New(testEntry)
	assert.Equal(t, 0, r.Len())
	for _, f := range testEntry.FieldsInOrder() {
		v, ok := r.Get(f.Name())
		assert.False(t, ok, f.Name())
		assert.Nil(t, v)
	}
	assert.Equal(t, "Entry", r.Type())
	assert.Same(t, testEntry, r.Descriptor())
}

func TestRecord_NewAppliesDefaults(t *testing.T) {
	d := NewDescriptor("WithDefaults",
		Field("tags", ListType(StringType()), WithDefault([]string{"a"})),
		Field("name", StringType()),
	)
	a, b := New(d), New(d)
	assert.True(t, a.Has("tags"))
	assert.False(t, a.Has("name"))

	// Each record gets its own copy of a container default.
	tags, _ := a.GetList("tags")
	tags[0] = "changed"
	other, _ := b.GetList("tags")
	assert.Equal(t, "a", other[0])
}

func TestRecord_SetAndGet(t *testing.T) {
	r := testStatus()

	msg, ok := r.GetString("message")
	require.True(t, ok)
	assert.Equal(t, "fetched", msg)

	level, ok := r.GetInt("level")
	require.True(t, ok)
	assert.Equal(t, int64(200), level)

	ts, ok := r.GetTime("timestamp")
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	_, ok = r.GetString("detail")
	assert.False(t, ok)

	r.Set("message", nil)
	assert.False(t, r.Has("message"))

	r.Set("detail", "x").Clear("detail")
	assert.False(t, r.Has("detail"))
}

func TestRecord_SetWidensScalars(t *testing.T) {
	d := NewDescriptor("Numbers",
		Field("i", IntType()),
		Field("f", NumberType()),
	)
	r := New(d).Set("i", int32(7)).Set("f", 3)

	i, _ := r.GetInt("i")
	f, _ := r.GetNumber("f")
	assert.Equal(t, int64(7), i)
	assert.Equal(t, 3.0, f)
}

func TestRecord_UndeclaredFieldPanics(t *testing.T) {
	r := New(testEntry)

	for name, fn := range map[string]func(){
		"get":   func() { r.Get("category") },
		"has":   func() { r.Has("category") },
		"set":   func() { r.Set("category", "x") },
		"clear": func() { r.Clear("category") },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				rec := recover()
				require.NotNil(t, rec)
				err, ok := rec.(*UndeclaredFieldError)
				require.True(t, ok, "panic value %T", rec)
				assert.Equal(t, "Entry", err.Record)
				assert.Equal(t, "category", err.Field)
				assert.Equal(t, CodeUndeclaredField, err.Code())
			}()
			fn()
		})
	}
}

func TestRecord_SetTypeMismatchPanics(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    any
		path     string
		expected string
	}{
		{"string for int", "level", "high", "level", "integer"},
		{"float for int", "level", 2.5, "level", "integer"},
		{"int for time", "timestamp", 12, "timestamp", "time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(*TypeMismatchError)
				require.True(t, ok)
				assert.Equal(t, tt.path, err.Path)
				assert.Equal(t, tt.field, err.Field)
				assert.Equal(t, tt.expected, err.Expected)
			}()
			New(testEntry).Set(tt.field, tt.value)
		})
	}
}

func TestRecord_SetRejectsInvalidUTF8(t *testing.T) {
	bad := "a\xffb"
	tests := []struct {
		name  string
		rec   *Record
		field string
		value any
		path  string
	}{
		{"string field", New(testEntry), "message", bad, "message"},
		{"list element", New(testBlobset), "tags", []string{"ok", bad}, "tags[1]"},
		{"any string", New(testBlobset), "extra", bad, "extra"},
		{"any nested", New(testBlobset), "extra", map[string]any{"k": []any{bad}}, "extra.k[0]"},
		{"any key", New(testBlobset), "extra", map[string]any{bad: 1}, "extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(*TypeMismatchError)
				require.True(t, ok)
				assert.Equal(t, tt.path, err.Path)
				assert.Equal(t, "string", err.Expected)
				assert.Contains(t, err.Actual, "invalid UTF-8")
			}()
			tt.rec.Set(tt.field, tt.value)
		})
	}

	assert.NotPanics(t, func() {
		New(testEntry).Set("message", "ünïcødé 😀")
	})
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"21.0", 21.0},
		{"1e3", 1000.0},
		{"2E-1", 0.2},
		{"-0.5", -0.5},
		{"18446744073709551616", 18446744073709551616.0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumber(json.Number(tt.in), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseNumber(json.Number("1e400"), "v")
	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, "v", tm.Path)
}

func TestRecord_SetNominalRecordType(t *testing.T) {
	lookalike := NewDescriptor("Entry",
		Field("message", StringType(), Required()),
		Field("detail", StringType()),
		Field("timestamp", TimeType(), Required()),
		Field("level", IntType(), Required()),
	)
	assert.Panics(t, func() {
		New(testBlob).Set("status", New(lookalike))
	})
	assert.Panics(t, func() {
		New(testBlob).Set("phase", NewEnum("Other", "apply").MustParse("apply"))
	})
	assert.NotPanics(t, func() {
		New(testBlob).Set("phase", testPhase.MustParse("apply"))
	})
}

func TestRecord_SetMapReportsElementPath(t *testing.T) {
	defer func() {
		err, ok := recover().(*TypeMismatchError)
		require.True(t, ok)
		assert.Equal(t, "blobs.firmware", err.Path)
		assert.Equal(t, "BlobBlobsetState", err.Expected)
		assert.Equal(t, "string", err.Actual)
	}()
	New(testBlobset).Set("blobs", map[string]any{"firmware": "bad"})
}

func TestRecord_Range(t *testing.T) {
	r := New(testEntry).Set("level", 100).Set("message", "m")

	var names []string
	r.Range(func(f *FieldDef, v any) bool {
		names = append(names, f.Name())
		return true
	})
	assert.Equal(t, []string{"message", "level"}, names)

	names = nil
	r.Range(func(f *FieldDef, v any) bool {
		names = append(names, f.Name())
		return false
	})
	assert.Equal(t, []string{"message"}, names)
}

func TestRecord_CloneIsDeep(t *testing.T) {
	blob := New(testBlob).Set("phase", testPhase.MustParse("final")).Set("status", testStatus())
	orig := New(testBlobset).
		Set("blobs", map[string]*Record{"firmware": blob}).
		Set("tags", []string{"a", "b"}).
		Set("extra", map[string]any{"n": []any{1, "x"}})

	c := orig.Clone()
	require.True(t, orig.Equal(c))

	blobs, _ := c.GetMap("blobs")
	blobs["firmware"].(*Record).Set("phase", testPhase.MustParse("apply"))
	status, _ := blobs["firmware"].(*Record).GetRecord("status")
	status.Set("message", "changed")
	extra, _ := c.Get("extra")
	extra.(map[string]any)["n"].([]any)[0] = int64(99)

	assert.False(t, orig.Equal(c))
	origPhase, _ := blob.GetSymbol("phase")
	assert.Equal(t, "final", origPhase.Value())
	origStatus, _ := blob.GetRecord("status")
	msg, _ := origStatus.GetString("message")
	assert.Equal(t, "fetched", msg)

	origExtra, _ := orig.Get("extra")
	assert.Empty(t, cmp.Diff(map[string]any{"n": []any{int64(1), "x"}}, origExtra))
}

func TestRecord_Validate(t *testing.T) {
	assert.NoError(t, testStatus().Validate())

	err := New(testEntry).Set("message", "m").Validate()
	var missing *MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Entry", missing.Record)
	assert.Equal(t, "timestamp", missing.Field)

	status := testStatus().Clear("level")
	blob := New(testBlob).Set("phase", testPhase.MustParse("apply")).Set("status", status)
	set := New(testBlobset).Set("blobs", map[string]*Record{"fw": blob})

	err = set.Validate()
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "blobs.fw.status.level", missing.Path)
	assert.Equal(t, CodeRequiredField, ErrorCode(err))
}

func TestRecord_String(t *testing.T) {
	r := New(testEntry).Set("message", "hi").Set("level", 100)
	assert.Equal(t, "Entry{message=hi level=100}", r.String())
}
