package record

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testBasic = NewDescriptor("Basic",
	Field("username", StringType()),
	Field("password", StringType()),
)

// ============================================================
// Equality
// ============================================================

func TestEqual_Reflexive(t *testing.T) {
	r := New(testBasic).Set("username", "alice")
	assert.True(t, r.Equal(r))
	assert.True(t, New(testBasic).Equal(New(testBasic)))
}

func TestEqual_FieldByField(t *testing.T) {
	a := New(testBasic).Set("username", "alice")
	b := New(testBasic).Set("username", "alice")
	assert.True(t, a.Equal(b))

	b.Set("password", "x")
	assert.False(t, a.Equal(b))
	assert.False(t, b.Equal(a))

	a.Set("password", "y")
	assert.False(t, a.Equal(b))
}

func TestEqual_NominalAcrossTypes(t *testing.T) {
	twin := NewDescriptor("Basic",
		Field("username", StringType()),
		Field("password", StringType()),
	)
	a := New(testBasic).Set("username", "alice")
	b := New(twin).Set("username", "alice")
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}

func TestEqual_NestedContainers(t *testing.T) {
	build := func(msg string) *Record {
		status := testStatus().Set("message", msg)
		blob := New(testBlob).Set("phase", testPhase.MustParse("apply")).Set("status", status)
		return New(testBlobset).
			Set("blobs", map[string]*Record{"fw": blob}).
			Set("tags", []string{"x"}).
			Set("extra", map[string]any{"k": []any{1.5, nil, "s"}})
	}
	assert.True(t, build("a").Equal(build("a")))
	assert.False(t, build("a").Equal(build("b")))
	assert.Equal(t, build("a").Hash(), build("a").Hash())
}

func TestEqual_TimeAtMillisecondPrecision(t *testing.T) {
	base := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	a := testStatus().Set("timestamp", base)
	b := testStatus().Set("timestamp", base.Add(500*time.Nanosecond).In(time.FixedZone("x", 3600)))
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestEqual_NaN(t *testing.T) {
	d := NewDescriptor("Reading", Field("value", NumberType()))
	a := New(d).Set("value", math.NaN())
	b := New(d).Set("value", math.Float64frombits(0x7ff8000000000001))
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

// ============================================================
// Hashing
// ============================================================

func TestHash_JavaCompatible(t *testing.T) {
	assert.Equal(t, int32(99162322), HashString("hello"))
	assert.Equal(t, int32(92903040), HashString("alice"))
	assert.Equal(t, int32(0), HashString(""))
	assert.Equal(t, int32(1772899), HashString("😀")) // surrogate pair
	assert.Equal(t, int32(705032705), hashLong(5_000_000_000))
	assert.Equal(t, int32(1073217536), hashDouble(1.5))
	assert.Equal(t, int32(1231), hashBool(true))
	assert.Equal(t, int32(1237), hashBool(false))

	// 31 * (31*1 + "alice".hashCode()) + 0, wrapped to 32 bits
	r := New(testBasic).Set("username", "alice")
	assert.Equal(t, int32(-1414972095), r.Hash())
}

func TestHash_EmptyRecord(t *testing.T) {
	// Two absent fields: 31*(31*1+0)+0
	assert.Equal(t, int32(961), New(testBasic).Hash())
}

func TestHash_DeclaredOrder(t *testing.T) {
	ab := NewDescriptor("AB", Field("a", StringType()), Field("b", StringType()))
	ba := NewDescriptor("BA", Field("b", StringType()), Field("a", StringType()))

	x := New(ab).Set("a", "x").Set("b", "y")
	y := New(ba).Set("a", "x").Set("b", "y")

	// "x" = 120, "y" = 121
	assert.Equal(t, int32(31*(31+120)+121), x.Hash())
	assert.Equal(t, int32(31*(31+121)+120), y.Hash())
}

func TestHash_SetOrderIrrelevant(t *testing.T) {
	a := New(testBasic).Set("username", "u").Set("password", "p")
	b := New(testBasic).Set("password", "p").Set("username", "u")
	assert.Equal(t, a.Hash(), b.Hash())
	assert.True(t, a.Equal(b))
}

func TestHash_MapIsOrderIndependent(t *testing.T) {
	d := NewDescriptor("Labels", Field("labels", MapType(StringType())))
	a := New(d).Set("labels", map[string]string{"a": "1", "b": "2"})
	want := (HashString("a") ^ HashString("1")) + (HashString("b") ^ HashString("2"))
	assert.Equal(t, 31*int32(1)+want, a.Hash())
}

func TestHash_EnumUsesExternalValue(t *testing.T) {
	d := NewDescriptor("Phased", Field("phase", EnumType(testPhase)))
	r := New(d).Set("phase", testPhase.MustParse("apply"))
	assert.Equal(t, 31+HashString("apply"), r.Hash())
}
