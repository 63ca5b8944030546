// Package udmi describes the UDMI message family as record descriptors.
//
// Every generated message class maps onto one shared descriptor; sub-schemas
// that the generator emitted as numbered near-duplicates (one Entry per
// owning message, one Basic per auth block) are a single descriptor here,
// reused wherever the shape recurs.
package udmi

import (
	"time"

	"github.com/faucetsdn/udmi-sub001/record"
)

// IotEndpointConfig is the reserved blob key carrying endpoint redirection.
const IotEndpointConfig = "_iot_endpoint_config"

// ============================================================
// Enums
// ============================================================

var (
	BlobPhase      = record.NewEnum("BlobPhase", "apply", "final")
	Protocol       = record.NewEnum("Protocol", "mqtt")
	Transport      = record.NewEnum("Transport", "ssl", "tcp")
	FeatureStage   = record.NewEnum("FeatureStage", "disabled", "alpha", "preview", "beta", "stable")
	SequenceResult = record.NewEnum("SequenceResult", "start", "errr", "skip", "pass", "fail")
)

// ============================================================
// Descriptors
// ============================================================

var (
	// Entry is a status entry attached to state blocks.
	Entry = record.NewDescriptor("Entry",
		record.Field("message", record.StringType(), record.Required()),
		record.Field("detail", record.StringType()),
		record.Field("category", record.StringType()),
		record.Field("timestamp", record.TimeType(), record.Required()),
		record.Field("level", record.IntType(), record.Required()),
	)

	Basic = record.NewDescriptor("Basic",
		record.Field("username", record.StringType()),
		record.Field("password", record.StringType()),
	)

	Jwt = record.NewDescriptor("Jwt",
		record.Field("audience", record.StringType()),
	)

	AuthProvider = record.NewDescriptor("AuthProvider",
		record.Field("basic", record.RecordType(Basic)),
		record.Field("jwt", record.RecordType(Jwt)),
	)

	EndpointConfiguration = record.NewDescriptor("EndpointConfiguration",
		record.Field("protocol", record.EnumType(Protocol)),
		record.Field("transport", record.EnumType(Transport)),
		record.Field("hostname", record.StringType()),
		record.Field("port", record.IntType()),
		record.Field("config_sync_sec", record.IntType()),
		record.Field("client_id", record.StringType()),
		record.Field("topic_prefix", record.StringType()),
		record.Field("auth_provider", record.RecordType(AuthProvider)),
		record.Field("generation", record.TimeType()),
	)

	BlobBlobsetConfig = record.NewDescriptor("BlobBlobsetConfig",
		record.Field("phase", record.EnumType(BlobPhase), record.Required()),
		record.Field("url", record.StringType()),
		record.Field("sha256", record.StringType()),
		record.Field("generation", record.TimeType()),
	)

	BlobBlobsetState = record.NewDescriptor("BlobBlobsetState",
		record.Field("phase", record.EnumType(BlobPhase), record.Required()),
		record.Field("status", record.RecordType(Entry)),
	)

	BlobsetConfig = record.NewDescriptor("BlobsetConfig",
		record.Field("blobs", record.MapType(record.RecordType(BlobBlobsetConfig))),
	)

	BlobsetState = record.NewDescriptor("BlobsetState",
		record.Field("blobs", record.MapType(record.RecordType(BlobBlobsetState))),
	)

	FamilyLocalnetConfig = record.NewDescriptor("FamilyLocalnetConfig",
		record.Field("addr", record.StringType()),
	)

	FamilyLocalnetState = record.NewDescriptor("FamilyLocalnetState",
		record.Field("addr", record.StringType()),
		record.Field("status", record.RecordType(Entry)),
	)

	LocalnetConfig = record.NewDescriptor("LocalnetConfig",
		record.Field("families", record.MapType(record.RecordType(FamilyLocalnetConfig))),
	)

	LocalnetState = record.NewDescriptor("LocalnetState",
		record.Field("families", record.MapType(record.RecordType(FamilyLocalnetState))),
	)

	Scoring = record.NewDescriptor("Scoring",
		record.Field("value", record.IntType()),
		record.Field("total", record.IntType()),
	)

	SequenceValidationState = record.NewDescriptor("SequenceValidationState",
		record.Field("summary", record.StringType()),
		record.Field("stage", record.EnumType(FeatureStage)),
		record.Field("result", record.EnumType(SequenceResult)),
		record.Field("status", record.RecordType(Entry)),
		record.Field("scoring", record.RecordType(Scoring)),
	)

	FeatureValidationState = record.NewDescriptor("FeatureValidationState",
		record.Field("summary", record.StringType()),
		record.Field("stage", record.EnumType(FeatureStage)),
		record.Field("sequences", record.MapType(record.RecordType(SequenceValidationState))),
	)

	PointPointsetEvents = record.NewDescriptor("PointPointsetEvents",
		record.Field("present_value", record.AnyType()),
	)

	PointsetEvents = record.NewDescriptor("PointsetEvents",
		record.Field("timestamp", record.TimeType(), record.Required()),
		record.Field("version", record.StringType(), record.Required()),
		record.Field("upgraded_from", record.StringType()),
		record.Field("partial_update", record.BoolType()),
		record.Field("points", record.MapType(record.RecordType(PointPointsetEvents)), record.Required()),
	)

	PointPointsetConfig = record.NewDescriptor("PointPointsetConfig",
		record.Field("ref", record.StringType()),
		record.Field("units", record.StringType()),
		record.Field("set_value", record.AnyType()),
	)

	PointsetConfig = record.NewDescriptor("PointsetConfig",
		record.Field("state_etag", record.StringType()),
		record.Field("set_value_expiry", record.TimeType()),
		record.Field("sample_limit_sec", record.IntType()),
		record.Field("sample_rate_sec", record.IntType()),
		record.Field("points", record.MapType(record.RecordType(PointPointsetConfig))),
	)
)

var registry = record.NewRegistry().MustRegister(
	Entry,
	EndpointConfiguration,
	BlobsetConfig,
	BlobsetState,
	LocalnetConfig,
	LocalnetState,
	FeatureValidationState,
	PointsetEvents,
	PointsetConfig,
)

// Registry returns the registry holding every UDMI descriptor and enum.
func Registry() *record.Registry { return registry }

// NewEntry builds a status entry. A zero level uses the category's default
// level, or INFO for unknown categories.
func NewEntry(category, message string, level Level, ts time.Time) *record.Record {
	if level == LevelInvalid {
		if l, ok := DefaultLevel(category); ok {
			level = l
		} else {
			level = LevelInfo
		}
	}
	e := record.New(Entry).
		Set("message", message).
		Set("timestamp", ts).
		Set("level", level.Value())
	if category != "" {
		e.Set("category", category)
	}
	return e
}

// EntryLevel returns the level carried by a status entry.
func EntryLevel(e *record.Record) (Level, bool) {
	v, ok := e.GetInt("level")
	if !ok {
		return LevelInvalid, false
	}
	return LevelOf(int(v))
}
