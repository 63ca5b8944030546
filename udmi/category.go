package udmi

import "strings"

// Status entry categories. Each category has a default Level it is
// reported at; see DefaultLevel.
const (
	SystemBaseStart           = "system.base.start"
	SystemBaseShutdown        = "system.base.shutdown"
	SystemBaseReady           = "system.base.ready"
	SystemConfigReceive       = "system.config.receive"
	SystemConfigParse         = "system.config.parse"
	SystemConfigApply         = "system.config.apply"
	SystemNetworkConnect      = "system.network.connect"
	SystemNetworkDisconnect   = "system.network.disconnect"
	SystemAuthLogin           = "system.auth.login"
	SystemAuthLogout          = "system.auth.logout"
	SystemAuthFail            = "system.auth.fail"
	PointsetPointApplying     = "pointset.point.applying"
	PointsetPointUpdating     = "pointset.point.updating"
	PointsetPointOverridden   = "pointset.point.overridden"
	PointsetPointFailure      = "pointset.point.failure"
	PointsetPointInvalid      = "pointset.point.invalid"
	BlobsetBlobReceive        = "blobset.blob.receive"
	BlobsetBlobFetch          = "blobset.blob.fetch"
	BlobsetBlobApply          = "blobset.blob.apply"
	DiscoveryFamilyScan       = "discovery.family.scan"
	LocalnetFamilyAddress     = "localnet.family.address"
	GatewayProxyTarget        = "gateway.proxy.target"
	ValidationDeviceReceive   = "validation.device.receive"
	ValidationDeviceSchema    = "validation.device.schema"
	ValidationDeviceExtra     = "validation.device.extra"
	ValidationDeviceMultiple  = "validation.device.multiple"
	ValidationDeviceContent   = "validation.device.content"
	ValidationFeatureSequence = "validation.feature.sequence"
)

// Category pairs a category name with its default reporting level.
type Category struct {
	Name  string
	Level Level
}

var categories = []Category{
	{SystemBaseStart, LevelNotice},
	{SystemBaseShutdown, LevelNotice},
	{SystemBaseReady, LevelNotice},
	{SystemConfigReceive, LevelDebug},
	{SystemConfigParse, LevelDebug},
	{SystemConfigApply, LevelNotice},
	{SystemNetworkConnect, LevelNotice},
	{SystemNetworkDisconnect, LevelNotice},
	{SystemAuthLogin, LevelNotice},
	{SystemAuthLogout, LevelNotice},
	{SystemAuthFail, LevelWarning},
	{PointsetPointApplying, LevelInfo},
	{PointsetPointUpdating, LevelInfo},
	{PointsetPointOverridden, LevelWarning},
	{PointsetPointFailure, LevelError},
	{PointsetPointInvalid, LevelError},
	{BlobsetBlobReceive, LevelDebug},
	{BlobsetBlobFetch, LevelDebug},
	{BlobsetBlobApply, LevelNotice},
	{DiscoveryFamilyScan, LevelInfo},
	{LocalnetFamilyAddress, LevelInfo},
	{GatewayProxyTarget, LevelInfo},
	{ValidationDeviceReceive, LevelInfo},
	{ValidationDeviceSchema, LevelError},
	{ValidationDeviceExtra, LevelWarning},
	{ValidationDeviceMultiple, LevelError},
	{ValidationDeviceContent, LevelError},
	{ValidationFeatureSequence, LevelInfo},
}

var categoryIndex = func() map[string]int {
	m := make(map[string]int, len(categories))
	for i, c := range categories {
		m[c.Name] = i
	}
	return m
}()

// Categories returns every known category.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// DefaultLevel returns the default level of a known category.
func DefaultLevel(category string) (Level, bool) {
	i, ok := categoryIndex[category]
	if !ok {
		return LevelInvalid, false
	}
	return categories[i].Level, true
}

// CategoryPrefix returns the top-level subsystem of a category, e.g.
// "blobset" for "blobset.blob.apply".
func CategoryPrefix(category string) string {
	if i := strings.IndexByte(category, '.'); i >= 0 {
		return category[:i]
	}
	return category
}
