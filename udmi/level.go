package udmi

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Level is the numeric severity of a status entry, aligned with the
// Stackdriver LogEntry severities plus TRACE.
type Level int

const (
	LevelInvalid   Level = 0
	LevelTrace     Level = 50
	LevelDebug     Level = 100
	LevelInfo      Level = 200
	LevelNotice    Level = 300
	LevelWarning   Level = 400
	LevelError     Level = 500
	LevelCritical  Level = 600
	LevelAlert     Level = 700
	LevelEmergency Level = 800
)

var levelNames = []struct {
	level Level
	name  string
}{
	{LevelInvalid, "INVALID"},
	{LevelTrace, "TRACE"},
	{LevelDebug, "DEBUG"},
	{LevelInfo, "INFO"},
	{LevelNotice, "NOTICE"},
	{LevelWarning, "WARNING"},
	{LevelError, "ERROR"},
	{LevelCritical, "CRITICAL"},
	{LevelAlert, "ALERT"},
	{LevelEmergency, "EMERGENCY"},
}

// Levels returns every defined level in ascending order.
func Levels() []Level {
	out := make([]Level, len(levelNames))
	for i, ln := range levelNames {
		out[i] = ln.level
	}
	return out
}

// String returns the level name, or the number for undefined levels.
func (l Level) String() string {
	for _, ln := range levelNames {
		if ln.level == l {
			return ln.name
		}
	}
	return "LEVEL(" + strconv.Itoa(int(l)) + ")"
}

// Value returns the numeric priority carried on the wire.
func (l Level) Value() int { return int(l) }

// ParseLevel resolves a level by name, case-insensitively.
func ParseLevel(name string) (Level, error) {
	for _, ln := range levelNames {
		if strings.EqualFold(ln.name, name) {
			return ln.level, nil
		}
	}
	return LevelInvalid, errors.Errorf("unknown level %q", name)
}

// LevelOf returns the defined level with the given priority.
func LevelOf(value int) (Level, bool) {
	for _, ln := range levelNames {
		if int(ln.level) == value {
			return ln.level, true
		}
	}
	return LevelInvalid, false
}
