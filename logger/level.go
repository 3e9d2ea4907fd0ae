package logger

import (
	"strings"

	"github.com/alefranz/logwire/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel       = core.TraceLevel
	DebugLevel       = core.DebugLevel
	InformationLevel = core.InformationLevel
	WarningLevel     = core.WarningLevel
	ErrorLevel       = core.ErrorLevel
	CriticalLevel    = core.CriticalLevel
)

// ParseLevel converts a string to a Level, defaulting to Information
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "information", "info":
		return InformationLevel
	case "warning", "warn":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical", "fatal":
		return CriticalLevel
	default:
		return InformationLevel
	}
}
