package core

// Level represents the severity of a log record.
type Level int8

const (
	// TraceLevel for the most detailed diagnostic records
	TraceLevel Level = iota
	// DebugLevel for interactive debugging information
	DebugLevel
	// InformationLevel for general application flow records (default)
	InformationLevel
	// WarningLevel for abnormal or unexpected situations
	WarningLevel
	// ErrorLevel for failures of the current operation
	ErrorLevel
	// CriticalLevel for unrecoverable application or system failures
	CriticalLevel
)

// String returns the record-schema name of the level. These names are
// written verbatim into the LogLevel field of every serialized record.
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "Trace"
	case DebugLevel:
		return "Debug"
	case InformationLevel:
		return "Information"
	case WarningLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	case CriticalLevel:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Known reports whether l is one of the defined levels. Formatters treat
// an unknown level as a caller bug rather than substituting a default.
func (l Level) Known() bool {
	return l >= TraceLevel && l <= CriticalLevel
}
