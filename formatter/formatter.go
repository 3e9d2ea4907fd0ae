package formatter

import (
	"io"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/alefranz/logwire/core"
)

// Formatter serializes one log record to an output sink.
type Formatter interface {
	// Format writes ev, together with the scope frames yielded by
	// scopes (nil when no scope tracking is configured), to sink as one
	// line of text. A record with no renderable content produces no
	// output at all. Partial records are never flushed: on error the
	// sink sees nothing.
	Format(ev *core.Event, scopes core.ScopeWalker, sink io.Writer) error
}

// Options holds common formatter configuration
type Options struct {
	// IncludeScopes emits the active scope frames with every record
	IncludeScopes bool `envconfig:"INCLUDE_SCOPES" default:"false"`
	// TimestampFormat is the time layout for the Timestamp field; when
	// empty the field is omitted entirely
	TimestampFormat string `envconfig:"TIMESTAMP_FORMAT"`
	// UTC stamps records with UTC instead of local wall-clock time
	UTC bool `envconfig:"UTC" default:"false"`
	// Indent produces human-readable indented JSON
	Indent bool `envconfig:"INDENT" default:"false"`
	// Clock overrides the wall-clock source (nil means time.Now).
	// A core.CoarseClock's Now method fits here for high-rate sinks.
	Clock func() time.Time `ignored:"true"`
}

// OptionsFromEnv loads Options from environment variables carrying the
// given prefix, e.g. LOGWIRE_INCLUDE_SCOPES or LOGWIRE_TIMESTAMP_FORMAT
// for prefix "LOGWIRE".
func OptionsFromEnv(prefix string) (Options, error) {
	var opts Options
	if err := envconfig.Process(prefix, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// now returns the configured clock, defaulting to time.Now.
func (o *Options) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}
