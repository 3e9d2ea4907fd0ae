package formatter_test

import (
	"io"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alefranz/logwire/core"
	"github.com/alefranz/logwire/formatter"
)

// ---------------------------------------------------------------------------
// Helpers - identical sink for both serializers (io.Discard)
// ---------------------------------------------------------------------------

// newJSONFormatter returns a logwire JSON formatter writing to io.Discard.
func newJSONFormatter() *formatter.JSONFormatter {
	return formatter.NewJSONFormatter(formatter.Options{})
}

// newZapLogger returns a zap.Logger whose JSON encoder writes to io.Discard.
func newZapLogger() *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	zc := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.DebugLevel)
	return zap.New(zc)
}

// ---------------------------------------------------------------------------
// Scenario 1 - message only
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_MessageOnly(b *testing.B) {
	b.Run("logwire", func(b *testing.B) {
		f := newJSONFormatter()
		ev := &core.Event{
			Level:    core.InformationLevel,
			Category: "Program",
			Message:  "info message",
		}
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = f.Format(ev, nil, io.Discard)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 2 - message plus structured state
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_WithState(b *testing.B) {
	b.Run("logwire", func(b *testing.B) {
		f := newJSONFormatter()
		st := core.Pairs(
			core.P("user", core.String("alice")),
			core.P("attempt", core.Int(3)),
			core.P("success", core.Bool(false)),
		)
		ev := &core.Event{
			Level:    core.WarningLevel,
			Category: "Auth",
			Message:  "login failed",
			State:    &st,
		}
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = f.Format(ev, nil, io.Discard)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Warn("login failed",
				zap.String("user", "alice"),
				zap.Int("attempt", 3),
				zap.Bool("success", false),
			)
		}
	})
}
