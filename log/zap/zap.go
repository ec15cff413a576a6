// Package zap adapts a *zap.Logger to expcache.Logger.
package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/expcache"
)

var _ expcache.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names the logger "expcache".
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("expcache")} }

func (z ZapLogger) Debug(msg string, f expcache.Fields) { z.log(zapcore.DebugLevel, msg, f) }
func (z ZapLogger) Info(msg string, f expcache.Fields)  { z.log(zapcore.InfoLevel, msg, f) }
func (z ZapLogger) Warn(msg string, f expcache.Fields)  { z.log(zapcore.WarnLevel, msg, f) }
func (z ZapLogger) Error(msg string, f expcache.Fields) { z.log(zapcore.ErrorLevel, msg, f) }

func (z ZapLogger) log(level zapcore.Level, msg string, f expcache.Fields) {
	// no field building for disabled levels
	ce := z.L.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(fields(f)...)
}

func fields(f expcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		switch v := v.(type) {
		case error:
			out = append(out, zap.NamedError(k, v))
		case string:
			out = append(out, zap.String(k, v))
		default:
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
