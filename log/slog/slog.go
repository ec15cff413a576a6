// Package slog adapts a log/slog Logger to expcache.Logger.
package slog

import (
	"context"
	stdslog "log/slog"
	"sort"

	"github.com/unkn0wn-root/expcache"
)

var _ expcache.Logger = Logger{}

// Logger writes through L. Fields are emitted in key order and grouped
// under Group when it is set.
type Logger struct {
	L     *stdslog.Logger
	Group string
}

func New(l *stdslog.Logger) Logger { return Logger{L: l, Group: "expcache"} }

func (s Logger) Debug(msg string, f expcache.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f expcache.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f expcache.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f expcache.Fields) { s.log(stdslog.LevelError, msg, f) }

func (s Logger) log(level stdslog.Level, msg string, f expcache.Fields) {
	if s.L == nil {
		return
	}
	ctx := context.Background()
	if !s.L.Enabled(ctx, level) {
		return
	}
	as := attrs(f)
	if s.Group != "" && len(as) > 0 {
		as = []stdslog.Attr{{Key: s.Group, Value: stdslog.GroupValue(as...)}}
	}
	s.L.LogAttrs(ctx, level, msg, as...)
}

func attrs(f expcache.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]stdslog.Attr, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, stdslog.String(k, err.Error()))
			continue
		}
		out = append(out, stdslog.Any(k, f[k]))
	}
	return out
}
