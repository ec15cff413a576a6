package expcache

// Fields carries structured context for a log line.
type Fields map[string]any

// Logger receives diagnostics for failures the cache absorbs. Adapters for
// zap, logrus and log/slog live under log/. A nil Logger in Options discards
// everything.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// keyLog stamps every line with the storage key of one cache.
type keyLog struct {
	l   Logger
	key string
}

func (k keyLog) fields(err error, extra ...any) Fields {
	f := Fields{"key": k.key}
	if err != nil {
		f["err"] = err
	}
	for i := 0; i+1 < len(extra); i += 2 {
		if name, ok := extra[i].(string); ok {
			f[name] = extra[i+1]
		}
	}
	return f
}

func (k keyLog) debug(msg string, err error, extra ...any) { k.l.Debug(msg, k.fields(err, extra...)) }
func (k keyLog) warn(msg string, err error, extra ...any)  { k.l.Warn(msg, k.fields(err, extra...)) }
func (k keyLog) error(msg string, err error, extra ...any) { k.l.Error(msg, k.fields(err, extra...)) }
