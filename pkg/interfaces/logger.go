package interfaces

import "context"

// Logger is the leveled logging contract used by the parser, the markdown
// bridge and the command handlers. It matches github.com/goliatone/go-logger
// so a glog logger can be passed in directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by module name (confluence.parser,
// confluence.markdown, ...). Returning one shared logger is fine.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry persistent fields.
// WithFields returns a child logger; the receiver is left unchanged.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
