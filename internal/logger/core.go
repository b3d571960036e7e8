package logger

import (
	"go.uber.org/zap/zapcore"
)

// DBCore is a custom Zap Core that mirrors log entries into MongoDB
// while still delegating to the wrapped console core.
type DBCore struct {
	zapcore.Core
	writer *DBLogWriter
}

// NewDBCore wraps an existing core (like the console logger) and adds DB logging
func NewDBCore(baseCore zapcore.Core, writer *DBLogWriter) zapcore.Core {
	return &DBCore{
		Core:   baseCore,
		writer: writer,
	}
}

// Write is called for every log entry
func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	// entry.Caller.Function is populated because the logger is built
	// with AddCaller and a FunctionKey.
	c.writer.AddLog(LogEntry{
		Level:   entry.Level,
		Message: entry.Message,
		Caller:  entry.Caller.Function,
	})

	return c.Core.Write(entry, fields)
}

// Check decides if we should log this level
func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
