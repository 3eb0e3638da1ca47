// Package logging is vtree's ambient diagnostic sink. It plays the same
// role the teacher's nojs/console package plays for a syscall/js binding,
// but as leveled structured logging instead of a browser console shim,
// since the core library has no DOM of its own to talk through.
package logging

import "github.com/sirupsen/logrus"

var std = logrus.StandardLogger()

// SetLevel adjusts the package-wide log level, used by vconfig.ApplyLogging
// to apply cmd/vtreectl's --log-level flag.
func SetLevel(level logrus.Level) {
	std.SetLevel(level)
}

// Debug logs a debug-level diagnostic, such as a ProgrammingContract
// violation caught only in dev builds.
func Debug(format string, args ...any) {
	std.Debugf(format, args...)
}

// Warn logs a recoverable anomaly: a host-operation failure that was
// swallowed so the current frame could continue, or a programming-contract
// violation noticed outside a dev build.
func Warn(format string, args ...any) {
	std.Warnf(format, args...)
}

// Error logs an anomaly serious enough that the caller gave up on the
// current operation, without panicking.
func Error(format string, args ...any) {
	std.Errorf(format, args...)
}

// WithField returns an entry for structured, field-carrying log lines, for
// callers that want to attach e.g. a component name or cache id.
func WithField(key string, value any) *logrus.Entry {
	return std.WithField(key, value)
}
