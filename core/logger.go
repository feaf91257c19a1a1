package core

// Logger is the app-wide logging contract. Trailing args may carry an
// error, a context map or an acting identity; implementations decide how
// to report each.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
