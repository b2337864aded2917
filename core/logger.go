package core

// Logger is the application-wide logging contract. Deployed environments report
// to an external error tracker; DEV/TEST log to stdout only.
//
// Error/Fatal accept trailing args of any type; implementations may give
// special treatment to errors and session identities found among them.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
