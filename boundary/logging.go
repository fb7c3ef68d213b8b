package boundary

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger accumulates logrus fields for one operation. Each With method
// adds to the receiver and returns it for chaining.
type Logger struct {
	fields logrus.Fields
}

// NewLogger starts a logger tagged with the package and function names.
func NewLogger(pkg, function string) *Logger {
	return &Logger{
		fields: logrus.Fields{
			"function": function,
			"package":  pkg,
		},
	}
}

// WithCaller records the file, line and function that called WithCaller.
func (l *Logger) WithCaller() *Logger {
	return l.withCallerSkip(2)
}

// withCallerSkip records the caller skip frames above itself.
func (l *Logger) withCallerSkip(skip int) *Logger {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return l
	}
	l.fields["caller"] = fmt.Sprintf("%s:%d", file, line)
	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		l.fields["caller_func"] = name
	}
	return l
}

// WithField sets one field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	l.fields[key] = value
	return l
}

// WithFields sets every field in fields.
func (l *Logger) WithFields(fields logrus.Fields) *Logger {
	for k, v := range fields {
		l.fields[k] = v
	}
	return l
}

// WithError records err and the operation that produced it.
func (l *Logger) WithError(err error, operation string) *Logger {
	l.fields["error"] = err.Error()
	l.fields["operation"] = operation
	return l
}

func (l *Logger) Debug(message string) { logrus.WithFields(l.fields).Debug(message) }

func (l *Logger) Info(message string) { logrus.WithFields(l.fields).Info(message) }

func (l *Logger) Warn(message string) { logrus.WithFields(l.fields).Warn(message) }

func (l *Logger) Error(message string) { logrus.WithFields(l.fields).Error(message) }
