package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/rediscache"
)

var _ rediscache.Logger = Logger{}

// Logger adapts a logrus entry. Every line carries component=rediscache.
type Logger struct{ E *logrus.Entry }

// New wraps l and tags lines with the adapter component.
func New(l *logrus.Logger) Logger {
	return Logger{E: l.WithField("component", "rediscache")}
}

func (l Logger) Debug(msg string, f rediscache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l Logger) Info(msg string, f rediscache.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l Logger) Warn(msg string, f rediscache.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l Logger) Error(msg string, f rediscache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
