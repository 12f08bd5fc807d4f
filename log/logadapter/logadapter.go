// Package logadapter adapts a *logrus.Logger into the log.Log interface
// consumed by the tree package.
package logadapter

import (
	"github.com/sirupsen/logrus"

	flog "github.com/foldertree/foldertree/log"
)

// Logrus wraps a *logrus.Logger, dispatching on topic.
type Logrus struct {
	logger  *logrus.Logger
	enabled flog.Topics
}

// New returns a Logrus adapter that emits the given topics through
// logger. Pass flog.AllTopics to log everything.
func New(logger *logrus.Logger, enabled flog.Topics) *Logrus {
	return &Logrus{logger: logger, enabled: enabled}
}

func (l *Logrus) Enabled(topics flog.Topics) bool {
	return l.enabled&topics != 0
}

// SetEnabled replaces the set of topics this adapter forwards to logrus.
func (l *Logrus) SetEnabled(topics flog.Topics) {
	l.enabled = topics
}

func (l *Logrus) Log(topics flog.Topics, msg string, fields flog.M) {
	if !l.Enabled(topics) {
		return
	}
	entry := l.logger.WithField("topics", topics)
	for k, v := range fields {
		entry = entry.WithField(k, v)
	}
	entry.Debug(msg)
}

var _ flog.Log = (*Logrus)(nil)
