package logging

import (
	"github.com/sirupsen/logrus"
)

// Event describes one call of an otherwise pure helper (masking, date
// formatting) for observers that want to trace it.
type Event struct {
	Operation string
	Input     string
	Output    string
	Err       error
}

// Hook receives helper events. A nil Hook is valid and ignores events.
type Hook func(Event)

// Emit delivers ev to the hook if one is set.
func (h Hook) Emit(ev Event) {
	if h != nil {
		h(ev)
	}
}

// NewHook returns a Hook that writes events to logger at debug level.
func NewHook(logger *logrus.Logger) Hook {
	return func(ev Event) {
		entry := logger.WithFields(logrus.Fields{
			"operation": ev.Operation,
			"input":     ev.Input,
			"output":    ev.Output,
		})
		if ev.Err != nil {
			entry.WithError(ev.Err).Debugf("%v.Rejected", ev.Operation)
			return
		}
		entry.Debugf("%v.Done", ev.Operation)
	}
}
