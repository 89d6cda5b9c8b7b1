package logging

import (
	"maps"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogData collects fields and timings for one operation and emits them as a
// single log entry. Timers may be stopped from other goroutines.
type LogData struct {
	mu     sync.Mutex
	fields logrus.Fields
	logger *logrus.Logger
}

func NewLogData(logger *logrus.Logger) *LogData {
	return &LogData{
		fields: make(logrus.Fields),
		logger: logger,
	}
}

// AddTiming starts a timer; calling the returned func records the elapsed
// milliseconds under entryName.
func (l *LogData) AddTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		l.AddData(entryName, time.Since(startTime).Milliseconds())
	}
}

func (l *LogData) AddData(key string, value interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fields[key] = value
}

// Log returns an entry carrying everything recorded so far.
func (l *LogData) Log() *logrus.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logger.WithFields(maps.Clone(l.fields))
}
