package logging

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogData collects fields and timings for a single request log line.
type LogData struct {
	mu        sync.Mutex
	timeItems map[string]int64
	dataItems map[string]any
	logger    logrus.FieldLogger
}

// NewLogData returns an empty LogData bound to logger.
func NewLogData(logger logrus.FieldLogger) *LogData {
	return &LogData{
		timeItems: make(map[string]int64),
		dataItems: make(map[string]any),
		logger:    logger,
	}
}

// AddTiming starts a timer; calling the returned func records elapsed ms.
func (l *LogData) AddTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		timeSince := time.Since(startTime).Milliseconds()
		l.mu.Lock()
		defer l.mu.Unlock()
		l.timeItems[entryName] = timeSince
	}
}

// AddData attaches a field to the eventual log line.
func (l *LogData) AddData(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dataItems[key] = value
}

// Log returns an entry carrying all collected fields.
func (l *LogData) Log() *logrus.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := make(logrus.Fields, len(l.dataItems)+len(l.timeItems))
	for key, value := range l.dataItems {
		fields[key] = value
	}
	for key, value := range l.timeItems {
		fields[key] = value
	}
	return l.logger.WithFields(fields)
}
