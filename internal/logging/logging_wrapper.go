package logging

import (
	"github.com/sirupsen/logrus"
)

// Observe runs fn under a named log scope: it logs "<name>.Start", times the
// call under "durationMs", then logs the collected data with either
// "<name>.Complete" or "<name>.Error". The error from fn is returned as is.
func Observe(
	loggingName string,
	log *logrus.Logger,
	fn func(logData *LogData) error,
) error {
	logData := NewLogData(log)
	log.Infof("%v.Start", loggingName)

	endTimer := logData.AddTiming("durationMs")
	err := fn(logData)
	endTimer()

	if err != nil {
		logData.Log().WithError(err).Errorf("%v.Error", loggingName)
		return err
	}

	logData.Log().Infof("%v.Complete", loggingName)
	return nil
}
