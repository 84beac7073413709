package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup builds a logger writing to out. format is "text" or "json".
func Setup(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var formatter logrus.Formatter
	switch strings.ToLower(format) {
	case "json":
		formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		}
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return &logrus.Logger{
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Out:       out,
		Level:     lvl,
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}
