package observability

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/i474232898/temperature-converter/internal/config"
)

const (
	rotateMaxSize    = 10 // MB
	rotateMaxAge     = 90 // days
	rotateMaxBackups = 5
)

// NewLogger builds the operational logger. Output goes to stderr so it never
// mixes with CLI results on stdout; LOG_FILE adds a rotated file copy.
func NewLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006.01.02 15:04:05",
	})

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    rotateMaxSize,
			MaxAge:     rotateMaxAge,
			MaxBackups: rotateMaxBackups,
			LocalTime:  true,
			Compress:   true,
		})
	}
	log.SetOutput(out)

	return log
}

// NewDiscardLogger returns a logger that drops everything, for tests.
func NewDiscardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
