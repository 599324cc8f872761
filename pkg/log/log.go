package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// InitLog builds a logger writing to stderr so that command output on stdout
// stays machine readable.
func InitLog(lvl zap.AtomicLevel, format string) (*zap.Logger, error) {
	if format == "" {
		format = FormatConsole
	}
	if format != FormatConsole && format != FormatJSON {
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	loggerCfg := &zap.Config{
		Level:    lvl,
		Encoding: format,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "severity",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return loggerCfg.Build(zap.AddStacktrace(zap.DPanicLevel))
}

// ParseLevel converts a level name such as "debug" or "warn" to an AtomicLevel.
func ParseLevel(level string) (zap.AtomicLevel, error) {
	l, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}
