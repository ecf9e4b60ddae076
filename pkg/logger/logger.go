package logger

import (
	"io"

	"go.uber.org/zap"
)

type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a production zap logger. If zap cannot be configured it falls
// back to a development logger so callers always get a usable value.
func New() *Logger {
	z, err := zap.NewProduction()
	if err != nil {
		z = zap.NewExample()
	}
	return FromZap(z)
}

func FromZap(z *zap.Logger) *Logger {
	return &Logger{sugar: z.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Writer adapts the logger to io.Writer consumers such as gin's access log.
// Each written line becomes one info entry.
func (l *Logger) Writer() io.Writer {
	return zap.NewStdLog(l.sugar.Desugar()).Writer()
}

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
