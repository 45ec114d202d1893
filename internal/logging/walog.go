package logging

import (
	"go.uber.org/zap"
	walog "go.mau.fi/whatsmeow/util/log"
)

// WALogger routes whatsmeow's printf-style logging into zap.
type WALogger struct {
	sugar *zap.SugaredLogger
}

var _ walog.Logger = (*WALogger)(nil)

func NewWALogger(logger *zap.Logger, module string) *WALogger {
	return &WALogger{sugar: logger.Named(module).Sugar()}
}

func (l *WALogger) Warnf(msg string, args ...interface{})  { l.sugar.Warnf(msg, args...) }
func (l *WALogger) Errorf(msg string, args ...interface{}) { l.sugar.Errorf(msg, args...) }
func (l *WALogger) Infof(msg string, args ...interface{})  { l.sugar.Infof(msg, args...) }
func (l *WALogger) Debugf(msg string, args ...interface{}) { l.sugar.Debugf(msg, args...) }

func (l *WALogger) Sub(module string) walog.Logger {
	return &WALogger{sugar: l.sugar.Named(module)}
}
