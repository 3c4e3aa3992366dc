package common

import (
	"fmt"

	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with appropriate configuration
func NewLogger(development bool) (*zap.Logger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	return config.Build()
}

// MustNewLogger creates a new logger and panics if it fails
func MustNewLogger(development bool) *zap.Logger {
	logger, err := NewLogger(development)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

// ZapAdapter lets Temporal log through zap
type ZapAdapter struct {
	zl *zap.Logger
}

var _ log.Logger = (*ZapAdapter)(nil)

// NewZapAdapter wraps zl for the Temporal client and worker
func NewZapAdapter(zl *zap.Logger) *ZapAdapter {
	return &ZapAdapter{zl: zl.WithOptions(zap.AddCallerSkip(1))}
}

func (a *ZapAdapter) fields(keyvals []interface{}) []zap.Field {
	if len(keyvals)%2 != 0 {
		return []zap.Field{zap.Any("keyvals", keyvals)}
	}
	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	return fields
}

func (a *ZapAdapter) Debug(msg string, keyvals ...interface{}) {
	a.zl.Debug(msg, a.fields(keyvals)...)
}

func (a *ZapAdapter) Info(msg string, keyvals ...interface{}) {
	a.zl.Info(msg, a.fields(keyvals)...)
}

func (a *ZapAdapter) Warn(msg string, keyvals ...interface{}) {
	a.zl.Warn(msg, a.fields(keyvals)...)
}

func (a *ZapAdapter) Error(msg string, keyvals ...interface{}) {
	a.zl.Error(msg, a.fields(keyvals)...)
}
