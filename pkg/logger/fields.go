package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zapcore.Field

var (
	Int      = zap.Int
	Int64    = zap.Int64
	String   = zap.String
	Strings  = zap.Strings
	Bool     = zap.Bool
	Any      = zap.Any
	Duration = zap.Duration
)

func Error(err error) Field {
	return zap.Error(err)
}
