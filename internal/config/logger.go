package config

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns the program logger writing to w at the named level:
// "none" discards everything, "normal" logs info and above, "debug" logs
// everything. Output goes to one stream so stdout stays free for results.
func NewLogger(level string, w io.Writer) *zap.Logger {
	var enabler zapcore.Level
	switch level {
	case LevelDebug:
		enabler = zapcore.DebugLevel
	case LevelNormal:
		enabler = zapcore.InfoLevel
	default:
		return zap.NewNop()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), enabler)
	return zap.New(core).Named(AppName)
}
