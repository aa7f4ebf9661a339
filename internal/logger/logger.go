package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a logger
type Logger struct {
	*zap.SugaredLogger
}

// New creates a new logger writing to stderr only.
//
// Stdout is reserved for the MCP protocol stream, so every level goes to
// stderr. Messages below loglevel are discarded.
func New(loglevel zapcore.Level) *Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	enabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= loglevel
	})

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), enabler)
	log := zap.New(core)

	// Redirect stdlib log package to zap
	zap.RedirectStdLog(log)

	return &Logger{
		log.Sugar(),
	}
}
