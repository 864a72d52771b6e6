package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger
)

// Init configures the global zap logger. In production mode the level is
// raised to Info and colored output is disabled.
func Init(mode string) {
	core := zapcore.NewCore(newEncoder(mode), newWriteSyncer(), levelFor(mode))

	Logger = zap.New(core, zap.AddCaller())
	Sugar = Logger.Sugar()

	zap.ReplaceGlobals(Logger)
}

func levelFor(mode string) zapcore.Level {
	if mode == "production" {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

func newEncoder(mode string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if mode == "production" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// newWriteSyncer sends log output to stdout and a size-rotated file.
func newWriteSyncer() zapcore.WriteSyncer {
	rotated := &lumberjack.Logger{
		Filename:   "./logs/app.log",
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   false,
	}
	return zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(rotated))
}
