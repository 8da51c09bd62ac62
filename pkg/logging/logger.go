package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/scottcagno/hashtable/pkg/config"
)

func encoderConfig() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	return enc
}

// NewConsoleLogger returns a logger writing human readable lines to out
func NewConsoleLogger(out io.Writer, lvl zapcore.Level) *zap.Logger {
	return zap.New(consoleCore(out, lvl), zap.AddCaller())
}

func consoleCore(out io.Writer, lvl zapcore.Level) zapcore.Core {
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(out), lvl)
}

// NewFileWriter returns a size rotated log file writer for conf.File
func NewFileWriter(conf config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   conf.File,
		MaxSize:    conf.MaxSizeMB,
		MaxBackups: conf.MaxBackups,
		MaxAge:     conf.MaxAgeDays,
		Compress:   conf.Compress,
	}
}

// New builds the logger described by conf. Console output goes to stderr;
// when a file is configured, JSON lines are also written to it.
func New(conf config.LogConfig) (*zap.Logger, error) {
	lvl, err := conf.ZapLevel()
	if err != nil {
		return nil, err
	}
	core := consoleCore(zapcore.Lock(os.Stderr), lvl)
	if conf.File != "" {
		file := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(NewFileWriter(conf)), lvl)
		core = zapcore.NewTee(core, file)
	}
	return zap.New(core, zap.AddCaller()), nil
}
