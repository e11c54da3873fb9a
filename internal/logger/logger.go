package logger

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the logger.
type Options struct {
	Verbose bool
	Output  io.Writer
}

// New builds a console logger writing to opts.Output (stderr in production).
// Only warnings and errors are shown unless Verbose is set. Every entry
// carries a run_id so concurrent invocations can be told apart.
func New(opts Options) (*zap.Logger, error) {
	if opts.Output == nil {
		return nil, fmt.Errorf("logger output cannot be nil")
	}
	level := zapcore.WarnLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(opts.Output),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core).With(zap.String("run_id", uuid.New().String())), nil
}
