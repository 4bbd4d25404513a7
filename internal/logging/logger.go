// Package logging builds the process zap logger.
package logging

import (
	"fmt"
	"io"

	"github.com/alexanderramin/actionmenu/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing cfg.Format lines at cfg.Level or above to w.
func New(cfg config.LogConfig, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	core := zapcore.NewCore(newEncoder(cfg.Format), zapcore.AddSync(w), level)
	return zap.New(core).Named("actionmenu"), nil
}

func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}
