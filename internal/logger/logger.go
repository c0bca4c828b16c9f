package logger

import (
	"go.uber.org/zap"
)

// Log is the process-wide logger. It discards output until Init is called,
// so packages can log unconditionally in tests.
var Log = zap.NewNop()

// Init replaces Log with a development (console) logger when env is
// "development" and a production (JSON) logger otherwise.
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
