package xdrserde

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// log returns the package's logger, defaulting to a no-op so importing this
// package never prints anything unless the caller opts in.
func log() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the diagnostic logger this package uses to record
// decode failures (invalid padding, length overflow, unknown discriminants)
// at debug level. Call it once before decoding; the default is silent.
func SetLogger(l *zap.Logger) {
	logger = l
}
