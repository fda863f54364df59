package nokogiri

import (
	"log/slog"
	"os"
	"sync"
)

var (
	loggerOnce sync.Once
	logger     *slog.Logger
)

// Logger returns the process-lifetime structured logger, built lazily from
// the active configuration's debug.log_level.
func Logger() *slog.Logger {
	loggerOnce.Do(func() {
		level := slog.LevelInfo
		if cfg := globalConfig; cfg != nil && cfg.Debug.LogLevel != nil {
			var l slog.Level
			if err := l.UnmarshalText([]byte(*cfg.Debug.LogLevel)); err == nil {
				level = l
			}
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	})
	return logger
}
