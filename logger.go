package quartz

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the package logger. It starts out discarding everything.
var logger atomic.Pointer[slog.Logger]

func init() {
	SetLogger(nil)
}

// SetLogger routes the records quartz emits to l. A nil logger silences
// quartz again, which is the default. SetLogger may be called while other
// goroutines are drawing.
//
// Records by level:
//   - [slog.LevelDebug]: one record per clip push, naming the path taken
//     ("rectangle clip", "path clip" or "mask clip") and the stack depth
//   - [slog.LevelWarn]: rejected clip pushes, failed mask builds and
//     contexts closed with saved states
//
// For example, to trace clip decisions on stderr:
//
//	quartz.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// Logger returns the logger quartz currently writes to.
func Logger() *slog.Logger {
	return logger.Load()
}
