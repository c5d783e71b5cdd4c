// internal/logging/log.go
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the rotating log inside the log directory.
const FileName = "airplane.slog"

// Logger — slog с ротацией файла через lumberjack.
type Logger struct {
	*slog.Logger
	LogFile string
	LogDir  string
	Start   time.Time

	rotator *lumberjack.Logger
}

// ParseLevel maps a settings string to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
}

// New writes JSON records to dir/FileName, mirrored to stderr when console is set.
func New(level string, dir string, console bool) *Logger {
	if dir == "" {
		dir = "."
	}
	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, FileName),
		MaxSize:    16, // MB
		MaxBackups: 3,
		MaxAge:     14,
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, using info\n", err)
	}

	var out io.Writer = w
	if console {
		out = io.MultiWriter(w, os.Stderr)
	}
	h := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
		LogDir:  dir,
		Start:   time.Now(),
		rotator: w,
	}
	l.Info("Hello logging", slog.Time("start", l.Start))
	l.Info("System information",
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.String("level", lvl.String()))
	return l
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), Start: time.Now()}
}

// Close flushes and closes the rotating file, if any.
func (l *Logger) Close() error {
	if l == nil || l.rotator == nil {
		return nil
	}
	l.Info("Goodbye logging", slog.Duration("uptime", time.Since(l.Start)))
	return l.rotator.Close()
}
